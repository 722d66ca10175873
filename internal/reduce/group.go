package reduce

import (
	"context"
	"errors"
	"sync"
)

// Group is an in-process collective over a fixed number of members, one per
// sub-domain. Every member must call Reduce once per round; each call blocks
// until the round is complete.
type Group struct {
	size int

	mu      sync.Mutex
	round   *round
	members []*Member
}

type round struct {
	op     Op
	values []float64
	result float64
	err    error
	done   chan struct{}
}

// Member is one participant of a Group.
type Member struct {
	group *Group
	rank  int
}

func NewGroup(size int) *Group {
	if size < 1 {
		size = 1
	}
	g := &Group{size: size}
	g.members = make([]*Member, size)
	for r := range g.members {
		g.members[r] = &Member{group: g, rank: r}
	}
	return g
}

func (g *Group) Size() int { return g.size }

// Member returns the participant for rank r.
func (g *Group) Member(r int) *Member { return g.members[r] }

func (m *Member) Rank() int { return m.rank }

func (m *Member) Reduce(ctx context.Context, value float64, op Op) (float64, error) {
	r := m.group.join(value, op)

	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (g *Group) join(value float64, op Op) *round {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil {
		g.round = &round{op: op, values: make([]float64, 0, g.size), done: make(chan struct{})}
	}
	r := g.round
	if op != r.op {
		r.err = ErrOpMismatch
	}
	r.values = append(r.values, value)

	if len(r.values) == g.size {
		if r.err == nil {
			r.result, r.err = r.op.Apply(r.values)
		}
		g.round = nil
		close(r.done)
	}
	return r
}

// Run calls fn once per member on its own goroutine and waits for all of
// them. The first error is returned.
func (g *Group) Run(ctx context.Context, fn func(ctx context.Context, m *Member) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, g.size)
	var wg sync.WaitGroup
	for _, m := range g.members {
		wg.Add(1)
		go func(m *Member) {
			defer wg.Done()
			if err := fn(ctx, m); err != nil {
				errs[m.rank] = err
				cancel()
			}
		}(m)
	}
	wg.Wait()

	// Members cancelled by a failing sibling report ctx.Err(); prefer the cause.
	var first error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, context.Canceled) {
			return err
		}
		if first == nil {
			first = err
		}
	}
	return first
}
