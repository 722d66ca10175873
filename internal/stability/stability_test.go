package stability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shellgrid/internal/grid"
	"github.com/san-kum/shellgrid/internal/reduce"
)

const (
	velocity = iota
	soundSpeed
	donor
)

func newGrid(t *testing.T, cells int) *grid.Grid {
	t.Helper()
	g, err := grid.NewRagged(
		[]grid.Extents{{cells, 2, 4}, {cells, 2, 4}, {cells, 2, 4}},
		[]grid.Extents{{1, 1, 1}, {0, 0, 0}, {0, 0, 0}},
	)
	require.NoError(t, err)
	return g
}

func radii(n int, dr float64) []float64 {
	r := make([]float64, n+1)
	for i := range r {
		r[i] = float64(i) * dr
	}
	return r
}

func params(cells int) Params {
	return Params{
		Velocity:   velocity,
		SoundSpeed: soundSpeed,
		Donor:      donor,
		Courant:    0.5,
		MaxDt:      10,
		Radii:      radii(cells, 0.1),
	}
}

type failingReducer struct{ err error }

func (f failingReducer) Reduce(context.Context, float64, reduce.Op) (float64, error) {
	return 0, f.err
}

type fixedReducer struct{ value float64 }

func (f fixedReducer) Reduce(_ context.Context, _ float64, op reduce.Op) (float64, error) {
	if op == reduce.Min {
		return f.value, nil
	}
	return 0, nil
}

func TestTimestep_Uniform(t *testing.T) {
	g := newGrid(t, 3)
	require.NoError(t, g.Fill(velocity, 1))
	require.NoError(t, g.Fill(soundSpeed, 3))

	res, err := Timestep(context.Background(), g, params(3), reduce.Local{})
	require.NoError(t, err)

	// s = 1 + 3, dt = 0.5 * 0.1 / 4
	assert.InDelta(t, 0.0125, res.Dt, 1e-12)
	assert.InDelta(t, 0.25, res.DonorMax, 1e-12)
	assert.Equal(t, res.Dt, res.LocalDt)

	sum, err := g.Sum(donor)
	require.NoError(t, err)
	assert.InDelta(t, 0.25*3*2*4, sum, 1e-12)
}

func TestTimestep_GhostFace(t *testing.T) {
	g := newGrid(t, 2)
	require.NoError(t, g.Fill(soundSpeed, 1))
	// Only the coarse outer face moves.
	require.NoError(t, g.Set(velocity, 2, 0, 0, 2))

	res, err := Timestep(context.Background(), g, params(2), reduce.Local{})
	require.NoError(t, err)

	// outer cell: uc = 1, s = 2; inner cell: s = 1
	assert.InDelta(t, 0.5*0.1/2, res.Dt, 1e-12)
	assert.InDelta(t, 0.5, res.DonorMax, 1e-12)

	d, err := g.Get(donor, 1, 1, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-12)

	d, err = g.Get(donor, 0, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestTimestep_AtRestUsesMaxDt(t *testing.T) {
	g := newGrid(t, 2)

	res, err := Timestep(context.Background(), g, params(2), reduce.Local{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Dt)
	assert.Zero(t, res.DonorMax)
}

func TestTimestep_Group(t *testing.T) {
	group := reduce.NewGroup(3)
	grids := make([]*grid.Grid, group.Size())
	for r := range grids {
		grids[r] = newGrid(t, 2)
		require.NoError(t, grids[r].Fill(soundSpeed, float64(r+1)))
	}

	results := make([]Result, group.Size())
	err := group.Run(context.Background(), func(ctx context.Context, m *reduce.Member) error {
		res, err := Timestep(ctx, grids[m.Rank()], params(2), m)
		results[m.Rank()] = res
		return err
	})
	require.NoError(t, err)

	for r, res := range results {
		assert.InDelta(t, 0.5*0.1/3, res.Dt, 1e-12, "rank %d", r)
		assert.InDelta(t, 0.5*0.1/float64(r+1), res.LocalDt, 1e-12, "rank %d", r)
	}
}

func TestTimestep_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("negative after reduction", func(t *testing.T) {
		g := newGrid(t, 2)
		_, err := Timestep(ctx, g, params(2), fixedReducer{value: -1})
		assert.ErrorIs(t, err, ErrNonPositiveTimestep)
	})

	t.Run("reducer failure", func(t *testing.T) {
		boom := errors.New("boom")
		g := newGrid(t, 2)
		_, err := Timestep(ctx, g, params(2), failingReducer{err: boom})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("too few radii", func(t *testing.T) {
		g := newGrid(t, 3)
		_, err := Timestep(ctx, g, params(2), reduce.Local{})
		assert.ErrorIs(t, err, ErrBadParams)
	})

	t.Run("bad courant", func(t *testing.T) {
		g := newGrid(t, 2)
		p := params(2)
		p.Courant = 1.5
		_, err := Timestep(ctx, g, p, reduce.Local{})
		assert.ErrorIs(t, err, ErrBadParams)
	})

	t.Run("missing outer face", func(t *testing.T) {
		g, err := grid.NewUniform([]grid.Extents{{2, 2, 4}, {2, 2, 4}, {2, 2, 4}})
		require.NoError(t, err)
		_, err = Timestep(ctx, g, params(2), reduce.Local{})
		assert.ErrorIs(t, err, ErrBadParams)
	})

	t.Run("invalid slot", func(t *testing.T) {
		g := newGrid(t, 2)
		p := params(2)
		p.Donor = 5
		g.Fill(soundSpeed, 1)
		_, err := Timestep(ctx, g, p, reduce.Local{})
		assert.ErrorIs(t, err, grid.ErrInvalidVariable)
	})

	t.Run("inverted zone", func(t *testing.T) {
		g := newGrid(t, 2)
		p := params(2)
		p.Radii = []float64{0, 0.2, 0.1}
		_, err := Timestep(ctx, g, p, reduce.Local{})
		assert.ErrorIs(t, err, ErrBadParams)
	})
}
