package grid

import "sync"

// LinePool recycles line buffers for StoreLineInto. Buffers are sized to
// the largest depth requested so far; Get reslices them to the asked length.
type LinePool struct {
	pool sync.Pool
}

func NewLinePool() *LinePool {
	return &LinePool{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]float64, 0)
				return &s
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *LinePool) Get(n int) []float64 {
	bp := p.pool.Get().(*[]float64)
	buf := *bp
	if cap(buf) < n {
		buf = make([]float64, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

func (p *LinePool) Put(buf []float64) {
	if buf == nil {
		return
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}

// Line copies (v, shell, row) into a pooled buffer. Callers return it with Put.
func (p *LinePool) Line(g *Grid, v, shell, row int) ([]float64, error) {
	depth, err := g.DepthAt(v, shell)
	if err != nil {
		return nil, err
	}
	buf := p.Get(depth)
	if _, err := g.StoreLineInto(buf, v, shell, row); err != nil {
		p.Put(buf)
		return nil, err
	}
	return buf, nil
}
