package metrics

import (
	"math"

	"github.com/san-kum/shellgrid/internal/grid"
)

// Finite reports the fraction of values that are finite and within
// threshold across all variables. 1 means the grid is healthy.
type Finite struct {
	name      string
	threshold float64
	bad       int
	samples   int
}

func NewFinite(threshold float64) *Finite {
	return &Finite{name: "finite", threshold: threshold}
}

func (f *Finite) Name() string { return f.name }

func (f *Finite) Observe(g *grid.Grid) error {
	for v := 0; v < g.Variables(); v++ {
		shells, err := g.Shells(v)
		if err != nil {
			return err
		}
		for i := 0; i < shells; i++ {
			values, err := g.Shell(v, i)
			if err != nil {
				return err
			}
			for _, x := range values {
				f.samples++
				if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > f.threshold {
					f.bad++
				}
			}
		}
	}
	return nil
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.bad)/float64(f.samples)
}

func (f *Finite) Reset() {
	f.bad = 0
	f.samples = 0
}
