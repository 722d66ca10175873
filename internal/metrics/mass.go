package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/shellgrid/internal/grid"
)

// Mass integrates a density variable over spherical shells bounded by radii.
// Each cell of a shell gets an equal share of the shell volume; ghost
// shells past the last radius are ignored.
type Mass struct {
	name    string
	density int
	radii   []float64
	total   float64
}

func NewMass(density int, radii []float64) *Mass {
	return &Mass{name: "mass", density: density, radii: radii}
}

func (m *Mass) Name() string { return m.name }

func (m *Mass) Observe(g *grid.Grid) error {
	shells, err := g.Shells(m.density)
	if err != nil {
		return err
	}
	if len(m.radii) < 2 {
		return fmt.Errorf("metrics: mass needs at least 2 radii, got %d", len(m.radii))
	}
	n := min(shells, len(m.radii)-1)

	for i := 0; i < n; i++ {
		values, err := g.Shell(m.density, i)
		if err != nil {
			return err
		}
		r0, r1 := m.radii[i], m.radii[i+1]
		volume := 4.0 / 3.0 * math.Pi * (r1*r1*r1 - r0*r0*r0)
		m.total += floats.Sum(values) * volume / float64(len(values))
	}
	return nil
}

func (m *Mass) Value() float64 { return m.total }
func (m *Mass) Reset()         { m.total = 0 }
