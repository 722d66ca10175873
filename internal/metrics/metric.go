// Package metrics computes scalar diagnostics of a grid.
package metrics

import "github.com/san-kum/shellgrid/internal/grid"

type Metric interface {
	Name() string
	Observe(g *grid.Grid) error
	Value() float64
	Reset()
}

// Collect observes g with every metric and returns their values by name.
func Collect(g *grid.Grid, ms ...Metric) (map[string]float64, error) {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		if err := m.Observe(g); err != nil {
			return nil, err
		}
		out[m.Name()] = m.Value()
	}
	return out, nil
}
