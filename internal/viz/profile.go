package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/shellgrid/internal/grid"
)

const (
	plotWidth  = 60
	plotHeight = 10
)

// RenderProfile plots one line of values along the depth axis.
func RenderProfile(values []float64, caption string) string {
	if len(values) == 0 {
		return Subtle.Render("(empty line)")
	}
	data := values
	if len(data) == 1 {
		data = []float64{values[0], values[0]}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// RadialSeries returns the value at (row, col) of every shell of v. Shells
// too small to hold (row, col) contribute their (0, 0) value.
func RadialSeries(g *grid.Grid, v, row, col int) ([]float64, error) {
	shells, err := g.Shells(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, shells)
	for i := range out {
		rows, depth, err := g.ShapeAt(v, i)
		if err != nil {
			return nil, err
		}
		j, k := row, col
		if j >= rows || k >= depth {
			j, k = 0, 0
		}
		if out[i], err = g.Get(v, i, j, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RenderRadial plots variable v along the shell axis.
func RenderRadial(g *grid.Grid, v int, name string) (string, error) {
	series, err := RadialSeries(g, v, 0, 0)
	if err != nil {
		return "", err
	}
	return RenderProfile(series, fmt.Sprintf("%s vs shell", name)), nil
}
