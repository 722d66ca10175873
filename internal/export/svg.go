// Package export renders stored grid data as standalone SVG documents.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/shellgrid/internal/grid"
)

var ErrEmpty = errors.New("export: nothing to render")

// ShellToSVG draws one shell of variable v as a rows x depth heat map.
// Each cell is a square of side scale, shaded from the shell minimum
// (dark blue) to its maximum (bright green).
func ShellToSVG(g *grid.Grid, v, shell int, scale float64) (string, error) {
	rows, depth, err := g.ShapeAt(v, shell)
	if err != nil {
		return "", err
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	lines := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		line, err := g.StoreLine(v, shell, r)
		if err != nil {
			return "", err
		}
		for _, x := range line {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		lines[r] = line
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	width := float64(depth) * scale
	height := float64(rows) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for r, line := range lines {
		for c, x := range line {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*scale, float64(r)*scale, scale, scale, shade((x-lo)/span)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func shade(t float64) string {
	t = math.Max(0, math.Min(1, t))
	return fmt.Sprintf("#%02x%02x%02x", 0, int(40+215*t), int(120*(1-t)))
}

// ProfileToSVG draws values against their index as a single path.
func ProfileToSVG(values []float64, width, height int, strokeColor string) (string, error) {
	if len(values) < 2 {
		return "", ErrEmpty
	}

	lo, hi := values[0], values[0]
	for _, x := range values {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	rangeY := hi - lo
	if rangeY == 0 {
		rangeY = 1
	}
	lo -= rangeY * 0.1
	hi += rangeY * 0.1
	rangeY = hi - lo
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, y := range values {
		px := float64(i) / rangeX * float64(width)
		py := float64(height) - (y-lo)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}
