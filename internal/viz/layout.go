package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/shellgrid/internal/grid"
)

// ShellRun is a run of consecutive shells sharing one shape.
type ShellRun struct {
	First, Last int
	Rows, Depth int
}

// ShellRuns groups the shells of variable v by shape.
func ShellRuns(g *grid.Grid, v int) ([]ShellRun, error) {
	shells, err := g.Shells(v)
	if err != nil {
		return nil, err
	}
	var runs []ShellRun
	for i := 0; i < shells; i++ {
		rows, depth, err := g.ShapeAt(v, i)
		if err != nil {
			return nil, err
		}
		if n := len(runs); n > 0 && runs[n-1].Rows == rows && runs[n-1].Depth == depth {
			runs[n-1].Last = i
			continue
		}
		runs = append(runs, ShellRun{First: i, Last: i, Rows: rows, Depth: depth})
	}
	return runs, nil
}

// RenderLayout draws one line per variable listing its shell runs. Runs
// after the first are ghost shells.
func RenderLayout(title string, g *grid.Grid, names []string) (string, error) {
	width := 8
	for _, n := range names {
		width = max(width, len(n))
	}

	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-*s %6s %8s  %s", width, "variable", "shells", "values", "shapes")) + "\n")

	for v := 0; v < g.Variables(); v++ {
		name := fmt.Sprintf("v%d", v)
		if v < len(names) {
			name = names[v]
		}
		runs, err := ShellRuns(g, v)
		if err != nil {
			return "", err
		}
		shells, _ := g.Shells(v)
		n, _ := g.Len(v)

		parts := make([]string, len(runs))
		for r, run := range runs {
			s := fmt.Sprintf("[%d..%d] %dx%d", run.First, run.Last, run.Rows, run.Depth)
			if r > 0 {
				s = Ghost.Render(s)
			}
			parts[r] = s
		}
		b.WriteString(fmt.Sprintf("%-*s %6d %8d  %s\n", width, name, shells, n, strings.Join(parts, " ")))
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n")), nil
}

// RenderStats renders label/value pairs in two columns.
func RenderStats(pairs ...[2]string) string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = MetricLabel.Render(fmt.Sprintf("%-12s", p[0])) + MetricValue.Render(p[1])
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
