package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/shellgrid/internal/grid"
)

// Browser steps through the (shell, row) lines of a grid.
type Browser struct {
	grid  *grid.Grid
	names []string
	title string

	variable, shell, row int
	err                  error
}

func NewBrowser(title string, g *grid.Grid, names []string, variable int) *Browser {
	return &Browser{title: title, grid: g, names: names, variable: variable}
}

func (b *Browser) Position() (variable, shell, row int) {
	return b.variable, b.shell, b.row
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return b, tea.Quit
	case "right", "l":
		b.moveShell(1)
	case "left", "h":
		b.moveShell(-1)
	case "down", "j":
		b.moveRow(1)
	case "up", "k":
		b.moveRow(-1)
	case "tab":
		b.variable = (b.variable + 1) % b.grid.Variables()
		b.shell, b.row = 0, 0
	case "shift+tab":
		n := b.grid.Variables()
		b.variable = (b.variable + n - 1) % n
		b.shell, b.row = 0, 0
	}
	return b, nil
}

func (b *Browser) moveShell(d int) {
	shells, err := b.grid.Shells(b.variable)
	if err != nil {
		b.err = err
		return
	}
	b.shell = clamp(b.shell+d, shells)
	rows, _, err := b.grid.ShapeAt(b.variable, b.shell)
	if err != nil {
		b.err = err
		return
	}
	b.row = clamp(b.row, rows)
}

func (b *Browser) moveRow(d int) {
	rows, _, err := b.grid.ShapeAt(b.variable, b.shell)
	if err != nil {
		b.err = err
		return
	}
	b.row = clamp(b.row+d, rows)
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}

func (b *Browser) name() string {
	if b.variable < len(b.names) {
		return b.names[b.variable]
	}
	return fmt.Sprintf("v%d", b.variable)
}

func (b *Browser) View() string {
	var s strings.Builder
	s.WriteString(Title.Render(b.title) + "\n\n")

	if b.err != nil {
		s.WriteString(ErrorText.Render(b.err.Error()) + "\n")
	}

	line, err := b.grid.StoreLine(b.variable, b.shell, b.row)
	if err != nil {
		s.WriteString(ErrorText.Render(err.Error()) + "\n")
		return s.String()
	}
	shells, _ := b.grid.Shells(b.variable)
	rows, depth, _ := b.grid.ShapeAt(b.variable, b.shell)

	caption := fmt.Sprintf("%s shell %d row %d", b.name(), b.shell, b.row)
	s.WriteString(RenderProfile(line, caption) + "\n\n")

	s.WriteString(RenderStats(
		[2]string{"variable", b.name()},
		[2]string{"shell", fmt.Sprintf("%d / %d", b.shell, shells-1)},
		[2]string{"shape", fmt.Sprintf("%dx%d", rows, depth)},
		[2]string{"row", fmt.Sprintf("%d / %d", b.row, rows-1)},
	) + "\n\n")

	s.WriteString(KeyHint.Render("←/→ shell  ↑/↓ row  tab variable  q quit"))
	return s.String()
}

// RunBrowser blocks until the user quits.
func RunBrowser(title string, g *grid.Grid, names []string, variable int) error {
	_, err := tea.NewProgram(NewBrowser(title, g, names, variable), tea.WithAltScreen()).Run()
	return err
}
