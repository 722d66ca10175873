package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/shellgrid/internal/grid"
)

// Lines holds every line of one variable keyed by (shell, row).
type Lines map[[2]int][]float64

// LoadLines reads the csv of one variable.
func (s *Store) LoadLines(runID, variable string) (Lines, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, variable+".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, variable)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lines := make(Lines, len(records))
	for n, record := range records {
		if n == 0 {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: %s record %d", ErrCorrupt, variable, n)
		}
		shell, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrCorrupt, variable, n, err)
		}
		row, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s record %d: %v", ErrCorrupt, variable, n, err)
		}
		line := make([]float64, len(record)-2)
		for l, field := range record[2:] {
			if line[l], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("%w: %s record %d: %v", ErrCorrupt, variable, n, err)
			}
		}
		lines[[2]int{shell, row}] = line
	}
	return lines, nil
}

// LoadLine returns one (shell, row) line of a variable.
func (s *Store) LoadLine(runID, variable string, shell, row int) ([]float64, error) {
	lines, err := s.LoadLines(runID, variable)
	if err != nil {
		return nil, err
	}
	line, ok := lines[[2]int{shell, row}]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no line (%d, %d)", grid.ErrIndexOutOfRange, variable, shell, row)
	}
	return line, nil
}

// LoadInto copies a snapshot into g. names[v] is the variable stored in slot v.
func (s *Store) LoadInto(runID string, g *grid.Grid, names []string) error {
	for v, name := range names {
		lines, err := s.LoadLines(runID, name)
		if err != nil {
			return err
		}
		for key, line := range lines {
			if err := g.LoadLine(line, v, key[0], key[1]); err != nil {
				return fmt.Errorf("restore %s: %w", name, err)
			}
		}
	}
	return nil
}

// Restore rebuilds a grid from the shapes recorded in the metadata and
// loads the stored values into it.
func (s *Store) Restore(runID string) (*grid.Grid, []string, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(meta.Variables) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no variables", ErrCorrupt, runID)
	}

	dims := make([]grid.Extents, len(meta.Variables))
	ghost := make([]grid.Extents, len(meta.Variables))
	names := make([]string, len(meta.Variables))
	for v, vm := range meta.Variables {
		if vm.Slot != v {
			return nil, nil, fmt.Errorf("%w: %s stored in slot %d, listed at %d", ErrCorrupt, vm.Name, vm.Slot, v)
		}
		names[v] = vm.Name
		if dims[v], ghost[v], err = splitShapes(vm.Shapes); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", vm.Name, err)
		}
	}

	g, err := grid.NewRagged(dims, ghost)
	if err != nil {
		return nil, nil, err
	}
	if err := s.LoadInto(runID, g, names); err != nil {
		g.Release()
		return nil, nil, err
	}
	return g, names, nil
}

// splitShapes recovers interior and ghost extents from per-shell shapes.
func splitShapes(shapes [][2]int) (dims, ghost grid.Extents, err error) {
	if len(shapes) == 0 {
		return dims, ghost, fmt.Errorf("%w: no shells", ErrCorrupt)
	}
	interior := shapes[0]
	n := 1
	for n < len(shapes) && shapes[n] == interior {
		n++
	}
	dims = grid.Extents{n, interior[0], interior[1]}
	if n == len(shapes) {
		return dims, ghost, nil
	}

	outer := shapes[n]
	for _, s := range shapes[n:] {
		if s != outer {
			return dims, ghost, fmt.Errorf("%w: more than two shell shapes", ErrCorrupt)
		}
	}
	ghost = grid.Extents{len(shapes) - n, outer[0], outer[1]}
	return dims, ghost, nil
}
