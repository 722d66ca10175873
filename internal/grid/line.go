package grid

import "fmt"

// LoadLine writes values into (v, shell, row, 0..len(values)-1).
func (g *Grid) LoadLine(values []float64, v, shell, row int) error {
	f, err := g.field(v)
	if err != nil {
		return err
	}
	rows, depth, err := f.ShapeAt(shell)
	if err != nil {
		return err
	}
	if err := checkIndex(AxisRow, row, rows); err != nil {
		return err
	}
	if len(values) > depth {
		return fmt.Errorf("%w: %d values for depth %d", ErrLineLength, len(values), depth)
	}
	for l, x := range values {
		p, err := f.Element(shell, row, l)
		if err != nil {
			return err
		}
		*p = x
	}
	return nil
}

// StoreLine returns a new slice holding (v, shell, row, 0..depth-1), where
// depth is DepthAt(v, shell).
func (g *Grid) StoreLine(v, shell, row int) ([]float64, error) {
	depth, err := g.DepthAt(v, shell)
	if err != nil {
		return nil, err
	}
	out := make([]float64, depth)
	if _, err := g.StoreLineInto(out, v, shell, row); err != nil {
		return nil, err
	}
	return out, nil
}

// StoreLineInto copies the line into dst and returns the number of values
// written. dst must hold at least DepthAt(v, shell) values.
func (g *Grid) StoreLineInto(dst []float64, v, shell, row int) (int, error) {
	f, err := g.field(v)
	if err != nil {
		return 0, err
	}
	rows, depth, err := f.ShapeAt(shell)
	if err != nil {
		return 0, err
	}
	if err := checkIndex(AxisRow, row, rows); err != nil {
		return 0, err
	}
	if len(dst) < depth {
		return 0, fmt.Errorf("%w: buffer of %d for depth %d", ErrLineLength, len(dst), depth)
	}
	for l := 0; l < depth; l++ {
		p, err := f.Element(shell, row, l)
		if err != nil {
			return 0, err
		}
		dst[l] = *p
	}
	return depth, nil
}
