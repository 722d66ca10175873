package grid

// DenseField stores shells×rows×depth values in one contiguous buffer.
//
// The zero value is an empty placeholder with no shells.
type DenseField struct {
	shells int
	rows   int
	depth  int
	data   []float64
}

func NewDenseField(shells, rows, depth int) (*DenseField, error) {
	if shells <= 0 || rows <= 0 || depth <= 0 {
		return nil, dimensionError("dense extents (%d, %d, %d) must be positive", shells, rows, depth)
	}
	return &DenseField{
		shells: shells,
		rows:   rows,
		depth:  depth,
		data:   make([]float64, shells*rows*depth),
	}, nil
}

func (f *DenseField) Element(shell, row, col int) (*float64, error) {
	if err := checkIndex(AxisShell, shell, f.shells); err != nil {
		return nil, err
	}
	if err := checkIndex(AxisRow, row, f.rows); err != nil {
		return nil, err
	}
	if err := checkIndex(AxisColumn, col, f.depth); err != nil {
		return nil, err
	}
	return &f.data[shell*f.rows*f.depth+row*f.depth+col], nil
}

// DepthAt is the same for every shell; the shell index is only range checked.
func (f *DenseField) DepthAt(shell int) (int, error) {
	if err := checkIndex(AxisShell, shell, f.shells); err != nil {
		return 0, err
	}
	return f.depth, nil
}

func (f *DenseField) ShapeAt(shell int) (int, int, error) {
	if err := checkIndex(AxisShell, shell, f.shells); err != nil {
		return 0, 0, err
	}
	return f.rows, f.depth, nil
}

func (f *DenseField) Shell(shell int) ([]float64, error) {
	if err := checkIndex(AxisShell, shell, f.shells); err != nil {
		return nil, err
	}
	stride := f.rows * f.depth
	return f.data[shell*stride : (shell+1)*stride : (shell+1)*stride], nil
}

func (f *DenseField) Shells() int { return f.shells }
func (f *DenseField) Len() int    { return len(f.data) }

func (f *DenseField) Clone() Field {
	c := &DenseField{shells: f.shells, rows: f.rows, depth: f.depth, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}
