package grid

// Surface is the angular cross-section of one radial shell, stored row-major.
type Surface struct {
	rows  int
	depth int
	data  []float64
}

// NewSurface allocates a zeroed rows×depth shell.
func NewSurface(rows, depth int) (*Surface, error) {
	if rows <= 0 || depth <= 0 {
		return nil, dimensionError("surface shape (%d, %d) must be positive", rows, depth)
	}
	return &Surface{rows: rows, depth: depth, data: make([]float64, rows*depth)}, nil
}

// Element returns a pointer to the value at (row, col).
func (s *Surface) Element(row, col int) (*float64, error) {
	if err := checkIndex(AxisRow, row, s.rows); err != nil {
		return nil, err
	}
	if err := checkIndex(AxisColumn, col, s.depth); err != nil {
		return nil, err
	}
	return &s.data[row*s.depth+col], nil
}

func (s *Surface) Rows() int  { return s.rows }
func (s *Surface) Depth() int { return s.depth }
func (s *Surface) Len() int   { return len(s.data) }

// Values exposes the backing storage. Writes are visible through Element.
func (s *Surface) Values() []float64 { return s.data }

func (s *Surface) Clone() *Surface {
	c := &Surface{rows: s.rows, depth: s.depth, data: make([]float64, len(s.data))}
	copy(c.data, s.data)
	return c
}
