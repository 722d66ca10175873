package grid

// RaggedField stores one Surface per shell. Interior shells share one shape;
// trailing ghost shells may use another.
type RaggedField struct {
	shells []*Surface
}

// NewRaggedField builds shells+ghostShells shells. The first shells are
// rows×depth, the remaining ghostShells are ghostRows×ghostDepth. The ghost
// shape is ignored when ghostShells is zero.
func NewRaggedField(shells, rows, depth, ghostShells, ghostRows, ghostDepth int) (*RaggedField, error) {
	if shells <= 0 || rows <= 0 || depth <= 0 {
		return nil, dimensionError("ragged extents (%d, %d, %d) must be positive", shells, rows, depth)
	}
	if ghostShells < 0 {
		return nil, dimensionError("ghost shell count %d is negative", ghostShells)
	}
	if ghostShells > 0 && (ghostRows <= 0 || ghostDepth <= 0) {
		return nil, dimensionError("ghost shape (%d, %d) must be positive for %d ghost shells", ghostRows, ghostDepth, ghostShells)
	}

	f := &RaggedField{shells: make([]*Surface, 0, shells+ghostShells)}
	for i := 0; i < shells; i++ {
		s, err := NewSurface(rows, depth)
		if err != nil {
			return nil, err
		}
		f.shells = append(f.shells, s)
	}
	for i := 0; i < ghostShells; i++ {
		s, err := NewSurface(ghostRows, ghostDepth)
		if err != nil {
			return nil, err
		}
		f.shells = append(f.shells, s)
	}
	return f, nil
}

func (f *RaggedField) surface(shell int) (*Surface, error) {
	if err := checkIndex(AxisShell, shell, len(f.shells)); err != nil {
		return nil, err
	}
	return f.shells[shell], nil
}

func (f *RaggedField) Element(shell, row, col int) (*float64, error) {
	s, err := f.surface(shell)
	if err != nil {
		return nil, err
	}
	return s.Element(row, col)
}

func (f *RaggedField) DepthAt(shell int) (int, error) {
	s, err := f.surface(shell)
	if err != nil {
		return 0, err
	}
	return s.Depth(), nil
}

func (f *RaggedField) ShapeAt(shell int) (int, int, error) {
	s, err := f.surface(shell)
	if err != nil {
		return 0, 0, err
	}
	return s.Rows(), s.Depth(), nil
}

func (f *RaggedField) Shell(shell int) ([]float64, error) {
	s, err := f.surface(shell)
	if err != nil {
		return nil, err
	}
	return s.Values(), nil
}

func (f *RaggedField) Shells() int { return len(f.shells) }

func (f *RaggedField) Len() int {
	n := 0
	for _, s := range f.shells {
		n += s.Len()
	}
	return n
}

func (f *RaggedField) Clone() Field {
	c := &RaggedField{shells: make([]*Surface, len(f.shells))}
	for i, s := range f.shells {
		c.shells[i] = s.Clone()
	}
	return c
}
