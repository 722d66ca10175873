package grid

// Extents is a (shells, rows, depth) triple.
type Extents [3]int

// Grid routes (variable, shell, row, col) access to one Field per variable.
type Grid struct {
	fields   []Field
	released bool
}

// NewUniform builds one DenseField per entry of dims.
func NewUniform(dims []Extents) (*Grid, error) {
	if len(dims) == 0 {
		return nil, dimensionError("grid needs at least one variable")
	}
	g := &Grid{fields: make([]Field, len(dims))}
	for v, d := range dims {
		f, err := NewDenseField(d[0], d[1], d[2])
		if err != nil {
			return nil, fmtVariable(v, err)
		}
		g.fields[v] = f
	}
	return g, nil
}

// NewRagged builds one RaggedField per variable. ghost[v] holds the ghost
// shell count and the ghost (rows, depth) shape for variable v.
func NewRagged(dims, ghost []Extents) (*Grid, error) {
	if len(dims) == 0 {
		return nil, dimensionError("grid needs at least one variable")
	}
	if len(ghost) != len(dims) {
		return nil, dimensionError("%d ghost extents for %d variables", len(ghost), len(dims))
	}
	g := &Grid{fields: make([]Field, len(dims))}
	for v, d := range dims {
		gh := ghost[v]
		f, err := NewRaggedField(d[0], d[1], d[2], gh[0], gh[1], gh[2])
		if err != nil {
			return nil, fmtVariable(v, err)
		}
		g.fields[v] = f
	}
	return g, nil
}

func (g *Grid) field(v int) (Field, error) {
	if g.released {
		return nil, ErrReleased
	}
	if err := checkIndex(AxisVariable, v, len(g.fields)); err != nil {
		return nil, err
	}
	return g.fields[v], nil
}

// Variables returns the number of variables, or 0 after Release.
func (g *Grid) Variables() int {
	if g.released {
		return 0
	}
	return len(g.fields)
}

// Element returns a mutable reference to one value.
func (g *Grid) Element(v, shell, row, col int) (*float64, error) {
	f, err := g.field(v)
	if err != nil {
		return nil, err
	}
	return f.Element(shell, row, col)
}

func (g *Grid) Get(v, shell, row, col int) (float64, error) {
	p, err := g.Element(v, shell, row, col)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

func (g *Grid) Set(v, shell, row, col int, x float64) error {
	p, err := g.Element(v, shell, row, col)
	if err != nil {
		return err
	}
	*p = x
	return nil
}

func (g *Grid) DepthAt(v, shell int) (int, error) {
	f, err := g.field(v)
	if err != nil {
		return 0, err
	}
	return f.DepthAt(shell)
}

func (g *Grid) ShapeAt(v, shell int) (rows, depth int, err error) {
	f, err := g.field(v)
	if err != nil {
		return 0, 0, err
	}
	return f.ShapeAt(shell)
}

// Shells returns the shell count of variable v, ghost shells included.
func (g *Grid) Shells(v int) (int, error) {
	f, err := g.field(v)
	if err != nil {
		return 0, err
	}
	return f.Shells(), nil
}

// Extents reports the shell count of v together with the shape of shell 0.
// The field is the only record of shape; ghost shells are visible through ShapeAt.
func (g *Grid) Extents(v int) (Extents, error) {
	f, err := g.field(v)
	if err != nil {
		return Extents{}, err
	}
	rows, depth, err := f.ShapeAt(0)
	if err != nil {
		return Extents{}, err
	}
	return Extents{f.Shells(), rows, depth}, nil
}

// Len returns the number of addressable values of variable v.
func (g *Grid) Len(v int) (int, error) {
	f, err := g.field(v)
	if err != nil {
		return 0, err
	}
	return f.Len(), nil
}

// Shell returns the backing slice of one shell of variable v.
func (g *Grid) Shell(v, shell int) ([]float64, error) {
	f, err := g.field(v)
	if err != nil {
		return nil, err
	}
	return f.Shell(shell)
}
