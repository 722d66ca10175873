package grid

// Field is the three-dimensional storage of one variable.
//
// Shells run along axis 0. Each shell has its own (rows, depth) shape; for
// a DenseField every shell shares the same shape.
type Field interface {
	// Element returns a mutable reference to the value at (shell, row, col).
	Element(shell, row, col int) (*float64, error)

	// DepthAt returns the extent along axis 2 of the given shell.
	DepthAt(shell int) (int, error)

	// ShapeAt returns (rows, depth) of the given shell.
	ShapeAt(shell int) (rows, depth int, err error)

	// Shell returns the row-major backing slice of one shell.
	Shell(shell int) ([]float64, error)

	Shells() int
	Len() int
	Clone() Field
}

var (
	_ Field = (*DenseField)(nil)
	_ Field = (*RaggedField)(nil)
)

func sameShape(a, b Field) bool {
	if a.Shells() != b.Shells() {
		return false
	}
	for i := 0; i < a.Shells(); i++ {
		ar, ad, _ := a.ShapeAt(i)
		br, bd, _ := b.ShapeAt(i)
		if ar != br || ad != bd {
			return false
		}
	}
	return true
}
