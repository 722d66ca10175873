package grid

import "fmt"

// Clone returns a deep copy. The copy shares no storage with g.
func (g *Grid) Clone() (*Grid, error) {
	if g.released {
		return nil, ErrReleased
	}
	c := &Grid{fields: make([]Field, len(g.fields))}
	for v, f := range g.fields {
		c.fields[v] = f.Clone()
	}
	return c, nil
}

// CopyFrom overwrites every value of g with the values of src. Both grids
// must have the same variables and per-shell shapes.
func (g *Grid) CopyFrom(src *Grid) error {
	if src == nil {
		return dimensionError("copy from nil grid")
	}
	if g.released || src.released {
		return ErrReleased
	}
	if g == src {
		return nil
	}
	if len(g.fields) != len(src.fields) {
		return dimensionError("copy of %d variables into %d", len(src.fields), len(g.fields))
	}
	for v := range g.fields {
		if !sameShape(g.fields[v], src.fields[v]) {
			return fmtVariable(v, dimensionError("shell shapes differ"))
		}
	}
	for v, f := range g.fields {
		for i := 0; i < f.Shells(); i++ {
			dst, _ := f.Shell(i)
			s, _ := src.fields[v].Shell(i)
			copy(dst, s)
		}
	}
	return nil
}

// Release drops every field. Further access returns ErrReleased.
func (g *Grid) Release() {
	g.fields = nil
	g.released = true
}

func (g *Grid) Released() bool { return g.released }

func fmtVariable(v int, err error) error {
	return fmt.Errorf("variable %d: %w", v, err)
}
