package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Fill sets every value of variable v, ghost shells included.
func (g *Grid) Fill(v int, x float64) error {
	return g.eachShell(v, func(s []float64) {
		for i := range s {
			s[i] = x
		}
	})
}

// Scale multiplies every value of variable v by factor.
func (g *Grid) Scale(v int, factor float64) error {
	return g.eachShell(v, func(s []float64) {
		floats.Scale(factor, s)
	})
}

func (g *Grid) Sum(v int) (float64, error) {
	total := 0.0
	err := g.eachShell(v, func(s []float64) {
		total += floats.Sum(s)
	})
	return total, err
}

func (g *Grid) Min(v int) (float64, error) {
	m := math.Inf(1)
	err := g.eachShell(v, func(s []float64) {
		m = math.Min(m, floats.Min(s))
	})
	return m, err
}

func (g *Grid) Max(v int) (float64, error) {
	m := math.Inf(-1)
	err := g.eachShell(v, func(s []float64) {
		m = math.Max(m, floats.Max(s))
	})
	return m, err
}

func (g *Grid) eachShell(v int, fn func([]float64)) error {
	f, err := g.field(v)
	if err != nil {
		return err
	}
	for i := 0; i < f.Shells(); i++ {
		s, err := f.Shell(i)
		if err != nil {
			return err
		}
		fn(s)
	}
	return nil
}
