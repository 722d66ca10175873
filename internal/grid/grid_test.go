package grid

import (
	"errors"
	"math"
	"testing"
)

func TestNewUniform_IndependentVariables(t *testing.T) {
	g, err := NewUniform([]Extents{{2, 2, 2}, {3, 1, 1}})
	if err != nil {
		t.Fatalf("NewUniform: %v", err)
	}

	if n, _ := g.Len(0); n != 8 {
		t.Errorf("variable 0 has %d slots, want 8", n)
	}
	if n, _ := g.Len(1); n != 3 {
		t.Errorf("variable 1 has %d slots, want 3", n)
	}

	for i := 0; i < 3; i++ {
		if err := g.Set(1, i, 0, 0, float64(i)+0.5); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	sum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				p, err := g.Element(0, i, j, k)
				if err != nil {
					t.Fatalf("Element: %v", err)
				}
				*p = 1.0
				sum += *p
			}
		}
	}
	if sum != 8.0 {
		t.Errorf("sum = %v, want 8", sum)
	}

	for i := 0; i < 3; i++ {
		x, _ := g.Get(1, i, 0, 0)
		if x != float64(i)+0.5 {
			t.Errorf("variable 1 shell %d = %v after writing variable 0", i, x)
		}
	}
}

func TestNewRagged_Depths(t *testing.T) {
	g, err := NewRagged([]Extents{{3, 4, 5}}, []Extents{{2, 1, 1}})
	if err != nil {
		t.Fatalf("NewRagged: %v", err)
	}

	if d, _ := g.DepthAt(0, 0); d != 5 {
		t.Errorf("DepthAt(0, 0) = %d, want 5", d)
	}
	if d, _ := g.DepthAt(0, 4); d != 1 {
		t.Errorf("DepthAt(0, 4) = %d, want 1", d)
	}
	if _, err := g.DepthAt(0, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DepthAt(0, 5): expected ErrIndexOutOfRange, got %v", err)
	}

	ext, _ := g.Extents(0)
	if ext != (Extents{5, 4, 5}) {
		t.Errorf("Extents(0) = %v, want [5 4 5]", ext)
	}
}

func TestConstruction_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Grid, error)
	}{
		{"uniform no variables", func() (*Grid, error) { return NewUniform(nil) }},
		{"uniform bad extent", func() (*Grid, error) { return NewUniform([]Extents{{1, 1, 1}, {1, 0, 1}}) }},
		{"ragged no variables", func() (*Grid, error) { return NewRagged(nil, nil) }},
		{"ragged ghost count", func() (*Grid, error) { return NewRagged([]Extents{{1, 1, 1}}, nil) }},
		{"ragged ghost shape", func() (*Grid, error) { return NewRagged([]Extents{{1, 1, 1}}, []Extents{{1, 0, 1}}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.build()
			if !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("expected ErrDimensionMismatch, got %v", err)
			}
			if g != nil {
				t.Error("expected nil grid on error")
			}
		})
	}
}

func TestInvalidVariable(t *testing.T) {
	g, _ := NewUniform([]Extents{{1, 1, 1}})

	for _, v := range []int{-1, 1, 7} {
		if _, err := g.Element(v, 0, 0, 0); !errors.Is(err, ErrInvalidVariable) {
			t.Errorf("Element(%d): expected ErrInvalidVariable, got %v", v, err)
		}
		if _, err := g.DepthAt(v, 0); !errors.Is(err, ErrInvalidVariable) {
			t.Errorf("DepthAt(%d): expected ErrInvalidVariable, got %v", v, err)
		}
		if _, err := g.StoreLine(v, 0, 0); !errors.Is(err, ErrInvalidVariable) {
			t.Errorf("StoreLine(%d): expected ErrInvalidVariable, got %v", v, err)
		}
	}
}

func TestLineRoundTrip(t *testing.T) {
	g, _ := NewRagged([]Extents{{3, 4, 5}, {2, 2, 3}}, []Extents{{2, 1, 1}, {0, 0, 0}})

	tests := []struct {
		v, shell, row int
		values        []float64
	}{
		{0, 0, 3, []float64{1, 2, 3, 4, 5}},
		{0, 2, 0, []float64{-1, 0, 1, 2, 3}},
		{0, 4, 0, []float64{42}},
		{1, 1, 1, []float64{0.1, 0.2, 0.3}},
	}

	for _, tt := range tests {
		if err := g.LoadLine(tt.values, tt.v, tt.shell, tt.row); err != nil {
			t.Fatalf("LoadLine(%d,%d,%d): %v", tt.v, tt.shell, tt.row, err)
		}
		got, err := g.StoreLine(tt.v, tt.shell, tt.row)
		if err != nil {
			t.Fatalf("StoreLine: %v", err)
		}
		if len(got) != len(tt.values) {
			t.Fatalf("StoreLine length %d, want %d", len(got), len(tt.values))
		}
		for l := range got {
			if got[l] != tt.values[l] {
				t.Errorf("line[%d] = %v, want %v", l, got[l], tt.values[l])
			}
		}
	}
}

func TestLoadLine_Partial(t *testing.T) {
	g, _ := NewUniform([]Extents{{1, 1, 4}})
	g.Fill(0, 9)

	if err := g.LoadLine([]float64{1, 2}, 0, 0, 0); err != nil {
		t.Fatalf("LoadLine: %v", err)
	}
	got, _ := g.StoreLine(0, 0, 0)
	want := []float64{1, 2, 9, 9}
	for l := range want {
		if got[l] != want[l] {
			t.Errorf("line = %v, want %v", got, want)
			break
		}
	}
}

func TestLoadLine_TooLong(t *testing.T) {
	g, _ := NewRagged([]Extents{{3, 4, 5}}, []Extents{{2, 1, 1}})

	err := g.LoadLine([]float64{1, 2}, 0, 3, 0)
	if !errors.Is(err, ErrLineLength) {
		t.Fatalf("expected ErrLineLength, got %v", err)
	}
	if x, _ := g.Get(0, 3, 0, 0); x != 0 {
		t.Errorf("rejected line was partially written: %v", x)
	}

	buf := make([]float64, 2)
	if _, err := g.StoreLineInto(buf, 0, 0, 0); !errors.Is(err, ErrLineLength) {
		t.Errorf("StoreLineInto short buffer: expected ErrLineLength, got %v", err)
	}
}

func TestLineRowOutOfRange(t *testing.T) {
	g, _ := NewRagged([]Extents{{3, 4, 5}}, []Extents{{2, 1, 1}})

	tests := []struct {
		name   string
		values []float64
		shell  int
		row    int
	}{
		{"nil past last row", nil, 0, 99},
		{"empty negative row", []float64{}, 4, -1},
		{"nil past ghost rows", nil, 3, 1},
		{"full line past last row", []float64{1, 2, 3, 4, 5}, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.LoadLine(tt.values, 0, tt.shell, tt.row)
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("LoadLine: expected ErrIndexOutOfRange, got %v", err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) || ie.Axis != AxisRow {
				t.Errorf("LoadLine: expected row IndexError, got %v", err)
			}

			buf := make([]float64, 5)
			if _, err := g.StoreLineInto(buf, 0, tt.shell, tt.row); !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("StoreLineInto: expected ErrIndexOutOfRange, got %v", err)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	g, _ := NewRagged([]Extents{{2, 2, 2}}, []Extents{{1, 1, 1}})
	g.Set(0, 2, 0, 0, 5)

	c, err := g.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	g.Set(0, 2, 0, 0, 6)
	g.Release()

	x, err := c.Get(0, 2, 0, 0)
	if err != nil {
		t.Fatalf("clone unusable after original released: %v", err)
	}
	if x != 5 {
		t.Errorf("clone value = %v, want 5", x)
	}
}

func TestRelease(t *testing.T) {
	g, _ := NewUniform([]Extents{{1, 1, 1}})
	g.Release()

	if !g.Released() || g.Variables() != 0 {
		t.Error("grid should report released with no variables")
	}
	if _, err := g.Element(0, 0, 0, 0); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased, got %v", err)
	}
	if _, err := g.Clone(); !errors.Is(err, ErrReleased) {
		t.Errorf("Clone: expected ErrReleased, got %v", err)
	}
}

func TestCopyFrom(t *testing.T) {
	a, _ := NewRagged([]Extents{{2, 2, 2}}, []Extents{{1, 1, 1}})
	b, _ := NewRagged([]Extents{{2, 2, 2}}, []Extents{{1, 1, 1}})
	b.Fill(0, 3)

	if err := a.CopyFrom(b); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if s, _ := a.Sum(0); s != 27 {
		t.Errorf("Sum after copy = %v, want 27", s)
	}

	b.Fill(0, 1)
	if s, _ := a.Sum(0); s != 27 {
		t.Error("CopyFrom left storage shared")
	}

	c, _ := NewRagged([]Extents{{2, 2, 2}}, []Extents{{1, 2, 1}})
	if err := a.CopyFrom(c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if err := a.CopyFrom(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("nil source: expected ErrDimensionMismatch, got %v", err)
	}
}

func TestStats(t *testing.T) {
	g, _ := NewRagged([]Extents{{2, 2, 3}}, []Extents{{1, 1, 1}})
	g.Fill(0, 2)
	g.Set(0, 1, 1, 2, -4)
	g.Set(0, 2, 0, 0, 10)

	sum, _ := g.Sum(0)
	if math.Abs(sum-28) > 1e-12 {
		t.Errorf("Sum = %v, want 28", sum)
	}
	if m, _ := g.Min(0); m != -4 {
		t.Errorf("Min = %v, want -4", m)
	}
	if m, _ := g.Max(0); m != 10 {
		t.Errorf("Max = %v, want 10", m)
	}

	g.Scale(0, 0.5)
	if m, _ := g.Max(0); m != 5 {
		t.Errorf("Max after Scale = %v, want 5", m)
	}
}
