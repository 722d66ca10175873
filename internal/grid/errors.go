package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVariable indicates a variable index outside [0, n).
	ErrInvalidVariable = errors.New("grid: invalid variable index")

	// ErrIndexOutOfRange indicates a shell, row or column outside the addressed extent.
	ErrIndexOutOfRange = errors.New("grid: index out of range")

	// ErrDimensionMismatch indicates a non-positive extent or inconsistent shapes.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrLineLength indicates a line longer than the target depth.
	ErrLineLength = errors.New("grid: line length exceeds depth")

	// ErrReleased indicates use of a grid after Release.
	ErrReleased = errors.New("grid: use of released grid")
)

// Axis names one of the four grid axes.
type Axis int

const (
	AxisVariable Axis = iota
	AxisShell
	AxisRow
	AxisColumn
)

func (a Axis) String() string {
	switch a {
	case AxisVariable:
		return "variable"
	case AxisShell:
		return "shell"
	case AxisRow:
		return "row"
	case AxisColumn:
		return "column"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// IndexError reports which index failed and the extent it was checked against.
type IndexError struct {
	Axis    Axis
	Index   int
	Extent  int
	Wrapped error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s %d not in [0, %d)", e.Wrapped, e.Axis, e.Index, e.Extent)
}

func (e *IndexError) Unwrap() error {
	return e.Wrapped
}

func checkIndex(axis Axis, idx, extent int) error {
	if idx < 0 || idx >= extent {
		wrapped := ErrIndexOutOfRange
		if axis == AxisVariable {
			wrapped = ErrInvalidVariable
		}
		return &IndexError{Axis: axis, Index: idx, Extent: extent, Wrapped: wrapped}
	}
	return nil
}

func dimensionError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDimensionMismatch}, args...)...)
}
