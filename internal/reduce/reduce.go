// Package reduce provides the collective reduction used to combine
// per-process scalars such as the stability-limited timestep.
//
// Routines receive a [Reducer] instead of talking to a communication layer
// directly, so their local arithmetic can be tested with [Local].
package reduce

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrOpMismatch = errors.New("reduce: members used different operations in one round")
	ErrUnknownOp  = errors.New("reduce: unknown operation")
	ErrEmpty      = errors.New("reduce: nothing to combine")
)

type Op int

const (
	Min Op = iota
	Max
	Sum
)

func (o Op) String() string {
	switch o {
	case Min:
		return "min"
	case Max:
		return "max"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Apply combines values with o.
func (o Op) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	switch o {
	case Min:
		return floats.Min(values), nil
	case Max:
		return floats.Max(values), nil
	case Sum:
		return floats.Sum(values), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownOp, int(o))
	}
}

// Reducer combines one value from every participant and returns the result
// to each of them.
type Reducer interface {
	Reduce(ctx context.Context, value float64, op Op) (float64, error)
}

// Local is the single-process reducer: the combined value is the input.
type Local struct{}

func (Local) Reduce(ctx context.Context, value float64, op Op) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return op.Apply([]float64{value})
}
