// Package stability computes the Courant-limited timestep of a grid.
//
// Velocity is interface centred: shell i of the velocity field is the inner
// face of cell i, so it carries at least one more shell than the cell
// centred sound speed. That extra outer shell is usually a coarse ghost
// shell and is sampled by proportional index mapping.
package stability

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/shellgrid/internal/grid"
	"github.com/san-kum/shellgrid/internal/reduce"
)

var (
	// ErrNonPositiveTimestep is fatal for the run.
	ErrNonPositiveTimestep = errors.New("stability: non-positive timestep after reduction")

	ErrBadParams = errors.New("stability: invalid parameters")
)

type Params struct {
	Velocity   int
	SoundSpeed int
	Donor      int

	Courant float64
	MaxDt   float64

	// Radii holds the interface radii; Radii[i] and Radii[i+1] bound cell i.
	Radii []float64
}

type Result struct {
	Dt       float64
	DonorMax float64

	// LocalDt is this process's limit before reduction.
	LocalDt float64
}

// Timestep scans every interior cell, writes the donor-cell fraction into
// the Donor slot, and reduces the local limits through r.
func Timestep(ctx context.Context, g *grid.Grid, p Params, r reduce.Reducer) (Result, error) {
	local, donorMax, err := localLimit(g, p)
	if err != nil {
		return Result{}, err
	}

	dt, err := r.Reduce(ctx, local, reduce.Min)
	if err != nil {
		return Result{}, fmt.Errorf("timestep reduction: %w", err)
	}
	if dt <= 0 || math.IsNaN(dt) {
		return Result{}, fmt.Errorf("%w: %g", ErrNonPositiveTimestep, dt)
	}

	donor, err := r.Reduce(ctx, donorMax, reduce.Max)
	if err != nil {
		return Result{}, fmt.Errorf("donor reduction: %w", err)
	}

	return Result{Dt: dt, DonorMax: donor, LocalDt: local}, nil
}

func (p Params) validate(cells int) error {
	if p.Courant <= 0 || p.Courant > 1 {
		return fmt.Errorf("%w: courant %g not in (0, 1]", ErrBadParams, p.Courant)
	}
	if p.MaxDt <= 0 {
		return fmt.Errorf("%w: max dt %g", ErrBadParams, p.MaxDt)
	}
	if len(p.Radii) < cells+1 {
		return fmt.Errorf("%w: %d radii for %d cells", ErrBadParams, len(p.Radii), cells)
	}
	return nil
}

func localLimit(g *grid.Grid, p Params) (float64, float64, error) {
	cells, err := g.Shells(p.SoundSpeed)
	if err != nil {
		return 0, 0, err
	}
	if err := p.validate(cells); err != nil {
		return 0, 0, err
	}
	faces, err := g.Shells(p.Velocity)
	if err != nil {
		return 0, 0, err
	}
	if faces < cells+1 {
		return 0, 0, fmt.Errorf("%w: %d velocity shells for %d cells", ErrBadParams, faces, cells)
	}

	dt := p.MaxDt
	donorMax := 0.0

	for i := 0; i < cells; i++ {
		dr := p.Radii[i+1] - p.Radii[i]
		if dr <= 0 {
			return 0, 0, fmt.Errorf("%w: zone %d has width %g", ErrBadParams, i, dr)
		}
		rows, depth, err := g.ShapeAt(p.SoundSpeed, i)
		if err != nil {
			return 0, 0, err
		}
		outerRows, outerDepth, err := g.ShapeAt(p.Velocity, i+1)
		if err != nil {
			return 0, 0, err
		}

		for j := 0; j < rows; j++ {
			for k := 0; k < depth; k++ {
				uIn, err := g.Get(p.Velocity, i, j, k)
				if err != nil {
					return 0, 0, err
				}
				uOut, err := g.Get(p.Velocity, i+1, project(j, rows, outerRows), project(k, depth, outerDepth))
				if err != nil {
					return 0, 0, err
				}
				cs, err := g.Get(p.SoundSpeed, i, j, k)
				if err != nil {
					return 0, 0, err
				}

				uc := math.Abs(0.5 * (uIn + uOut))
				s := uc + cs

				donor := 0.0
				if s > 0 {
					donor = uc / s
					dt = math.Min(dt, p.Courant*dr/s)
				}
				if err := g.Set(p.Donor, i, j, k, donor); err != nil {
					return 0, 0, err
				}
				donorMax = math.Max(donorMax, donor)
			}
		}
	}
	return dt, donorMax, nil
}

// project maps index idx of an axis with n points onto an axis with m points.
func project(idx, n, m int) int {
	if n == m {
		return idx
	}
	return idx * m / n
}
