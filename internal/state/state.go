// Package state pairs the new and old grid buffers of a run.
package state

import (
	"errors"
	"fmt"

	"github.com/san-kum/shellgrid/internal/grid"
)

var ErrReleased = errors.New("state: buffers released")

type Buffers struct {
	New *grid.Grid
	Old *grid.Grid

	// Steps counts completed Advance calls.
	Steps int
}

// New builds both buffers with build. The two grids never share storage.
func New(build func() (*grid.Grid, error)) (*Buffers, error) {
	n, err := build()
	if err != nil {
		return nil, fmt.Errorf("new buffer: %w", err)
	}
	o, err := build()
	if err != nil {
		n.Release()
		return nil, fmt.Errorf("old buffer: %w", err)
	}
	return &Buffers{New: n, Old: o}, nil
}

// FromGrid uses g as the new buffer and a clone of it as the old buffer.
func FromGrid(g *grid.Grid) (*Buffers, error) {
	o, err := g.Clone()
	if err != nil {
		return nil, err
	}
	return &Buffers{New: g, Old: o}, nil
}

// Advance ends a step: the new state becomes the old state.
func (b *Buffers) Advance() error {
	if b.New == nil || b.Old == nil {
		return ErrReleased
	}
	if err := b.Old.CopyFrom(b.New); err != nil {
		return fmt.Errorf("advance: %w", err)
	}
	b.Steps++
	return nil
}

// Release frees both buffers.
func (b *Buffers) Release() {
	if b.New != nil {
		b.New.Release()
	}
	if b.Old != nil {
		b.Old.Release()
	}
	b.New, b.Old = nil, nil
}
