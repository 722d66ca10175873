// Package setup turns a run configuration into seeded grid buffers.
package setup

import (
	"fmt"
	"math"

	"github.com/san-kum/shellgrid/internal/config"
	"github.com/san-kum/shellgrid/internal/grid"
	"github.com/san-kum/shellgrid/internal/monitoring"
	"github.com/san-kum/shellgrid/internal/stability"
)

// Layout returns the per-variable interior and ghost extents of cfg.
func Layout(cfg *config.Config) (dims, ghost []grid.Extents) {
	dims = make([]grid.Extents, len(cfg.Variables))
	ghost = make([]grid.Extents, len(cfg.Variables))
	for i := range cfg.Variables {
		dims[i] = grid.Extents(cfg.DimsOf(i))
		ghost[i] = grid.Extents(cfg.GhostOf(i))
	}
	return dims, ghost
}

// Build allocates an empty grid for cfg.
func Build(cfg *config.Config) (*grid.Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dims, ghost := Layout(cfg)

	var (
		g   *grid.Grid
		err error
	)
	switch cfg.Mode {
	case config.ModeUniform:
		g, err = grid.NewUniform(dims)
	default:
		g, err = grid.NewRagged(dims, ghost)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Name, err)
	}
	monitoring.Logf("setup: built %s grid %q with %d variables", cfg.Mode, cfg.Name, g.Variables())
	return g, nil
}

// Radii returns shells+1 evenly spaced interface radii.
func Radii(cfg *config.Config, shells int) []float64 {
	r := make([]float64, shells+1)
	inner, outer := cfg.Profile.InnerRadius, cfg.Profile.OuterRadius
	for i := range r {
		r[i] = inner + (outer-inner)*float64(i)/float64(shells)
	}
	return r
}

// Seed fills density, velocity and sound speed with an analytic profile.
// Velocity is set on every shell, ghost shells included; other variables
// are zeroed.
func Seed(g *grid.Grid, cfg *config.Config) error {
	p := cfg.Profile
	density := cfg.Index("density")
	velocity := cfg.Index(cfg.Stability.Velocity)
	sound := cfg.Index(cfg.Stability.SoundSpeed)

	for v := 0; v < g.Variables(); v++ {
		if err := g.Fill(v, 0); err != nil {
			return err
		}
	}

	if density >= 0 {
		err := eachShell(g, cfg, density, func(r float64, line []float64) {
			x := r / p.Surface()
			for l := range line {
				line[l] = p.CentralDensity * math.Max(1-x*x, 0)
			}
		})
		if err != nil {
			return err
		}
	}
	if velocity >= 0 && cfg.Stability.Velocity != "" {
		err := eachShell(g, cfg, velocity, func(r float64, line []float64) {
			for l := range line {
				line[l] = -p.Infall * r / p.Surface()
			}
		})
		if err != nil {
			return err
		}
	}
	if sound >= 0 && cfg.Stability.SoundSpeed != "" {
		if err := g.Fill(sound, p.SoundSpeed); err != nil {
			return err
		}
	}
	return nil
}

// eachShell loads one line per (shell, row) of v, passing the inner
// interface radius of the shell. Shells past the outer radius keep the
// outermost radius.
func eachShell(g *grid.Grid, cfg *config.Config, v int, fn func(r float64, line []float64)) error {
	shells, err := g.Shells(v)
	if err != nil {
		return err
	}
	interior := cfg.DimsOf(v)[0]
	radii := Radii(cfg, interior)

	for i := 0; i < shells; i++ {
		rows, depth, err := g.ShapeAt(v, i)
		if err != nil {
			return err
		}
		r := radii[min(i, interior)]
		line := make([]float64, depth)
		for j := 0; j < rows; j++ {
			fn(r, line)
			if err := g.LoadLine(line, v, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// StabilityParams resolves the stability slots of cfg. ok is false when the
// configuration has no stability variables.
func StabilityParams(cfg *config.Config) (p stability.Params, ok bool) {
	s := cfg.Stability
	if s.Velocity == "" || s.SoundSpeed == "" || s.Donor == "" {
		return stability.Params{}, false
	}
	sound := cfg.Index(s.SoundSpeed)
	return stability.Params{
		Velocity:   cfg.Index(s.Velocity),
		SoundSpeed: sound,
		Donor:      cfg.Index(s.Donor),
		Courant:    s.Courant,
		MaxDt:      s.MaxDt,
		Radii:      Radii(cfg, cfg.DimsOf(sound)[0]),
	}, true
}
