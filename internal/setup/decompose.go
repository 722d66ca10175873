package setup

import (
	"fmt"

	"github.com/san-kum/shellgrid/internal/config"
)

// Decompose splits cfg radially into one configuration per rank. Every
// rank keeps the ghost shells of the full configuration; filling them from
// neighbouring ranks is left to the exchange layer.
func Decompose(cfg *config.Config, ranks int) ([]*config.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ranks < 1 {
		return nil, fmt.Errorf("%w: %d ranks", config.ErrInvalid, ranks)
	}

	out := make([]*config.Config, ranks)
	for r := range out {
		sub := *cfg
		sub.Name = fmt.Sprintf("%s.%d", cfg.Name, r)
		sub.Ranks = 1
		sub.Variables = make([]config.VariableConfig, len(cfg.Variables))

		for i, v := range cfg.Variables {
			dims := cfg.DimsOf(i)
			lo, hi := span(dims[0], r, ranks)
			if hi <= lo {
				return nil, fmt.Errorf("%w: %s has %d shells for %d ranks", config.ErrInvalid, v.Name, dims[0], ranks)
			}
			sv := v
			sv.Dims = []int{hi - lo, dims[1], dims[2]}
			if v.Ghost != nil {
				sv.Ghost = append([]int(nil), v.Ghost...)
			}
			sub.Variables[i] = sv
		}

		lo, hi := span(cfg.Shells, r, ranks)
		sub.Shells = max(hi-lo, 1)
		radii := Radii(cfg, cfg.Shells)
		sub.Profile.InnerRadius = radii[lo]
		sub.Profile.OuterRadius = radii[max(hi, lo+1)]
		sub.Profile.StarRadius = cfg.Profile.Surface()
		out[r] = &sub
	}
	return out, nil
}

func span(n, r, ranks int) (lo, hi int) {
	return r * n / ranks, (r + 1) * n / ranks
}
