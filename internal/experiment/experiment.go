// Package experiment runs one setup-and-timestep pass of a configuration,
// one goroutine per radial sub-domain.
package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/shellgrid/internal/config"
	"github.com/san-kum/shellgrid/internal/grid"
	"github.com/san-kum/shellgrid/internal/metrics"
	"github.com/san-kum/shellgrid/internal/monitoring"
	"github.com/san-kum/shellgrid/internal/reduce"
	"github.com/san-kum/shellgrid/internal/setup"
	"github.com/san-kum/shellgrid/internal/stability"
	"github.com/san-kum/shellgrid/internal/state"
	"github.com/san-kum/shellgrid/internal/storage"
)

// finiteThreshold bounds any value considered healthy.
const finiteThreshold = 1e30

type RankResult struct {
	Rank     int
	RunID    string
	Shells   int
	Dt       float64
	LocalDt  float64
	DonorMax float64
	Metrics  map[string]float64
}

type Experiment struct {
	cfg   *config.Config
	store *storage.Store
}

// New prepares an experiment. store may be nil to skip snapshots.
func New(cfg *config.Config, store *storage.Store) *Experiment {
	return &Experiment{cfg: cfg, store: store}
}

func (e *Experiment) Run(ctx context.Context) ([]RankResult, error) {
	subs, err := setup.Decompose(e.cfg, e.cfg.Ranks)
	if err != nil {
		return nil, err
	}

	group := reduce.NewGroup(len(subs))
	results := make([]RankResult, len(subs))

	err = group.Run(ctx, func(ctx context.Context, m *reduce.Member) error {
		res, err := e.runRank(ctx, subs[m.Rank()], m)
		if err != nil {
			return fmt.Errorf("rank %d: %w", m.Rank(), err)
		}
		results[m.Rank()] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Rank < results[j].Rank })
	return results, nil
}

func (e *Experiment) runRank(ctx context.Context, cfg *config.Config, m *reduce.Member) (RankResult, error) {
	res := RankResult{Rank: m.Rank(), Shells: cfg.Shells}

	buffers, err := state.New(func() (*grid.Grid, error) { return setup.Build(cfg) })
	if err != nil {
		return res, err
	}
	defer buffers.Release()

	if err := setup.Seed(buffers.New, cfg); err != nil {
		return res, err
	}

	if p, ok := setup.StabilityParams(cfg); ok {
		step, err := stability.Timestep(ctx, buffers.New, p, m)
		if err != nil {
			return res, err
		}
		res.Dt, res.LocalDt, res.DonorMax = step.Dt, step.LocalDt, step.DonorMax
	} else {
		// Every member still joins both rounds so the group stays in step.
		if _, err := m.Reduce(ctx, 0, reduce.Min); err != nil {
			return res, err
		}
		if _, err := m.Reduce(ctx, 0, reduce.Max); err != nil {
			return res, err
		}
	}

	ms := []metrics.Metric{metrics.NewFinite(finiteThreshold)}
	if density := cfg.Index("density"); density >= 0 {
		ms = append(ms, metrics.NewMass(density, setup.Radii(cfg, cfg.DimsOf(density)[0])))
	}
	if res.Metrics, err = metrics.Collect(buffers.New, ms...); err != nil {
		return res, err
	}

	if mass, ok := res.Metrics["mass"]; ok {
		total, err := m.Reduce(ctx, mass, reduce.Sum)
		if err != nil {
			return res, err
		}
		res.Metrics["total_mass"] = total
	} else if _, err := m.Reduce(ctx, 0, reduce.Sum); err != nil {
		return res, err
	}

	if err := buffers.Advance(); err != nil {
		return res, err
	}

	if e.store != nil {
		meta := storage.RunMetadata{
			Name:     cfg.Name,
			Mode:     cfg.Mode,
			Rank:     m.Rank(),
			Ranks:    e.cfg.Ranks,
			Step:     buffers.Steps,
			Dt:       res.Dt,
			DonorMax: res.DonorMax,
			Metrics:  res.Metrics,
		}
		if res.RunID, err = e.store.Save(meta, buffers.Old, cfg.Names()); err != nil {
			return res, err
		}
	}

	monitoring.Logf("experiment: rank %d dt=%.6g local=%.6g donor=%.4f", res.Rank, res.Dt, res.LocalDt, res.DonorMax)
	return res, nil
}
