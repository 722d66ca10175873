package experiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shellgrid/internal/config"
	"github.com/san-kum/shellgrid/internal/monitoring"
	"github.com/san-kum/shellgrid/internal/storage"
)

func init() {
	monitoring.SetLogger(nil)
}

func smallConfig(ranks int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Shells, cfg.Rows, cfg.Depth, cfg.Ranks = 8, 2, 4, ranks
	return cfg
}

func TestRun_SingleRank(t *testing.T) {
	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	results, err := New(smallConfig(1), st).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Greater(t, res.Dt, 0.0)
	assert.Equal(t, res.Dt, res.LocalDt)
	assert.Greater(t, res.DonorMax, 0.0)
	assert.Equal(t, 1.0, res.Metrics["finite"])
	assert.InDelta(t, res.Metrics["mass"], res.Metrics["total_mass"], 1e-12)

	meta, err := st.Load(res.RunID)
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Step)
	assert.Len(t, meta.Variables, 4)
}

func TestRun_RanksAgreeOnTimestep(t *testing.T) {
	single, err := New(smallConfig(1), nil).Run(context.Background())
	require.NoError(t, err)

	results, err := New(smallConfig(4), nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	total := 0.0
	for r, res := range results {
		assert.Equal(t, r, res.Rank)
		assert.Equal(t, 2, res.Shells)
		assert.Equal(t, results[0].Dt, res.Dt)
		assert.GreaterOrEqual(t, res.LocalDt, res.Dt)
		total += res.Metrics["mass"]
	}
	assert.InDelta(t, single[0].Dt, results[0].Dt, 1e-12)
	assert.InDelta(t, single[0].Metrics["mass"], total, 1e-9)
	assert.InDelta(t, total, results[3].Metrics["total_mass"], 1e-12)
}

func TestRun_UniformWithoutStability(t *testing.T) {
	cfg := config.GetPreset("uniform")
	cfg.Ranks = 2

	results, err := New(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	for _, res := range results {
		assert.Zero(t, res.Dt)
		assert.Contains(t, res.Metrics, "mass")
	}
}

func TestRun_TooManyRanks(t *testing.T) {
	_, err := New(smallConfig(16), nil).Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
}
