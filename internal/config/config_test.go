package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagate/domain/sampling"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.20, cfg.Quality.Engine.MissingValues.LowWatermark)
	assert.Equal(t, 0.40, cfg.Quality.Engine.MissingValues.HighWatermark)
	assert.Equal(t, sampling.DefaultRowThreshold, cfg.Sampling.RowThreshold)
	assert.Equal(t, sampling.DefaultSampleSize, cfg.Sampling.SampleSize)
	assert.Equal(t, int64(sampling.DefaultSeed), cfg.Sampling.Seed)
	assert.Equal(t, "./artifacts", cfg.Storage.Root)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QC_MISSING_LOW_WATERMARK", "0.25")
	t.Setenv("QC_MISSING_HIGH_WATERMARK", "0.35")
	t.Setenv("SAMPLE_ROW_THRESHOLD", "1000")
	t.Setenv("SAMPLE_SEED", "7")
	t.Setenv("STORAGE_ROOT", "/var/lib/datagate")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Quality.Engine.MissingValues.LowWatermark)
	assert.Equal(t, 0.35, cfg.Quality.Engine.MissingValues.HighWatermark)
	assert.Equal(t, 1000, cfg.Sampling.RowThreshold)
	assert.Equal(t, int64(7), cfg.Sampling.Seed)
	assert.Equal(t, "/var/lib/datagate", cfg.Storage.Root)
}

func TestLoad_RejectsInvertedWatermarks(t *testing.T) {
	t.Setenv("QC_NULLKEY_LOW_WATERMARK", "0.6")
	t.Setenv("QC_NULLKEY_HIGH_WATERMARK", "0.3")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveSampling(t *testing.T) {
	t.Setenv("SAMPLE_SIZE", "-5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsSampleSizeAboveThreshold(t *testing.T) {
	t.Setenv("SAMPLE_ROW_THRESHOLD", "1000")
	t.Setenv("SAMPLE_SIZE", "2000")

	_, err := Load()
	assert.Error(t, err)
}
