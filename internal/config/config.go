package config

import (
	"os"
	"strconv"

	"datagate/domain/quality"
	"datagate/domain/sampling"
	"datagate/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Quality  QualityConfig
	Sampling SamplingConfig
	Storage  StorageConfig
	Database DatabaseConfig
}

// QualityConfig holds the watermark thresholds for each check
type QualityConfig struct {
	Engine quality.EngineConfig
}

// SamplingConfig holds the profiling sampler policy
type SamplingConfig struct {
	RowThreshold int
	SampleSize   int
	Seed         int64
}

// StorageConfig holds the text-table registry storage root
type StorageConfig struct {
	Root string
}

// DatabaseConfig holds the optional Postgres registry settings
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Quality: QualityConfig{
			Engine: quality.EngineConfig{
				MissingValues: loadThresholds("QC_MISSING"),
				DuplicateKeys: loadThresholds("QC_DUPLICATE"),
				NullKeys:      loadThresholds("QC_NULLKEY"),
			},
		},
		Sampling: SamplingConfig{
			RowThreshold: getEnvIntOrDefault("SAMPLE_ROW_THRESHOLD", sampling.DefaultRowThreshold),
			SampleSize:   getEnvIntOrDefault("SAMPLE_SIZE", sampling.DefaultSampleSize),
			Seed:         int64(getEnvIntOrDefault("SAMPLE_SEED", sampling.DefaultSeed)),
		},
		Storage: StorageConfig{
			Root: getEnvOrDefault("STORAGE_ROOT", "./artifacts"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := config.Quality.Engine.Validate(); err != nil {
		return nil, errors.Wrap(err, "quality configuration is invalid")
	}
	if config.Sampling.SampleSize <= 0 || config.Sampling.RowThreshold <= 0 {
		return nil, errors.ConfigInvalid("sampling thresholds must be positive")
	}
	if config.Sampling.SampleSize > config.Sampling.RowThreshold {
		return nil, errors.ConfigInvalid("SAMPLE_SIZE cannot exceed SAMPLE_ROW_THRESHOLD")
	}
	if config.Storage.Root == "" {
		return nil, errors.ConfigInvalid("STORAGE_ROOT cannot be empty")
	}

	return config, nil
}

func loadThresholds(prefix string) quality.Thresholds {
	defaults := quality.DefaultThresholds()
	return quality.Thresholds{
		LowWatermark:  getEnvFloatOrDefault(prefix+"_LOW_WATERMARK", defaults.LowWatermark),
		HighWatermark: getEnvFloatOrDefault(prefix+"_HIGH_WATERMARK", defaults.HighWatermark),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
