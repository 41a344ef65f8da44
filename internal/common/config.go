package common

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Batch    BatchConfig
	Pipeline PipelineConfig
	Store    StoreConfig
}

// BatchConfig holds batch-engine configuration
type BatchConfig struct {
	BatchSize        int
	NumWorkers       int
	MaxMemoryPercent float64
	HardMemoryLimit  float64
	ProgressEvery    int
}

// PipelineConfig holds two-pass orchestrator configuration
type PipelineConfig struct {
	FastConfidenceThreshold float64
	FastTextBudget          int
	ChunkTokenBudget        int
	HeaderRegion            int
	ExtractTimeout          time.Duration
}

// StoreConfig holds results-store configuration
type StoreConfig struct {
	DSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			BatchSize:        getEnvAsInt("BATCH_SIZE", 500),
			NumWorkers:       getEnvAsInt("NUM_WORKERS", defaultWorkers()),
			MaxMemoryPercent: getEnvAsFloat("MAX_MEMORY_PERCENT", 80),
			HardMemoryLimit:  getEnvAsFloat("HARD_MEMORY_PERCENT", 90),
			ProgressEvery:    getEnvAsInt("PROGRESS_EVERY", 100),
		},
		Pipeline: PipelineConfig{
			FastConfidenceThreshold: getEnvAsFloat("FAST_CONFIDENCE_THRESHOLD", 0.8),
			FastTextBudget:          getEnvAsInt("FAST_TEXT_BUDGET", 8000),
			ChunkTokenBudget:        getEnvAsInt("CHUNK_TOKEN_BUDGET", 512),
			HeaderRegion:            getEnvAsInt("HEADER_REGION", 2000),
			ExtractTimeout:          getEnvAsDuration("EXTRACT_TIMEOUT", 0),
		},
		Store: StoreConfig{
			DSN: getEnv("DB_URL", ""),
		},
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.BatchSize < 1 {
		return NewAppError("CONFIG_ERROR", "BATCH_SIZE must be positive", ErrInvalidInput)
	}
	if c.Batch.NumWorkers < 1 {
		return NewAppError("CONFIG_ERROR", "NUM_WORKERS must be positive", ErrInvalidInput)
	}
	if c.Batch.MaxMemoryPercent <= 0 || c.Batch.MaxMemoryPercent > c.Batch.HardMemoryLimit {
		return NewAppError("CONFIG_ERROR", "MAX_MEMORY_PERCENT must be in (0, HARD_MEMORY_PERCENT]", ErrInvalidInput)
	}
	if c.Pipeline.FastConfidenceThreshold < 0 || c.Pipeline.FastConfidenceThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "FAST_CONFIDENCE_THRESHOLD must be in [0,1]", ErrInvalidInput)
	}
	return nil
}
