// Package config provides environment-based settings for the daemon.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds environment-based settings.
type Config struct {
	// DataPath points at the bundled yearly prayer-time JSON resource.
	DataPath string
	// StorePath is the notification database directory. Empty selects the
	// in-memory store (dry-run mode).
	StorePath string

	LookaheadDays         int
	AdvanceWarningMinutes int
	RefreshLead           time.Duration
	FallbackSpec          string

	BatchSize    int
	BatchPacing  float64
	LowWaterMark int

	DispatchInterval time.Duration
	MonitorInterval  time.Duration

	DebugAddr string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dataPath := os.Getenv("ATHAN_DATA_PATH")
	if dataPath == "" {
		return nil, fmt.Errorf("ATHAN_DATA_PATH is required")
	}

	cfg := &Config{
		DataPath:              dataPath,
		StorePath:             os.Getenv("ATHAN_STORE_PATH"),
		LookaheadDays:         intEnv("ATHAN_LOOKAHEAD_DAYS", 10),
		AdvanceWarningMinutes: intEnv("ATHAN_ADVANCE_WARNING_MINUTES", 10),
		RefreshLead:           durationEnv("ATHAN_REFRESH_LEAD", 30*time.Minute),
		FallbackSpec:          stringEnv("ATHAN_FALLBACK_SPEC", "30 3 * * *"),
		BatchSize:             intEnv("ATHAN_BATCH_SIZE", 10),
		BatchPacing:           floatEnv("ATHAN_BATCH_PACING", 2),
		LowWaterMark:          intEnv("ATHAN_LOW_WATER_MARK", 5),
		DispatchInterval:      durationEnv("ATHAN_DISPATCH_INTERVAL", 15*time.Second),
		MonitorInterval:       durationEnv("ATHAN_MONITOR_INTERVAL", 15*time.Minute),
		DebugAddr:             stringEnv("ATHAN_DEBUG_ADDR", ":8091"),
	}

	if cfg.LookaheadDays < 1 {
		return nil, fmt.Errorf("ATHAN_LOOKAHEAD_DAYS must be at least 1")
	}
	if cfg.AdvanceWarningMinutes < 0 {
		return nil, fmt.Errorf("ATHAN_ADVANCE_WARNING_MINUTES must not be negative")
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
