package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDataPath(t *testing.T) {
	t.Setenv("ATHAN_DATA_PATH", "")
	if _, err := Load(); err == nil {
		t.Error("expected error without ATHAN_DATA_PATH")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ATHAN_DATA_PATH", "/tmp/yearly.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LookaheadDays != 10 {
		t.Errorf("expected default lookahead 10, got %d", cfg.LookaheadDays)
	}
	if cfg.RefreshLead != 30*time.Minute {
		t.Errorf("expected default refresh lead 30m, got %v", cfg.RefreshLead)
	}
	if cfg.FallbackSpec != "30 3 * * *" {
		t.Errorf("unexpected default fallback spec %q", cfg.FallbackSpec)
	}
	if cfg.StorePath != "" {
		t.Errorf("store path should default to empty (in-memory), got %q", cfg.StorePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ATHAN_DATA_PATH", "/srv/athan/yearly.json")
	t.Setenv("ATHAN_LOOKAHEAD_DAYS", "14")
	t.Setenv("ATHAN_REFRESH_LEAD", "1h")
	t.Setenv("ATHAN_BATCH_PACING", "0.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LookaheadDays != 14 {
		t.Errorf("expected lookahead 14, got %d", cfg.LookaheadDays)
	}
	if cfg.RefreshLead != time.Hour {
		t.Errorf("expected refresh lead 1h, got %v", cfg.RefreshLead)
	}
	if cfg.BatchPacing != 0.5 {
		t.Errorf("expected pacing 0.5, got %v", cfg.BatchPacing)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ATHAN_DATA_PATH", "/tmp/yearly.json")
	t.Setenv("ATHAN_LOOKAHEAD_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero lookahead")
	}
}
