package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENGINE_CACHE_SIZE", "")
	t.Setenv("ENGINE_DEFAULT_TIER", "")
	t.Setenv("ENGINE_MOVE_DEADLINE_MS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Engine.CacheSize != defaultCacheSize {
		t.Fatalf("cache size default: got %d, want %d", cfg.Engine.CacheSize, defaultCacheSize)
	}
	if cfg.Engine.DefaultTier != defaultTier {
		t.Fatalf("tier default: got %d, want %d", cfg.Engine.DefaultTier, defaultTier)
	}
	if cfg.Engine.MoveDeadline != defaultMoveDeadline {
		t.Fatalf("deadline default: got %d, want %d", cfg.Engine.MoveDeadline, defaultMoveDeadline)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENGINE_CACHE_SIZE", "1024")
	t.Setenv("ENGINE_DEFAULT_TIER", "6")
	t.Setenv("ENGINE_MOVE_DEADLINE_MS", "250")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Engine.CacheSize != 1024 || cfg.Engine.DefaultTier != 6 || cfg.Engine.MoveDeadline != 250 {
		t.Fatalf("overrides not applied: %+v", cfg.Engine)
	}
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	t.Setenv("ENGINE_DEFAULT_TIER", "strongest")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected an error for a non-numeric tier")
	}
}
