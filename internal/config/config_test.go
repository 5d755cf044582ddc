package config

import "testing"

func TestDefaultEngineConfig_Defaults(t *testing.T) {
	t.Setenv("RULES_WORKERS", "")
	cfg := DefaultEngineConfig()
	if cfg.Workers != 4 {
		t.Errorf("expected default 4 workers, got %d", cfg.Workers)
	}
	if cfg.ConditionCacheCap != 1024 {
		t.Errorf("expected default condition cache 1024, got %d", cfg.ConditionCacheCap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestDefaultEngineConfig_EnvOverride(t *testing.T) {
	t.Setenv("RULES_WORKERS", "8")
	cfg := DefaultEngineConfig()
	if cfg.Workers != 8 {
		t.Errorf("expected overridden 8 workers, got %d", cfg.Workers)
	}
}

func TestEngineConfig_ValidateRejectsZeroWorkers(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero workers")
	}
}
