// Package config provides environment-variable-backed configuration loading
// for the rulesctl CLI, following the same prefixed-env-var convention used
// elsewhere in this codebase, layered underneath viper's file/flag precedence
// in cmd/rulesctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvConfig loads configuration values from environment variables under an
// optional prefix (e.g. prefix "RULES" turns key "WORKERS" into
// "RULES_WORKERS").
type EnvConfig struct {
	prefix string
}

// NewEnvConfig creates a loader for the given prefix. An empty prefix reads
// bare environment variable names.
func NewEnvConfig(prefix string) *EnvConfig {
	return &EnvConfig{prefix: prefix}
}

func (ec *EnvConfig) buildKey(key string) string {
	if ec.prefix == "" {
		return key
	}
	return strings.ToUpper(ec.prefix) + "_" + key
}

// GetString returns the environment value for key, or defaultValue if unset.
func (ec *EnvConfig) GetString(key, defaultValue string) string {
	if v := os.Getenv(ec.buildKey(key)); v != "" {
		return v
	}
	return defaultValue
}

// GetInt returns the environment value for key parsed as an int, or
// defaultValue if unset or unparseable.
func (ec *EnvConfig) GetInt(key string, defaultValue int) int {
	if v := os.Getenv(ec.buildKey(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetBool returns the environment value for key parsed as a bool, or
// defaultValue if unset or unparseable.
func (ec *EnvConfig) GetBool(key string, defaultValue bool) bool {
	if v := os.Getenv(ec.buildKey(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// EngineConfig is the process-level configuration for rulesctl: worker pool
// size, soft execution deadline, and cache sizes. Defaults mirror the spec's
// recommendations (§5 default 4 workers, §4.3.4 1024-entry condition cache,
// §9 512-entry regex cache).
type EngineConfig struct {
	Workers           int
	SoftDeadlineMs    int
	ConditionCacheCap int
	RegexCacheCap     int
	LogLevel          string
	LogFormat         string
}

// DefaultEngineConfig returns the documented defaults, overridable by env
// vars under the "RULES" prefix and then by CLI flags in cmd/rulesctl.
func DefaultEngineConfig() EngineConfig {
	env := NewEnvConfig("RULES")
	return EngineConfig{
		Workers:           env.GetInt("WORKERS", 4),
		SoftDeadlineMs:    env.GetInt("SOFT_DEADLINE_MS", 3000),
		ConditionCacheCap: env.GetInt("CONDITION_CACHE_CAP", 1024),
		RegexCacheCap:     env.GetInt("REGEX_CACHE_CAP", 512),
		LogLevel:          env.GetString("LOG_LEVEL", "info"),
		LogFormat:         env.GetString("LOG_FORMAT", "text"),
	}
}

// Validate rejects nonsensical configuration before it reaches the engine.
func (c EngineConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be >= 1, got %d", c.Workers)
	}
	if c.ConditionCacheCap < 1 {
		return fmt.Errorf("config: condition cache capacity must be >= 1, got %d", c.ConditionCacheCap)
	}
	if c.RegexCacheCap < 1 {
		return fmt.Errorf("config: regex cache capacity must be >= 1, got %d", c.RegexCacheCap)
	}
	return nil
}
