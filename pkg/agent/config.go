package agent

import (
	"time"

	"github.com/spf13/viper"

	"github.com/skillet-ai/skillet/pkg/contextcache"
	"github.com/skillet-ai/skillet/pkg/matcher"
)

const defaultSystemPrompt = "You are a helpful assistant. You have access to a library of " +
	"skills that provide specialized instructions and tools for specific kinds of tasks."

// Config holds the agent's runtime settings.
type Config struct {
	SkillsDirectory string
	MatchThreshold  float64
	CacheMaxEntries int
	CacheMaxAge     time.Duration
	Model           string
	MaxTokens       int
	SystemPrompt    string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		SkillsDirectory: "./skills",
		MatchThreshold:  matcher.DefaultThreshold,
		CacheMaxEntries: contextcache.DefaultMaxEntries,
		CacheMaxAge:     contextcache.DefaultMaxAge,
		Model:           "claude-sonnet-4-20250514",
		MaxTokens:       8192,
		SystemPrompt:    defaultSystemPrompt,
	}
}

// FromViper builds a Config from viper, falling back to defaults for
// unset keys.
func FromViper(v *viper.Viper) Config {
	cfg := DefaultConfig()

	if v.IsSet("skills.directory") {
		cfg.SkillsDirectory = v.GetString("skills.directory")
	}
	if v.IsSet("matching.threshold") {
		cfg.MatchThreshold = v.GetFloat64("matching.threshold")
	}
	if v.IsSet("cache.max_entries") {
		cfg.CacheMaxEntries = v.GetInt("cache.max_entries")
	}
	if v.IsSet("cache.max_age") {
		cfg.CacheMaxAge = v.GetDuration("cache.max_age")
	}
	if v.IsSet("model") {
		cfg.Model = v.GetString("model")
	}
	if v.IsSet("max_tokens") {
		cfg.MaxTokens = v.GetInt("max_tokens")
	}
	if v.IsSet("system_prompt") {
		cfg.SystemPrompt = v.GetString("system_prompt")
	}

	return cfg
}
