// Package config assembles the layered configuration described in
// SPEC_FULL.md's Configuration section: CLI flags override environment
// variables, which override a TOML file, which overrides built-in
// defaults. It is the structured counterpart of internal/config/loader's
// untyped map loaders (TOMLLoader, EnvLoader), grounded on the teacher's
// own internal/config package using the same loader primitives.
package config

import (
	"github.com/dshills/sweep/internal/config/loader"
)

// Config is Sweep's fully resolved configuration.
type Config struct {
	Logging LoggingConfig
	UI      UIConfig
	Ranker  RankerConfig
}

// LoggingConfig controls the structured logger (internal/app).
type LoggingConfig struct {
	Level string
}

// UIConfig controls prompt/theme/height, consumed by the renderer (out of
// scope here) and by Picker's initial Config.
type UIConfig struct {
	Theme  string
	Height int
	Prompt string
}

// RankerConfig seeds the ranker's initial scorer and ordering mode.
type RankerConfig struct {
	Scorer    string
	KeepOrder bool
}

// Default returns Sweep's built-in defaults, the bottom layer of the
// override stack.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		UI:      UIConfig{Theme: "", Height: 0, Prompt: "> "},
		Ranker:  RankerConfig{Scorer: "fuzzy", KeepOrder: false},
	}
}

// Load resolves a Config by layering, lowest priority first: built-in
// defaults, an optional TOML file at path (ignored if path is empty or the
// file does not exist), and SWEEP_-prefixed environment variables.
func Load(path string) (Config, error) {
	merged := toMap(Default())

	if path != "" {
		fileData, err := loader.NewTOMLLoader(path).Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, fileData)
	}

	envData, err := loader.NewEnvLoader("SWEEP_").Load()
	if err != nil {
		return Config{}, err
	}
	merged = loader.DeepMerge(merged, envData)

	cfg := Default()
	applyMap(&cfg, merged)
	return cfg, nil
}

func toMap(cfg Config) map[string]any {
	return map[string]any{
		"logging": map[string]any{"level": cfg.Logging.Level},
		"ui": map[string]any{
			"theme":  cfg.UI.Theme,
			"height": cfg.UI.Height,
			"prompt": cfg.UI.Prompt,
		},
		"ranker": map[string]any{
			"scorer":    cfg.Ranker.Scorer,
			"keepOrder": cfg.Ranker.KeepOrder,
		},
	}
}

func applyMap(cfg *Config, m map[string]any) {
	if v, ok := stringAt(m, "logging", "level"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := stringAt(m, "ui", "theme"); ok {
		cfg.UI.Theme = v
	}
	if v, ok := intAt(m, "ui", "height"); ok {
		cfg.UI.Height = v
	}
	if v, ok := stringAt(m, "ui", "prompt"); ok {
		cfg.UI.Prompt = v
	}
	if v, ok := stringAt(m, "ranker", "scorer"); ok {
		cfg.Ranker.Scorer = v
	}
	if v, ok := boolAt(m, "ranker", "keepOrder"); ok {
		cfg.Ranker.KeepOrder = v
	}
}

func sectionAt(m map[string]any, section string) (map[string]any, bool) {
	v, ok := m[section]
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]any)
	return sub, ok
}

func stringAt(m map[string]any, section, key string) (string, bool) {
	sub, ok := sectionAt(m, section)
	if !ok {
		return "", false
	}
	v, ok := sub[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func boolAt(m map[string]any, section, key string) (bool, bool) {
	sub, ok := sectionAt(m, section)
	if !ok {
		return false, false
	}
	v, ok := sub[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func intAt(m map[string]any, section, key string) (int, bool) {
	sub, ok := sectionAt(m, section)
	if !ok {
		return 0, false
	}
	v, ok := sub[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
