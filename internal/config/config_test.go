package config

import (
	"os"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.Ranker.Scorer != "fuzzy" {
		t.Fatalf("default scorer = %q, want 'fuzzy'", cfg.Ranker.Scorer)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("default log level = %q, want 'info'", cfg.Logging.Level)
	}
}

func TestLoadWithNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ranker.Scorer != "fuzzy" {
		t.Fatalf("scorer = %q, want 'fuzzy'", cfg.Ranker.Scorer)
	}
}

func TestLoadAppliesEnvOverride(t *testing.T) {
	t.Setenv("SWEEP_SCORER", "substr")
	t.Setenv("SWEEP_PROMPT", "?> ")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ranker.Scorer != "substr" {
		t.Fatalf("scorer = %q, want 'substr'", cfg.Ranker.Scorer)
	}
	if cfg.UI.Prompt != "?> " {
		t.Fatalf("prompt = %q, want '?> '", cfg.UI.Prompt)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	path := os.TempDir() + "/sweep-config-does-not-exist.toml"
	if _, err := Load(path); err != nil {
		t.Fatalf("missing config file should not error, got %v", err)
	}
}
