package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load("")

	if cfg.Backend.BaseURL == "" {
		t.Error("Expected a default backend URL")
	}
	if cfg.Search.MaxResults < 1 {
		t.Errorf("Expected positive max results, got %d", cfg.Search.MaxResults)
	}
	if cfg.Backend.SynthesisTimeout < cfg.Backend.SearchTimeout {
		t.Error("Synthesis budget should not be shorter than the search budget")
	}
	if cfg.Synthesis.Tone == "" {
		t.Error("Expected a default tone")
	}
}

func TestLoadClampsMaxResults(t *testing.T) {
	t.Setenv("CLIPSIGHT_SEARCH_MAX_RESULTS", "-3")

	cfg := Load("")
	if cfg.Search.MaxResults != 1 {
		t.Errorf("Expected max results clamped to 1, got %d", cfg.Search.MaxResults)
	}
}
