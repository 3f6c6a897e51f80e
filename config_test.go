package midistage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigCarriesPolicyConstants(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UpcomingWindow != 1 || cfg.GapWindow != 7 || cfg.LingerWindow != 2 {
		t.Fatalf("unexpected visibility windows: %+v", cfg)
	}
	if cfg.TransitionSpeed != 2500 {
		t.Fatalf("transition speed %v, want 2500", cfg.TransitionSpeed)
	}
	if cfg.RecoilDistance >= 0 {
		t.Fatalf("recoil distance must be negative, got %v", cfg.RecoilDistance)
	}
	if _, ok := cfg.Cymbals["crash"]; !ok {
		t.Fatalf("default config must carry a crash cymbal entry")
	}
}

func TestLoadConfigOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("gap_window: 3\nnever_hidden: true\ncymbals:\n  ride:\n    amplitude: 1.5\n    half_life: 2\n    wobble_hz: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GapWindow != 3 || !cfg.NeverHidden {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.UpcomingWindow != 1 || cfg.TransitionSpeed != 2500 {
		t.Fatalf("untouched fields should keep defaults: %+v", cfg)
	}
	if got := cfg.cymbal("ride"); got.Amplitude != 1.5 || got.WobbleHz != 6 {
		t.Fatalf("ride override not applied: %+v", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestCymbalFallsBackToCrash(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.cymbal("gong"), cfg.Cymbals["crash"]; got != want {
		t.Fatalf("unknown type %+v, want crash fallback %+v", got, want)
	}
}
