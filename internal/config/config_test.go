package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Data != "Sim_Results.csv" {
		t.Errorf("expected data Sim_Results.csv, got %s", cfg.Data)
	}
	if cfg.BlocksPerDay != 14400 {
		t.Errorf("expected 14400 blocks per day, got %v", cfg.BlocksPerDay)
	}
	if cfg.Animation.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Animation.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Chart.WindowSize <= 0 || cfg.Chart.MaxPoints <= 0 {
		t.Error("chart window and point cap should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alphaviz.yaml")

	cfg := DefaultConfig()
	cfg.Data = "runs/other.csv"
	cfg.Animation.Speed = 2.5
	cfg.Chart.MaxPoints = 25

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Data != "runs/other.csv" {
		t.Errorf("expected data runs/other.csv, got %s", loaded.Data)
	}
	if loaded.Animation.Speed != 2.5 {
		t.Errorf("expected speed 2.5, got %v", loaded.Animation.Speed)
	}
	if loaded.Chart.MaxPoints != 25 {
		t.Errorf("expected 25 max points, got %d", loaded.Chart.MaxPoints)
	}
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")

	// A file that only sets one key still gets defaults for the rest.
	if err := os.WriteFile(path, []byte("animation:\n  fps: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Animation.FPS != 12 {
		t.Errorf("expected fps 12, got %d", loaded.Animation.FPS)
	}
	if loaded.BlocksPerDay != DefaultBlocksPerDay {
		t.Errorf("expected default blocks per day, got %v", loaded.BlocksPerDay)
	}
	if loaded.Chart.WindowSize != DefaultWindowSize {
		t.Errorf("expected default window size, got %v", loaded.Chart.WindowSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("smooth")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Animation.FPS != 15 {
		t.Errorf("expected fps 15, got %d", cfg.Animation.FPS)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Error("presets should be sorted")
		}
	}

	found := false
	for _, name := range names {
		if name == "default" {
			found = true
		}
	}
	if !found {
		t.Error("expected a default preset")
	}
}
