package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")

	cfg := &Config{
		Intensity:   2.5,
		Angles:      []float64{30, 60, 15},
		CurvePoints: 180,
		Label:       "custom",
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Intensity != 2.5 {
		t.Errorf("intensity = %v, want 2.5", loaded.Intensity)
	}
	if len(loaded.Angles) != 3 || loaded.Angles[1] != 60 {
		t.Errorf("angles = %v, want [30 60 15]", loaded.Angles)
	}
	if loaded.CurvePoints != 180 {
		t.Errorf("curve_points = %v, want 180", loaded.CurvePoints)
	}
	if loaded.Label != "custom" {
		t.Errorf("label = %q, want %q", loaded.Label, "custom")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Intensity != DefaultIntensity {
		t.Errorf("intensity = %v, want %v", cfg.Intensity, DefaultIntensity)
	}
	if cfg.CurvePoints != DefaultCurvePoints {
		t.Errorf("curve_points = %v, want %v", cfg.CurvePoints, DefaultCurvePoints)
	}
}

func TestPresets(t *testing.T) {
	if GetPreset("no-such") != nil {
		t.Error("expected nil for unknown preset")
	}

	crossed := GetPreset("crossed")
	if crossed == nil {
		t.Fatal("crossed preset missing")
	}
	if len(crossed.Angles) != 1 || crossed.Angles[0] != 90 {
		t.Errorf("crossed angles = %v, want [90]", crossed.Angles)
	}

	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("ListPresets returned %d names, want %d", len(names), len(Presets))
	}
}

func TestLoadReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")

	data := []byte("intensity: 1.0\nreference:\n  0: 1.0\n  45: 0.5\n  60: 0.25\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ref, err := LoadReference(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ref.Intensity != 1.0 {
		t.Errorf("intensity = %v, want 1.0", ref.Intensity)
	}
	if len(ref.Reference) != 3 {
		t.Fatalf("expected 3 reference points, got %d", len(ref.Reference))
	}
	if ref.Reference[45] != 0.5 {
		t.Errorf("reference[45] = %v, want 0.5", ref.Reference[45])
	}
}
