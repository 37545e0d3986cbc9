package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/vertex-scatter/internal/scatter"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Field defaults
	if cfg.Defaults.MinScale != 1.0 || cfg.Defaults.MaxScale != 1.0 {
		t.Errorf("expected scale range [1, 1], got [%v, %v]", cfg.Defaults.MinScale, cfg.Defaults.MaxScale)
	}
	if cfg.Defaults.MinRotateX != 0 || cfg.Defaults.MaxRotateZ != 0 {
		t.Error("expected zero rotation ranges by default")
	}
	if cfg.Defaults.Align {
		t.Error("expected align to be false by default")
	}
	if cfg.Defaults.Preview {
		t.Error("expected preview to be false by default")
	}

	// Spin-box limits
	if cfg.Limits.RotateMin != -360 || cfg.Limits.RotateMax != 360 {
		t.Errorf("expected rotate limits [-360, 360], got [%v, %v]", cfg.Limits.RotateMin, cfg.Limits.RotateMax)
	}
	if cfg.Limits.ScaleStep != 0.1 {
		t.Errorf("expected scale step 0.1, got %v", cfg.Limits.ScaleStep)
	}

	if cfg.Alignment.Degenerate != "identity" {
		t.Errorf("expected degenerate policy 'identity', got %s", cfg.Alignment.Degenerate)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
defaults:
  min_scale: 0.5
  max_scale: 2.0
  min_rotate_y: -180
  max_rotate_y: 180
  align: true
  seed: 42

limits:
  rotate_min: -720
  rotate_max: 720

alignment:
  degenerate: skip

logging:
  level: "debug"
  log_file: "scatter.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Defaults.MinScale != 0.5 || cfg.Defaults.MaxScale != 2.0 {
		t.Errorf("expected scale range [0.5, 2], got [%v, %v]", cfg.Defaults.MinScale, cfg.Defaults.MaxScale)
	}
	if cfg.Defaults.MinRotateY != -180 || cfg.Defaults.MaxRotateY != 180 {
		t.Errorf("expected rotate y [-180, 180], got [%v, %v]", cfg.Defaults.MinRotateY, cfg.Defaults.MaxRotateY)
	}
	if !cfg.Defaults.Align {
		t.Error("expected align to be true")
	}
	if cfg.Defaults.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Defaults.Seed)
	}
	if cfg.Limits.RotateMax != 720 {
		t.Errorf("expected rotate max 720, got %v", cfg.Limits.RotateMax)
	}
	// Untouched keys keep their defaults
	if cfg.Limits.ScaleMax != 99.99 {
		t.Errorf("expected scale max to stay 99.99, got %v", cfg.Limits.ScaleMax)
	}
	if cfg.Alignment.Degenerate != "skip" {
		t.Errorf("expected degenerate 'skip', got %s", cfg.Alignment.Degenerate)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scatter.log" {
		t.Errorf("expected log file 'scatter.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
defaults:
  min_scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("alignment:\n  degenerate: flip\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for unknown degenerate policy")
	}
}

func TestLoadRejectsInvertedLimits(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("limits:\n  rotate_min: 10\n  rotate_max: -10\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for inverted rotate limits")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "scatter.yaml")
	if err := os.WriteFile(configPath, []byte("defaults:\n  max_scale: 3\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find scatter.yaml in current directory")
	}
}

func TestScatterConfig(t *testing.T) {
	cfg := Default()
	cfg.Defaults.MinRotateX = -10
	cfg.Defaults.MaxRotateX = 10
	cfg.Defaults.Preview = true
	cfg.Alignment.Degenerate = "skip"

	sc, err := cfg.ScatterConfig()
	if err != nil {
		t.Fatalf("ScatterConfig: %v", err)
	}
	if sc.MinRotate != (math.Vec3{X: -10}) || sc.MaxRotate != (math.Vec3{X: 10}) {
		t.Errorf("unexpected rotate ranges %v %v", sc.MinRotate, sc.MaxRotate)
	}
	if !sc.PreviewOnly {
		t.Error("expected preview to carry over")
	}
	if sc.Degenerate != scatter.DegenerateSkip {
		t.Errorf("expected skip policy, got %s", sc.Degenerate)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Remember(scatter.Config{
		MinScale:       0.8,
		MaxScale:       1.2,
		MinRotate:      math.Vec3{Y: -45},
		MaxRotate:      math.Vec3{Y: 45},
		AlignToSurface: true,
		Degenerate:     scatter.DegenerateSkip,
	})

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Defaults != cfg.Defaults {
		t.Errorf("defaults not preserved: got %+v, want %+v", loaded.Defaults, cfg.Defaults)
	}
	if loaded.Alignment.Degenerate != "skip" {
		t.Errorf("expected skip policy, got %s", loaded.Alignment.Degenerate)
	}
}
