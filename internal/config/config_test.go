package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Simulation.Mode != "normal" {
		t.Errorf("expected mode 'normal', got %s", cfg.Simulation.Mode)
	}
	if !cfg.Simulation.Enabled {
		t.Error("expected simulation to be enabled by default")
	}
	if cfg.Simulation.RelayPriorityOffset != 0 {
		t.Errorf("expected zero offset (use built-in default), got %d", cfg.Simulation.RelayPriorityOffset)
	}
	if cfg.Simulation.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %s", cfg.Simulation.ScreenshotDir)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

simulation:
  mode: "deuteranopia"
  enabled: true
  relay_priority_offset: 20
  screenshot_dir: "/tmp/shots"

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Simulation.Mode != "deuteranopia" {
		t.Errorf("expected mode 'deuteranopia', got %s", cfg.Simulation.Mode)
	}
	if cfg.Simulation.RelayPriorityOffset != 20 {
		t.Errorf("expected offset 20, got %d", cfg.Simulation.RelayPriorityOffset)
	}
	if cfg.Simulation.ScreenshotDir != "/tmp/shots" {
		t.Errorf("expected screenshot dir '/tmp/shots', got %s", cfg.Simulation.ScreenshotDir)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only the simulation section; everything else keeps defaults.
	yamlContent := `
simulation:
  mode: "tritanopia"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Simulation.Mode != "tritanopia" {
		t.Errorf("expected mode 'tritanopia', got %s", cfg.Simulation.Mode)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Simulation.Mode = "achromatopsia"
	cfg.Graphics.Width = 640

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Simulation.Mode != "achromatopsia" {
		t.Errorf("expected mode 'achromatopsia', got %s", loaded.Simulation.Mode)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640, got %d", loaded.Graphics.Width)
	}
}
