package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Assembly.DefaultBaseAddress != "0x80000000" {
		t.Errorf("Expected DefaultBaseAddress=0x80000000, got %s", cfg.Assembly.DefaultBaseAddress)
	}
	if !cfg.Assembly.WarnUnusedLabels {
		t.Error("Expected WarnUnusedLabels=true")
	}

	if cfg.Output.BytesPerLine != 16 {
		t.Errorf("Expected BytesPerLine=16, got %d", cfg.Output.BytesPerLine)
	}
	if cfg.Output.Format != "bin" {
		t.Errorf("Expected Format=bin, got %s", cfg.Output.Format)
	}

	if cfg.Editor.TabWidth != 4 {
		t.Errorf("Expected TabWidth=4, got %d", cfg.Editor.TabWidth)
	}
	if !cfg.Editor.SyntaxHighlight {
		t.Error("Expected SyntaxHighlight=true")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "gekkoasm" && path != "config.toml" {
			t.Errorf("Expected path in gekkoasm directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Assembly.DefaultBaseAddress = "0x80003100"
	cfg.Assembly.WarnUnusedVars = false
	cfg.Output.ColorOutput = false
	cfg.Editor.TabWidth = 2

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Assembly.DefaultBaseAddress != "0x80003100" {
		t.Errorf("Expected DefaultBaseAddress=0x80003100, got %s", loaded.Assembly.DefaultBaseAddress)
	}
	if loaded.Assembly.WarnUnusedVars {
		t.Error("Expected WarnUnusedVars=false")
	}
	if loaded.Output.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
	if loaded.Editor.TabWidth != 2 {
		t.Errorf("Expected TabWidth=2, got %d", loaded.Editor.TabWidth)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Assembly.DefaultBaseAddress != "0x80000000" {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[output]
bytes_per_line = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
