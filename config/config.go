// Package config loads and saves gekkoasm's TOML configuration file, using
// the same platform-specific path conventions as the teacher project.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds gekkoasm's CLI and assembly defaults.
type Config struct {
	// Assembly settings
	Assembly struct {
		DefaultBaseAddress string `toml:"default_base_address"`
		WarnUnusedLabels   bool   `toml:"warn_unused_labels"`
		WarnUnusedVars     bool   `toml:"warn_unused_vars"`
	} `toml:"assembly"`

	// Output settings
	Output struct {
		Format       string `toml:"format"` // bin, hex, both
		BytesPerLine int    `toml:"bytes_per_line"`
		ColorOutput  bool   `toml:"color_output"`
	} `toml:"output"`

	// Editor settings (consumed by editorhook.Highlighter-based tooling)
	Editor struct {
		SyntaxHighlight bool `toml:"syntax_highlight"`
		ShowCrossRefs   bool `toml:"show_cross_refs"`
		TabWidth        int  `toml:"tab_width"`
	} `toml:"editor"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembly.DefaultBaseAddress = "0x80000000"
	cfg.Assembly.WarnUnusedLabels = true
	cfg.Assembly.WarnUnusedVars = true

	cfg.Output.Format = "bin"
	cfg.Output.BytesPerLine = 16
	cfg.Output.ColorOutput = true

	cfg.Editor.SyntaxHighlight = true
	cfg.Editor.ShowCrossRefs = true
	cfg.Editor.TabWidth = 4

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "gekkoasm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "gekkoasm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// defaults if it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
