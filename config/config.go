package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the toolchain configuration
type Config struct {
	// Memory layout for the linker
	Layout struct {
		TextAddr int64 `toml:"text_addr"`
		DataAddr int64 `toml:"data_addr"`
		// BSSAddr below zero means "derive": data_addr + 0x10000
		BSSAddr int64 `toml:"bss_addr"`
	} `toml:"layout"`

	// Output settings
	Output struct {
		Format string `toml:"format"` // bin, hex
	} `toml:"output"`

	// Viewer settings
	Viewer struct {
		ShowSymbols bool `toml:"show_symbols"`
	} `toml:"viewer"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Layout.TextAddr = 0x00000000
	cfg.Layout.DataAddr = 0x00010000
	cfg.Layout.BSSAddr = -1

	cfg.Output.Format = "bin"

	cfg.Viewer.ShowSymbols = true

	return cfg
}

// BSS returns the effective .bss base address, deriving it from the data
// base when unset.
func (c *Config) BSS() int64 {
	if c.Layout.BSSAddr < 0 {
		return c.Layout.DataAddr + 0x10000
	}
	return c.Layout.BSSAddr
}

// Load reads a config file. A missing file yields the defaults, not an
// error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided config path
	if err != nil {
		return fmt.Errorf("saving config %s: %w", path, err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// ConfigPath returns the platform-specific config file path
func ConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "arm-toolchain")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "toolchain.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "arm-toolchain")

	default:
		return "toolchain.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "toolchain.toml"
	}

	return filepath.Join(configDir, "toolchain.toml")
}
