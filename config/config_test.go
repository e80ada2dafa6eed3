package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/arm-toolchain/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.Layout.TextAddr != 0 {
		t.Errorf("text base = 0x%X, want 0", cfg.Layout.TextAddr)
	}
	if cfg.Layout.DataAddr != 0x10000 {
		t.Errorf("data base = 0x%X, want 0x10000", cfg.Layout.DataAddr)
	}
	if cfg.Output.Format != "bin" {
		t.Errorf("format = %q, want bin", cfg.Output.Format)
	}
}

func TestBSSDerivation(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := cfg.BSS(); got != 0x20000 {
		t.Errorf("derived bss = 0x%X, want data + 0x10000", got)
	}

	cfg.Layout.DataAddr = 0x40000
	if got := cfg.BSS(); got != 0x50000 {
		t.Errorf("derived bss = 0x%X, want 0x50000", got)
	}

	cfg.Layout.BSSAddr = 0x123
	if got := cfg.BSS(); got != 0x123 {
		t.Errorf("explicit bss = 0x%X, want 0x123", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Layout.DataAddr != 0x10000 {
		t.Errorf("defaults not applied: 0x%X", cfg.Layout.DataAddr)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolchain.toml")

	cfg := config.DefaultConfig()
	cfg.Layout.TextAddr = 0x8000
	cfg.Output.Format = "hex"
	cfg.Viewer.ShowSymbols = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Layout.TextAddr != 0x8000 || loaded.Output.Format != "hex" || loaded.Viewer.ShowSymbols {
		t.Errorf("round trip changed values: %+v", loaded)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[layout\ntext_addr = "), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("malformed file must error")
	}
}
