package rconfig

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadFromRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.FenwickLazyThreshold = 512
	cfg.DebugInvariants = true

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.FenwickLazyThreshold != 512 {
		t.Fatalf("FenwickLazyThreshold = %d, want 512", loaded.FenwickLazyThreshold)
	}
	if !loaded.DebugInvariants {
		t.Fatal("DebugInvariants = false, want true")
	}
	if loaded.BulkRunChildThreshold != Default().BulkRunChildThreshold {
		t.Fatalf("BulkRunChildThreshold = %d, want default %d", loaded.BulkRunChildThreshold, Default().BulkRunChildThreshold)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.BulkRunChildThreshold = 16
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.BulkRunChildThreshold != 16 {
		t.Fatalf("BulkRunChildThreshold = %d, want 16", loaded.BulkRunChildThreshold)
	}
}

func TestDefaultIsUsedWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FenwickLazyThreshold != Default().FenwickLazyThreshold {
		t.Fatalf("FenwickLazyThreshold = %d, want default", cfg.FenwickLazyThreshold)
	}
}
