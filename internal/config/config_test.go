package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gpu-runtime/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.LogLevelEnv, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if !strings.HasSuffix(resolved, filepath.Join(".config", "gpu-runtime", "config.toml")) {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	want := config.Default()
	if cfg.Logging != want.Logging {
		t.Fatalf("logging = %+v, want %+v", cfg.Logging, want.Logging)
	}
	if cfg.Runtime.AssetDir != "" {
		t.Fatalf("expected empty asset dir, got %q", cfg.Runtime.AssetDir)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
level = " DEBUG "
format = "JSON"
file = "~/logs/runtime.log"

[runtime]
asset_dir = "~/assets"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to exist, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(home, "logs", "runtime.log") {
		t.Fatalf("unexpected log file %q", cfg.Logging.File)
	}
	if cfg.Runtime.AssetDir != filepath.Join(home, "assets") {
		t.Fatalf("unexpected asset dir %q", cfg.Runtime.AssetDir)
	}
}

func TestLoadUsesEnvLevelWhenUnset(t *testing.T) {
	t.Setenv(config.LogLevelEnv, "warning")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[runtime]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env level warn, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"level":   "[logging]\nlevel = \"loud\"\n",
		"format":  "[logging]\nformat = \"xml\"\n",
		"unknown": "[logging]\ncolour = true\n",
		"syntax":  "[logging\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name+".toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path, ""); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid toml: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "auto" {
		t.Fatalf("unexpected sample logging %+v", cfg.Logging)
	}
}

func TestCreateSampleWithAssetDir(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, `gpu "runtime" assets`)
	path := filepath.Join(dir, "config.toml")
	if err := config.CreateSample(path, assets); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if cfg.Runtime.AssetDir != assets {
		t.Fatalf("asset_dir = %q, want %q", cfg.Runtime.AssetDir, assets)
	}
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/models")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("ExpandPath = %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}
