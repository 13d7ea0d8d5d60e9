package preflight

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gpu-runtime/internal/transcribe"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail != "error: does not exist" {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]os.FileMode{
		filepath.Join("models", "ggml-large-v3.bin"):      0o644,
		filepath.Join("models", "ggml-silero-v6.2.0.bin"): 0o644,
		filepath.Join("bin", "whisper-cli"):               0o755,
		filepath.Join("bin", "ffmpeg"):                    0o755,
	}
	for rel, mode := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"), mode); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckAssetsFromAssetDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("asset layout uses .exe names on windows")
	}
	assets := writeAssets(t)
	cfg := transcribe.ResolveTools(transcribe.Params{}, transcribe.Environment{AssetDirVar: assets, NumCPU: 1})

	report := CheckAssets(cfg)
	if report.AssetDir == nil || *report.AssetDir != assets {
		t.Fatalf("unexpected asset dir %v", report.AssetDir)
	}
	if !report.Passed() {
		t.Fatalf("expected all checks to pass: %+v", report.Checks)
	}
	names := make([]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		names = append(names, c.Name)
	}
	if got := strings.Join(names, ","); got != "asset directory,whisper-cli,whisper model,VAD model,ffmpeg" {
		t.Fatalf("unexpected check order %q", got)
	}
}

func TestCheckAssetsReportsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.bin")
	out := filepath.Join(t.TempDir(), "new-output")
	params := transcribe.Params{ModelPath: &missing, OutputDir: &out}
	cfg := transcribe.ResolveTools(params, transcribe.Environment{NumCPU: 1})

	report := CheckAssets(cfg)
	if report.Passed() {
		t.Fatal("expected failures")
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"asset_dir":null,"checks":[`) {
		t.Fatalf("unexpected json %s", data)
	}

	byName := map[string]Result{}
	for _, c := range report.Checks {
		byName[c.Name] = c
	}
	if model := byName["whisper model"]; model.Passed || model.Path != missing || model.Detail != "does not exist" {
		t.Fatalf("unexpected model check %+v", model)
	}
	if outDir := byName["output directory"]; !outDir.Passed || outDir.Detail != "will be created" {
		t.Fatalf("unexpected output dir check %+v", outDir)
	}
}
