package preflight

import (
	"fmt"
	"os"

	"gpu-runtime/internal/deps"
	"gpu-runtime/internal/transcribe"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Report is the check_assets response body. AssetDir is nil when no asset
// directory was discovered.
type Report struct {
	AssetDir *string  `json:"asset_dir"`
	Checks   []Result `json:"checks"`
}

// Passed reports whether every check passed.
func (r Report) Passed() bool {
	for _, check := range r.Checks {
		if !check.Passed {
			return false
		}
	}
	return true
}

// CheckAssets evaluates the tools, models and directories cfg points at.
func CheckAssets(cfg transcribe.Config) Report {
	report := Report{}
	if cfg.AssetDir != "" {
		dir := cfg.AssetDir
		report.AssetDir = &dir
		report.Checks = append(report.Checks, CheckDirectoryAccess("asset directory", dir))
	}

	statuses := deps.Check([]deps.Requirement{
		{Name: "whisper-cli", Path: cfg.WhisperPath, Kind: deps.KindExecutable, Description: "speech recognition"},
		{Name: "whisper model", Path: cfg.ModelPath, Kind: deps.KindFile, Description: "recognition model"},
		{Name: "VAD model", Path: cfg.VADModelPath, Kind: deps.KindFile, Description: "voice activity model"},
		{Name: "ffmpeg", Path: cfg.FFmpegPath, Kind: deps.KindExecutable, Description: "audio extraction"},
	})
	for _, status := range statuses {
		report.Checks = append(report.Checks, Result{
			Name:   status.Name,
			Path:   status.Path,
			Passed: status.Available,
			Detail: status.Detail,
		})
	}

	if cfg.OutputDir != "" {
		report.Checks = append(report.Checks, checkOutputDir(cfg.OutputDir))
	}
	return report
}

// CheckDirectoryAccess verifies that the directory exists and can be listed.
func CheckDirectoryAccess(name, path string) Result {
	result := Result{Name: name, Path: path}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.Detail = "error: does not exist"
		} else {
			result.Detail = fmt.Sprintf("error: stat: %v", err)
		}
		return result
	}
	if !info.IsDir() {
		result.Detail = "error: is not a directory"
		return result
	}
	if err := deps.CanAccessDir(path); err != nil {
		result.Detail = fmt.Sprintf("error: insufficient permissions: %v", err)
		return result
	}
	result.Passed = true
	result.Detail = "read ok"
	return result
}

// checkOutputDir passes for a missing directory, since jobs create it.
func checkOutputDir(path string) Result {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Result{Name: "output directory", Path: path, Passed: true, Detail: "will be created"}
	}
	return CheckDirectoryAccess("output directory", path)
}
