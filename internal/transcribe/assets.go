package transcribe

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AssetDirEnv names the environment variable that points at the asset root.
const AssetDirEnv = "AER_ASSET_DIR"

// Paths used when no asset directory supplies a default.
const (
	FallbackModelPath    = "models/ggml-large-v3.bin"
	FallbackVADModelPath = "models/ggml-silero-v6.2.0.bin"
	FallbackWhisperPath  = "./build/bin/whisper-cli"
	FallbackFFmpegPath   = "ffmpeg"
)

const (
	modelFile    = "ggml-large-v3.bin"
	vadModelFile = "ggml-silero-v6.2.0.bin"
)

// Environment captures the process facts that path resolution depends on.
// Tests build one directly; servers use CurrentEnvironment.
type Environment struct {
	// AssetDirVar is the value of AER_ASSET_DIR, empty when unset.
	AssetDirVar string
	// ConfiguredAssetDir comes from the runtime.asset_dir config key.
	ConfiguredAssetDir string
	ExecutableDir      string
	WorkingDir         string
	NumCPU             int
}

// CurrentEnvironment reads the running process's environment.
func CurrentEnvironment(configuredAssetDir string) Environment {
	env := Environment{
		AssetDirVar:        os.Getenv(AssetDirEnv),
		ConfiguredAssetDir: configuredAssetDir,
		NumCPU:             runtime.NumCPU(),
	}
	if exe, err := os.Executable(); err == nil {
		env.ExecutableDir = filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		env.WorkingDir = wd
	}
	return env
}

// AssetDir returns the first existing candidate of: AER_ASSET_DIR, the
// configured asset dir, <executable dir>/assets, <cwd>/runtime/assets and
// <cwd>/assets.
func (e Environment) AssetDir() (string, bool) {
	for _, candidate := range e.assetDirCandidates() {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func (e Environment) assetDirCandidates() []string {
	candidates := []string{e.AssetDirVar, strings.TrimSpace(e.ConfiguredAssetDir)}
	if e.ExecutableDir != "" {
		candidates = append(candidates, filepath.Join(e.ExecutableDir, "assets"))
	}
	if e.WorkingDir != "" {
		candidates = append(candidates,
			filepath.Join(e.WorkingDir, "runtime", "assets"),
			filepath.Join(e.WorkingDir, "assets"),
		)
	}
	return candidates
}

// Layout lists the default resource locations inside an asset directory.
type Layout struct {
	ModelPath    string
	VADModelPath string
	WhisperPath  string
	FFmpegPath   string
}

// DefaultLayout returns the asset-relative defaults, or an empty Layout when
// assetDir is empty.
func DefaultLayout(assetDir string) Layout {
	if assetDir == "" {
		return Layout{}
	}
	return Layout{
		ModelPath:    filepath.Join(assetDir, "models", modelFile),
		VADModelPath: filepath.Join(assetDir, "models", vadModelFile),
		WhisperPath:  filepath.Join(assetDir, "bin", BinaryName("whisper-cli")),
		FFmpegPath:   filepath.Join(assetDir, "bin", BinaryName("ffmpeg")),
	}
}

// BinaryName appends the platform executable suffix to base.
func BinaryName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
