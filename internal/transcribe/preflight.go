package transcribe

import (
	"fmt"
	"os"

	"gpu-runtime/internal/deps"
	"gpu-runtime/internal/services"
)

// CheckResources verifies that the models and tool binaries exist before any
// file is processed. A tool given as a bare command name is left to PATH
// lookup at launch time.
func CheckResources(cfg Config) error {
	if deps.IsExplicitPath(cfg.WhisperPath) {
		if err := requirePath("whisper-cli", cfg.WhisperPath); err != nil {
			return err
		}
	}
	if err := requirePath("whisper model", cfg.ModelPath); err != nil {
		return err
	}
	if err := requirePath("VAD model", cfg.VADModelPath); err != nil {
		return err
	}
	if deps.IsExplicitPath(cfg.FFmpegPath) {
		if err := requirePath("ffmpeg", cfg.FFmpegPath); err != nil {
			return err
		}
	}
	return nil
}

func requirePath(label, path string) error {
	if _, err := os.Stat(path); err != nil {
		return services.Mark(services.ErrNotFound, fmt.Errorf("%s not found at %s", label, path))
	}
	return nil
}
