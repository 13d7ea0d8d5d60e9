package transcribe

import (
	"strconv"
)

// audioFilter downmixes to mono, favouring the centre channel, then
// normalizes loudness to -16 LUFS.
const audioFilter = "pan=mono|c0=0.35*FL+0.35*FR+0.80*FC+0.15*SL+0.15*SR,loudnorm=I=-16:LRA=11:TP=-1.5"

// ffmpegArgs extracts a 16 kHz mono PCM track from input into wav.
func ffmpegArgs(input, wav string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-vn",
		"-af", audioFilter,
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		wav,
	}
}

// whisperArgs asks whisper-cli to write <base>.srt from wav.
func whisperArgs(cfg Config, wav, base string) []string {
	args := []string{
		"-m", cfg.ModelPath,
		"-f", wav,
		"-l", cfg.Language,
	}
	if cfg.Translate {
		args = append(args, "-tr")
	}
	args = append(args,
		"-t", strconv.FormatUint(uint64(cfg.Threads), 10),
		"-bs", formatUint(cfg.BeamSize),
		"-bo", formatUint(cfg.BestOf),
		"-nth", formatFloat(cfg.NoSpeechThold),
		"-mc", formatUint(cfg.MaxContext),
		"--suppress-nst",
		"--vad",
		"-vm", cfg.VADModelPath,
		"-vt", formatFloat(cfg.VADThreshold),
		"-vspd", formatUint(cfg.VADMinSpeechMS),
		"-vsd", formatUint(cfg.VADMinSilenceMS),
		"-vp", formatUint(cfg.VADPadMS),
		"-ml", formatUint(cfg.MaxLenChars),
		"-osrt",
		"-of", base,
		"-pp",
	)
	if cfg.SplitOnWord {
		args = append(args, "-sow")
	}
	return args
}

func formatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}

// formatFloat uses the shortest representation, so 0.35 renders as "0.35".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
