package transcribe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"gpu-runtime/internal/services"
)

// Defaults applied when a request leaves a tuning field out.
const (
	DefaultBeamSize         = 8
	DefaultBestOf           = 8
	DefaultMaxLenChars      = 60
	DefaultSplitOnWord      = true
	DefaultVADThreshold     = 0.35
	DefaultVADMinSpeechMS   = 200
	DefaultVADMinSilenceMS  = 250
	DefaultVADPadMS         = 80
	DefaultNoSpeechThold    = 0.75
	DefaultMaxContext       = 0
	DefaultDedupMergeGapSec = 0.6
	DefaultTranslate        = true
	DefaultLanguage         = "auto"
)

// Params mirrors the transcribe request. Nil fields take their default.
type Params struct {
	InputPath        *string  `json:"input_path"`
	OutputDir        *string  `json:"output_dir"`
	ModelPath        *string  `json:"model_path"`
	VADModelPath     *string  `json:"vad_model_path"`
	WhisperPath      *string  `json:"whisper_path"`
	FFmpegPath       *string  `json:"ffmpeg_path"`
	VKICDFilenames   *string  `json:"vk_icd_filenames"`
	Threads          *uint    `json:"threads"`
	BeamSize         *uint32  `json:"beam_size"`
	BestOf           *uint32  `json:"best_of"`
	MaxLenChars      *uint32  `json:"max_len_chars"`
	SplitOnWord      *bool    `json:"split_on_word"`
	VADThreshold     *float64 `json:"vad_threshold"`
	VADMinSpeechMS   *uint32  `json:"vad_min_speech_ms"`
	VADMinSilenceMS  *uint32  `json:"vad_min_sil_ms"`
	VADPadMS         *uint32  `json:"vad_pad_ms"`
	NoSpeechThold    *float64 `json:"no_speech_thold"`
	MaxContext       *uint32  `json:"max_context"`
	DedupMergeGapSec *float64 `json:"dedup_merge_gap_sec"`
	Translate        *bool    `json:"translate"`
	Language         *string  `json:"language"`
	DryRun           *bool    `json:"dry_run"`
}

// Config is a fully resolved job. Empty OutputDir and VKICDFilenames mean
// "not set"; every other field holds its effective value.
type Config struct {
	InputPath        string
	OutputDir        string
	ModelPath        string
	VADModelPath     string
	WhisperPath      string
	FFmpegPath       string
	VKICDFilenames   string
	Threads          uint
	BeamSize         uint32
	BestOf           uint32
	MaxLenChars      uint32
	SplitOnWord      bool
	VADThreshold     float64
	VADMinSpeechMS   uint32
	VADMinSilenceMS  uint32
	VADPadMS         uint32
	NoSpeechThold    float64
	MaxContext       uint32
	DedupMergeGapSec float64
	Translate        bool
	Language         string
	DryRun           bool

	// AssetDir is the directory the default paths were derived from, empty
	// when none was found.
	AssetDir string
}

// ErrInputRequired is returned when input_path is missing or blank.
var ErrInputRequired = errors.New("input_path is required")

// DecodeParams decodes raw request params. Absent or null params decode to
// the zero Params; a field of the wrong JSON type is an error.
func DecodeParams(raw json.RawMessage) (Params, error) {
	var params Params
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return params, nil
	}
	exact, err := exactFields(trimmed)
	if err != nil {
		return Params{}, services.Mark(services.ErrValidation, fmt.Errorf("invalid transcribe params: %w", err))
	}
	if err := json.Unmarshal(exact, &params); err != nil {
		return Params{}, services.Mark(services.ErrValidation, fmt.Errorf("invalid transcribe params: %w", err))
	}
	return params, nil
}

// paramNames holds the json tag of every Params field.
var paramNames = func() map[string]struct{} {
	names := make(map[string]struct{})
	typ := reflect.TypeFor[Params]()
	for i := range typ.NumField() {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		names[name] = struct{}{}
	}
	return names
}()

// exactFields drops keys that are not spelled exactly like a Params tag, so
// encoding/json's case-insensitive matching never binds "Input_Path" to
// input_path.
func exactFields(raw []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for key := range fields {
		if _, ok := paramNames[key]; !ok {
			delete(fields, key)
		}
	}
	return json.Marshal(fields)
}

// Resolve applies defaults and path discovery to params.
func Resolve(params Params, env Environment) (Config, error) {
	if strings.TrimSpace(deref(params.InputPath, "")) == "" {
		return Config{}, services.Mark(services.ErrValidation, ErrInputRequired)
	}
	return ResolveTools(params, env), nil
}

// ResolveTools resolves every field except validating the input path. It
// serves callers that only need the tool and model locations.
func ResolveTools(params Params, env Environment) Config {
	assetDir, _ := env.AssetDir()
	layout := DefaultLayout(assetDir)

	threads := uint(env.NumCPU)
	if threads == 0 {
		threads = uint(runtime.NumCPU())
	}

	cfg := Config{
		InputPath:        deref(params.InputPath, ""),
		OutputDir:        strings.TrimSpace(deref(params.OutputDir, "")),
		ModelPath:        firstPath(params.ModelPath, layout.ModelPath, FallbackModelPath),
		VADModelPath:     firstPath(params.VADModelPath, layout.VADModelPath, FallbackVADModelPath),
		WhisperPath:      firstPath(params.WhisperPath, layout.WhisperPath, FallbackWhisperPath),
		FFmpegPath:       firstPath(params.FFmpegPath, layout.FFmpegPath, FallbackFFmpegPath),
		Threads:          deref(params.Threads, threads),
		BeamSize:         deref(params.BeamSize, DefaultBeamSize),
		BestOf:           deref(params.BestOf, DefaultBestOf),
		MaxLenChars:      deref(params.MaxLenChars, DefaultMaxLenChars),
		SplitOnWord:      deref(params.SplitOnWord, DefaultSplitOnWord),
		VADThreshold:     deref(params.VADThreshold, DefaultVADThreshold),
		VADMinSpeechMS:   deref(params.VADMinSpeechMS, DefaultVADMinSpeechMS),
		VADMinSilenceMS:  deref(params.VADMinSilenceMS, DefaultVADMinSilenceMS),
		VADPadMS:         deref(params.VADPadMS, DefaultVADPadMS),
		NoSpeechThold:    deref(params.NoSpeechThold, DefaultNoSpeechThold),
		MaxContext:       deref(params.MaxContext, DefaultMaxContext),
		DedupMergeGapSec: deref(params.DedupMergeGapSec, DefaultDedupMergeGapSec),
		Translate:        deref(params.Translate, DefaultTranslate),
		Language:         deref(params.Language, DefaultLanguage),
		DryRun:           deref(params.DryRun, false),
		AssetDir:         assetDir,
	}
	if params.VKICDFilenames != nil && strings.TrimSpace(*params.VKICDFilenames) != "" {
		cfg.VKICDFilenames = *params.VKICDFilenames
	}
	return cfg
}

// firstPath picks the trimmed explicit value when it is not blank, else the
// asset-derived default when one exists, else the fallback.
func firstPath(explicit *string, assetDefault, fallback string) string {
	if explicit != nil {
		if trimmed := strings.TrimSpace(*explicit); trimmed != "" {
			return trimmed
		}
	}
	if assetDefault != "" {
		return assetDefault
	}
	return fallback
}

func deref[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}
