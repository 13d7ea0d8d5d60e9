package transcribe

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/runner"
	"gpu-runtime/internal/services"
	"gpu-runtime/internal/subtitles"
)

// LogEvent is the event name for progress lines.
const LogEvent = runner.LogEvent

// EventSink receives progress events ahead of the final response.
type EventSink interface {
	Emit(event string, payload any) error
}

// Result is the transcribe response body.
type Result struct {
	Jobs    int      `json:"jobs"`
	Outputs []string `json:"outputs"`
}

// Service runs transcription batches one file at a time.
type Service struct {
	runner *runner.Runner
	logger *slog.Logger
}

// NewService builds a Service that executes tools through r.
func NewService(r *runner.Runner, logger *slog.Logger) *Service {
	if r == nil {
		r = runner.New(logger)
	}
	return &Service{
		runner: r,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

// Run processes every input named by cfg and returns the SRT paths in
// enumeration order. The first failure aborts the batch.
func (s *Service) Run(ctx context.Context, sink EventSink, cfg Config) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)
	started := time.Now()

	inputs, err := CollectInputs(cfg.InputPath)
	if err != nil {
		return Result{}, err
	}
	if !cfg.DryRun {
		if err := CheckResources(cfg); err != nil {
			return Result{}, err
		}
	}

	logger.Info("transcription batch started",
		logging.String(logging.FieldEventType, "batch_started"),
		logging.String("input", cfg.InputPath),
		logging.Int("count", len(inputs)),
		logging.Bool("dry_run", cfg.DryRun),
		logging.String("asset_dir", cfg.AssetDir),
	)

	outputs := make([]string, 0, len(inputs))
	skipped := 0
	for idx, input := range inputs {
		srt, skip, err := s.processFile(ctx, sink, cfg, input)
		if err != nil {
			logging.ErrorWithContext(logger, "transcription failed", services.Category(err),
				logging.String("input", input),
				logging.Int("index", idx+1),
				logging.Int("count", len(inputs)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the tool paths and the input media"),
			)
			return Result{}, err
		}
		if skip {
			skipped++
			logger.Info("transcription decision",
				logging.String(logging.FieldDecisionType, "transcription_skip"),
				logging.String("decision_result", "skipped"),
				logging.String("decision_reason", "up_to_date"),
				logging.String("input", input),
				logging.String("output", srt),
			)
		} else {
			logger.Info("transcription complete",
				logging.String(logging.FieldEventType, "file_complete"),
				logging.String("input", input),
				logging.String("output", srt),
				logging.Int("index", idx+1),
				logging.Int("count", len(inputs)),
			)
		}
		outputs = append(outputs, srt)
	}

	logger.Info("transcription batch summary",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Duration("batch_duration", time.Since(started)),
		logging.Int("processed_files", len(outputs)-skipped),
		logging.Int("skipped_files", skipped),
	)
	return Result{Jobs: len(outputs), Outputs: outputs}, nil
}

// processFile handles one input. It reports the SRT path and whether the
// file was skipped as up to date.
func (s *Service) processFile(ctx context.Context, sink EventSink, cfg Config, input string) (string, bool, error) {
	base, err := outputBase(cfg, input)
	if err != nil {
		return "", false, err
	}
	srt := base + ".srt"

	if isUpToDate(input, srt) {
		if err := emit(sink, "SKIP (up-to-date): "+input); err != nil {
			return "", false, err
		}
		return srt, true, nil
	}
	if err := emit(sink, "Processing "+input); err != nil {
		return "", false, err
	}

	wav, release, err := workingAudioPath(cfg, base)
	if err != nil {
		return "", false, err
	}
	defer release()

	if err := s.run(ctx, sink, cfg, cfg.FFmpegPath, ffmpegArgs(input, wav)); err != nil {
		return "", false, err
	}
	if err := s.run(ctx, sink, cfg, cfg.WhisperPath, whisperArgs(cfg, wav, base)); err != nil {
		return "", false, err
	}

	if cfg.DryRun {
		if err := emit(sink, "DRY-RUN post-process SRT: "+srt); err != nil {
			return "", false, err
		}
	} else {
		stats, err := subtitles.Dedup(srt, cfg.DedupMergeGapSec)
		if err != nil {
			return "", false, err
		}
		logging.WithContext(ctx, s.logger).Debug("subtitles deduplicated",
			logging.String("output", srt),
			logging.Int("parsed_cues", stats.Parsed),
			logging.Int("merged_cues", stats.Merged()),
			logging.Bool("skipped", stats.Skipped),
		)
	}

	if err := emit(sink, "Wrote: "+srt); err != nil {
		return "", false, err
	}
	return srt, false, nil
}

func (s *Service) run(ctx context.Context, sink EventSink, cfg Config, program string, args []string) error {
	return s.runner.Run(ctx, sink, runner.Invocation{
		Program:        program,
		Args:           args,
		DryRun:         cfg.DryRun,
		VKICDFilenames: cfg.VKICDFilenames,
	})
}

// workingAudioPath returns where ffmpeg writes the extracted track and a
// release func that removes it. Dry runs get a placeholder that is never
// created.
func workingAudioPath(cfg Config, base string) (string, func(), error) {
	if cfg.DryRun {
		return base + ".__tmp__.wav", func() {}, nil
	}
	file, err := os.CreateTemp("", "*.wav")
	if err != nil {
		return "", nil, services.Wrap(services.ErrTransient, "transcribe", "extract audio", "create temporary audio file", err)
	}
	path := file.Name()
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, services.Wrap(services.ErrTransient, "transcribe", "extract audio", "close temporary audio file", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func emit(sink EventSink, message string) error {
	return sink.Emit(LogEvent, message)
}
