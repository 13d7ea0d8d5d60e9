package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gpu-runtime/internal/preflight"
	"gpu-runtime/internal/transcribe"
)

var errChecksFailed = errors.New("asset checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var (
		modelPath    string
		vadModelPath string
		whisperPath  string
		ffmpegPath   string
		outputDir    string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that whisper-cli, ffmpeg and the models are in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			params := transcribe.Params{}
			flags := cmd.Flags()
			if flags.Changed("model") {
				params.ModelPath = &modelPath
			}
			if flags.Changed("vad-model") {
				params.VADModelPath = &vadModelPath
			}
			if flags.Changed("whisper") {
				params.WhisperPath = &whisperPath
			}
			if flags.Changed("ffmpeg") {
				params.FFmpegPath = &ffmpegPath
			}
			if flags.Changed("output-dir") {
				params.OutputDir = &outputDir
			}

			report := preflight.CheckAssets(transcribe.ResolveTools(params, transcribe.CurrentEnvironment(cfg.Runtime.AssetDir)))
			err = writeOutput(cmd, asJSON, report, func(out io.Writer) { printReport(out, report) })
			if err != nil {
				return err
			}
			if !report.Passed() {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "Whisper model path")
	cmd.Flags().StringVar(&vadModelPath, "vad-model", "", "VAD model path")
	cmd.Flags().StringVar(&whisperPath, "whisper", "", "whisper-cli path or command name")
	cmd.Flags().StringVar(&ffmpegPath, "ffmpeg", "", "ffmpeg path or command name")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory subtitles would be written to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func printReport(out io.Writer, report preflight.Report) {
	assetDir := "(none found)"
	if report.AssetDir != nil {
		assetDir = *report.AssetDir
	}
	fmt.Fprintf(out, "Asset directory: %s\n", assetDir)

	passed := 0
	rows := make([][]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		if check.Passed {
			passed++
		}
		rows = append(rows, []string{check.Name, yesNo(check.Passed), check.Path, check.Detail})
	}
	fmt.Fprintln(out, reportTable{
		Title:   "Asset checks",
		Headers: []string{"Check", "OK", "Path", "Detail"},
		Rows:    rows,
		Wrap:    map[int]int{2: 60, 3: 40},
		Caption: fmt.Sprintf("%d of %d checks passed", passed, len(report.Checks)),
	}.Render())
}
