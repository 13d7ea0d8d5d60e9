package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/services"
)

// ErrCommandFailed marks a child process that ran and exited unsuccessfully.
var ErrCommandFailed = errors.New("command failed")

// LogEvent is the event name used for progress lines.
const LogEvent = "log"

// EventSink receives progress events.
type EventSink interface {
	Emit(event string, payload any) error
}

// Invocation describes one external command.
type Invocation struct {
	Program string
	Args    []string
	DryRun  bool
	// VKICDFilenames, when non-empty, is exported to the child as
	// VK_ICD_FILENAMES on top of the inherited environment.
	VKICDFilenames string
}

// Runner executes invocations and reports dry runs to a sink.
type Runner struct {
	logger *slog.Logger
}

// New returns a Runner that logs command lifecycle at debug level.
func New(logger *slog.Logger) *Runner {
	return &Runner{logger: logging.NewComponentLogger(logger, "runner")}
}

// Render joins program and arguments with single spaces. It is for display
// only; arguments are never shell-quoted.
func Render(program string, args []string) string {
	if len(args) == 0 {
		return program
	}
	return program + " " + strings.Join(args, " ")
}

// Run executes inv, or in dry-run mode emits "DRY-RUN <command>" as a log
// event. A child that exits non-zero yields an error wrapping
// ErrCommandFailed; a child that cannot be started yields the exec error.
func (r *Runner) Run(ctx context.Context, sink EventSink, inv Invocation) error {
	rendered := Render(inv.Program, inv.Args)
	logger := logging.WithContext(ctx, r.logger)

	if inv.DryRun {
		return sink.Emit(LogEvent, "DRY-RUN "+rendered)
	}

	// Stdout and Stderr stay nil so child output goes to the null device and
	// never interleaves with protocol lines.
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	if inv.VKICDFilenames != "" {
		cmd.Env = append(os.Environ(), "VK_ICD_FILENAMES="+inv.VKICDFilenames)
	}

	started := time.Now()
	logger.Debug("starting command", logging.String("command", rendered))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("command exited unsuccessfully",
				logging.String("command", rendered),
				logging.Int("exit_code", exitErr.ExitCode()),
				logging.Duration("elapsed", time.Since(started)),
			)
			return services.Mark(services.ErrExternalTool, fmt.Errorf("%w: %s", ErrCommandFailed, rendered))
		}
		return services.Mark(services.ErrExternalTool, err)
	}
	logger.Debug("command finished",
		logging.String("command", rendered),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}
