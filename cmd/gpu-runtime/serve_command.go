package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"gpu-runtime/internal/api"
	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/protocol"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve requests on stdin and reply on stdout (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, ctx)
		},
	}
}

func runServe(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	dispatcher := protocol.NewDispatcher(cmd.OutOrStdout(), logger)
	api.Register(dispatcher, api.Deps{
		Logger:             logger,
		ConfiguredAssetDir: cfg.Runtime.AssetDir,
	})

	logger.Info("runtime serving",
		logging.String(logging.FieldEventType, "runtime_start"),
		logging.Int("pid", os.Getpid()),
		logging.Any("methods", dispatcher.Methods()),
	)
	err = dispatcher.Serve(cmd.Context(), cmd.InOrStdin())
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.ErrorWithContext(logger, "runtime stopped", "runtime_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "the caller closed or broke the output pipe"),
		)
		return err
	}
	logger.Info("runtime stopped", logging.String(logging.FieldEventType, "runtime_stop"))
	return err
}
