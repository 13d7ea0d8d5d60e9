package api

import (
	"context"
	"log/slog"

	"gpu-runtime/internal/gpu"
	"gpu-runtime/internal/preflight"
	"gpu-runtime/internal/protocol"
	"gpu-runtime/internal/runner"
	"gpu-runtime/internal/transcribe"
)

// Method names served by the runtime.
const (
	MethodPing        = "ping"
	MethodListDevices = "list_devices"
	MethodSmokeTest   = "smoke_test"
	MethodTranscribe  = "transcribe"
	MethodCheckAssets = "check_assets"
)

// Deps supplies the collaborators the handlers need. Zero values select the
// production implementations.
type Deps struct {
	Logger *slog.Logger
	// Prober enumerates graphics adapters.
	Prober gpu.Prober
	// Environment is consulted on every call so asset discovery follows the
	// current working directory and AER_ASSET_DIR.
	Environment func() transcribe.Environment
	// ConfiguredAssetDir is the runtime.asset_dir config value used by the
	// default Environment.
	ConfiguredAssetDir string
}

// Register installs every method on d.
func Register(d *protocol.Dispatcher, deps Deps) {
	env := deps.Environment
	if env == nil {
		assetDir := deps.ConfiguredAssetDir
		env = func() transcribe.Environment { return transcribe.CurrentEnvironment(assetDir) }
	}

	gpus := gpu.NewService(deps.Prober, deps.Logger)
	jobs := transcribe.NewService(runner.New(deps.Logger), deps.Logger)

	d.Register(MethodPing, func(ctx context.Context, _ *protocol.Call) (any, error) {
		return gpus.Ping(ctx), nil
	})
	d.Register(MethodListDevices, func(ctx context.Context, _ *protocol.Call) (any, error) {
		return gpus.ListDevices(ctx), nil
	})
	d.Register(MethodSmokeTest, func(ctx context.Context, _ *protocol.Call) (any, error) {
		return gpus.SmokeTest(ctx)
	})
	d.Register(MethodTranscribe, func(ctx context.Context, call *protocol.Call) (any, error) {
		params, err := transcribe.DecodeParams(call.Params)
		if err != nil {
			return nil, err
		}
		cfg, err := transcribe.Resolve(params, env())
		if err != nil {
			return nil, err
		}
		return jobs.Run(ctx, call, cfg)
	})
	d.Register(MethodCheckAssets, func(_ context.Context, call *protocol.Call) (any, error) {
		params, err := transcribe.DecodeParams(call.Params)
		if err != nil {
			return nil, err
		}
		return preflight.CheckAssets(transcribe.ResolveTools(params, env())), nil
	})
}
