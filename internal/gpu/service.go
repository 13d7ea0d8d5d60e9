package gpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gpu-runtime/internal/logging"
	"gpu-runtime/internal/services"
)

// ErrNoAdapters is returned by SmokeTest when enumeration finds nothing.
var ErrNoAdapters = errors.New("no compatible GPU adapters found")

// PingResult is the ping response body.
type PingResult struct {
	Message    string  `json:"message"`
	GPUEnabled bool    `json:"gpu_enabled"`
	GPUName    *string `json:"gpu_name"`
	GPUBackend string  `json:"gpu_backend"`
	GPUType    string  `json:"gpu_type"`
}

// Device is one entry of the list_devices response.
type Device struct {
	Name       string `json:"name"`
	Vendor     uint32 `json:"vendor"`
	Device     uint32 `json:"device"`
	DeviceType string `json:"device_type"`
	Backend    string `json:"backend"`
	Driver     string `json:"driver"`
	DriverInfo string `json:"driver_info"`
}

// DeviceList is the list_devices response body.
type DeviceList struct {
	Devices []Device `json:"devices"`
}

// SmokeResult is the smoke_test response body.
type SmokeResult struct {
	Message string `json:"message"`
}

// Service answers adapter probes.
type Service struct {
	prober Prober
	logger *slog.Logger
}

// NewService wraps prober; a nil prober means VulkanProber.
func NewService(prober Prober, logger *slog.Logger) *Service {
	if prober == nil {
		prober = VulkanProber{}
	}
	return &Service{prober: prober, logger: logging.NewComponentLogger(logger, "gpu")}
}

// Ping reports the preferred adapter, or CPU fallback when none exists.
func (s *Service) Ping(ctx context.Context) PingResult {
	adapters := s.adapters(ctx)
	if len(adapters) == 0 {
		return PingResult{
			Message:    "Runtime ready (CPU fallback)",
			GPUBackend: "CPU",
			GPUType:    "Cpu",
		}
	}
	first := adapters[0]
	return PingResult{
		Message:    "Runtime ready",
		GPUEnabled: true,
		GPUName:    &first.Name,
		GPUBackend: first.Backend,
		GPUType:    first.DeviceType,
	}
}

// ListDevices reports every adapter.
func (s *Service) ListDevices(ctx context.Context) DeviceList {
	adapters := s.adapters(ctx)
	devices := make([]Device, 0, len(adapters))
	for _, a := range adapters {
		devices = append(devices, Device(a))
	}
	return DeviceList{Devices: devices}
}

// SmokeTest confirms that at least one adapter is usable.
func (s *Service) SmokeTest(ctx context.Context) (SmokeResult, error) {
	adapters := s.adapters(ctx)
	if len(adapters) == 0 {
		return SmokeResult{}, services.Mark(services.ErrNotFound, ErrNoAdapters)
	}
	first := adapters[0]
	return SmokeResult{Message: fmt.Sprintf("Smoke test ok on %s (%s)", first.Name, first.Backend)}, nil
}

func (s *Service) adapters(ctx context.Context) []Adapter {
	adapters, err := s.prober.Adapters(ctx)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "adapter enumeration failed", "gpu_probe_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install vulkan-tools or check the graphics driver"),
			logging.String(logging.FieldImpact, "reporting CPU fallback"),
		)
		return nil
	}
	return adapters
}
