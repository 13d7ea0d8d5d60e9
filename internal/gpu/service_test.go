package gpu_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"gpu-runtime/internal/gpu"
	"gpu-runtime/internal/logging"
)

type stubProber struct {
	adapters []gpu.Adapter
	err      error
}

func (s stubProber) Adapters(context.Context) ([]gpu.Adapter, error) {
	return s.adapters, s.err
}

var testAdapter = gpu.Adapter{
	Name:       "Test Adapter",
	Vendor:     4318,
	Device:     9860,
	DeviceType: "DiscreteGpu",
	Backend:    "Vulkan",
	Driver:     "NVIDIA",
	DriverInfo: "550.54.14",
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestPingWithAdapter(t *testing.T) {
	svc := gpu.NewService(stubProber{adapters: []gpu.Adapter{testAdapter}}, logging.NewNop())
	got := marshal(t, svc.Ping(context.Background()))
	want := `{"message":"Runtime ready","gpu_enabled":true,"gpu_name":"Test Adapter","gpu_backend":"Vulkan","gpu_type":"DiscreteGpu"}`
	if got != want {
		t.Fatalf("ping\nwant: %s\ngot:  %s", want, got)
	}
}

func TestPingFallsBackToCPU(t *testing.T) {
	for _, prober := range []stubProber{{}, {err: errors.New("vulkaninfo missing")}} {
		svc := gpu.NewService(prober, logging.NewNop())
		got := marshal(t, svc.Ping(context.Background()))
		want := `{"message":"Runtime ready (CPU fallback)","gpu_enabled":false,"gpu_name":null,"gpu_backend":"CPU","gpu_type":"Cpu"}`
		if got != want {
			t.Fatalf("ping\nwant: %s\ngot:  %s", want, got)
		}
	}
}

func TestListDevices(t *testing.T) {
	svc := gpu.NewService(stubProber{adapters: []gpu.Adapter{testAdapter}}, logging.NewNop())
	got := marshal(t, svc.ListDevices(context.Background()))
	want := `{"devices":[{"name":"Test Adapter","vendor":4318,"device":9860,"device_type":"DiscreteGpu","backend":"Vulkan","driver":"NVIDIA","driver_info":"550.54.14"}]}`
	if got != want {
		t.Fatalf("list_devices\nwant: %s\ngot:  %s", want, got)
	}

	empty := gpu.NewService(stubProber{}, logging.NewNop())
	if got := marshal(t, empty.ListDevices(context.Background())); got != `{"devices":[]}` {
		t.Fatalf("empty list_devices = %s", got)
	}
}

func TestSmokeTest(t *testing.T) {
	svc := gpu.NewService(stubProber{adapters: []gpu.Adapter{testAdapter}}, logging.NewNop())
	result, err := svc.SmokeTest(context.Background())
	if err != nil {
		t.Fatalf("SmokeTest: %v", err)
	}
	if result.Message != "Smoke test ok on Test Adapter (Vulkan)" {
		t.Fatalf("unexpected message %q", result.Message)
	}

	_, err = gpu.NewService(stubProber{}, logging.NewNop()).SmokeTest(context.Background())
	if !errors.Is(err, gpu.ErrNoAdapters) || err.Error() != "no compatible GPU adapters found" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestVulkanProberMissingBinary(t *testing.T) {
	prober := gpu.VulkanProber{Binary: filepath.Join(t.TempDir(), "vulkaninfo")}
	if _, err := prober.Adapters(context.Background()); err == nil {
		t.Fatal("expected error for missing vulkaninfo")
	}
}
