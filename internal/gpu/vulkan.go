package gpu

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// DefaultVulkanInfo is the binary VulkanProber runs when none is configured.
const DefaultVulkanInfo = "vulkaninfo"

// Adapter describes one graphics adapter.
type Adapter struct {
	Name       string
	Vendor     uint32
	Device     uint32
	DeviceType string
	Backend    string
	Driver     string
	DriverInfo string
}

// Prober enumerates adapters in preference order.
type Prober interface {
	Adapters(ctx context.Context) ([]Adapter, error)
}

// VulkanProber lists adapters via `vulkaninfo --summary`.
type VulkanProber struct {
	Binary string
}

// Adapters runs vulkaninfo and parses its device section.
func (p VulkanProber) Adapters(ctx context.Context) ([]Adapter, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = DefaultVulkanInfo
	}
	output, err := exec.CommandContext(ctx, binary, "--summary").Output()
	if err != nil {
		return nil, fmt.Errorf("vulkaninfo summary: %w", err)
	}
	return ParseVulkanSummary(string(output)), nil
}

var gpuHeader = regexp.MustCompile(`^GPU\d+:$`)

// ParseVulkanSummary extracts the GPUn blocks of `vulkaninfo --summary`.
func ParseVulkanSummary(output string) []Adapter {
	var adapters []Adapter
	var current *Adapter

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if gpuHeader.MatchString(line) {
			adapters = append(adapters, Adapter{Backend: "Vulkan", DeviceType: "Other"})
			current = &adapters[len(adapters)-1]
			continue
		}
		if current == nil {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "deviceName":
			current.Name = value
		case "deviceType":
			current.DeviceType = deviceTypeName(value)
		case "vendorID":
			current.Vendor = parseHex(value)
		case "deviceID":
			current.Device = parseHex(value)
		case "driverName":
			current.Driver = value
		case "driverInfo":
			current.DriverInfo = value
		}
	}
	return adapters
}

func deviceTypeName(vkType string) string {
	switch vkType {
	case "PHYSICAL_DEVICE_TYPE_DISCRETE_GPU":
		return "DiscreteGpu"
	case "PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU":
		return "IntegratedGpu"
	case "PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU":
		return "VirtualGpu"
	case "PHYSICAL_DEVICE_TYPE_CPU":
		return "Cpu"
	default:
		return "Other"
	}
}

func parseHex(value string) uint32 {
	value = strings.TrimPrefix(strings.ToLower(value), "0x")
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
