// Package gpu answers the adapter probes served next to transcription:
// ping, list_devices and smoke_test.
//
// Adapters come from a Prober. The default VulkanProber parses the summary
// printed by vulkaninfo; hosts without it report no adapters and fall back
// to CPU.
package gpu
