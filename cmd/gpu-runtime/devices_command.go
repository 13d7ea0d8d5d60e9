package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gpu-runtime/internal/gpu"
)

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var vulkanInfo string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List graphics adapters visible to the runtime",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			list := gpu.NewService(gpu.VulkanProber{Binary: vulkanInfo}, logger).ListDevices(cmd.Context())
			return writeOutput(cmd, asJSON, list, func(out io.Writer) { printDevices(out, list, vulkanInfo) })
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print adapters as JSON")
	cmd.Flags().StringVar(&vulkanInfo, "vulkaninfo", gpu.DefaultVulkanInfo, "vulkaninfo binary used for enumeration")
	return cmd
}

func printDevices(out io.Writer, list gpu.DeviceList, source string) {
	if len(list.Devices) == 0 {
		fmt.Fprintln(out, "No GPU adapters found; the runtime will report CPU fallback")
		return
	}
	rows := make([][]string, 0, len(list.Devices))
	for i, d := range list.Devices {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			d.Name,
			d.DeviceType,
			d.Backend,
			fmt.Sprintf("0x%04x", d.Vendor),
			fmt.Sprintf("0x%04x", d.Device),
			d.Driver,
			d.DriverInfo,
		})
	}
	fmt.Fprintln(out, reportTable{
		Title:   "GPU adapters",
		Headers: []string{"#", "Name", "Type", "Backend", "Vendor", "Device", "Driver", "Driver Info"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		Wrap:    map[int]int{7: 40},
		Caption: fmt.Sprintf("Enumerated with %s; ping and smoke_test use adapter 0", source),
	}.Render())
}
