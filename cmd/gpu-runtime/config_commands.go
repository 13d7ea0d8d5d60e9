package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gpu-runtime/internal/config"
	"gpu-runtime/internal/transcribe"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var assetDir string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Long:        "Create a sample configuration file. --asset-dir pins runtime.asset_dir to the directory holding models/ and bin/.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			assets := strings.TrimSpace(assetDir)
			if assets != "" {
				if assets, err = config.ExpandPath(assets); err != nil {
					return fmt.Errorf("resolve asset directory: %w", err)
				}
			}
			if err := config.CreateSample(target, assets); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			switch {
			case assets == "":
				fmt.Fprintf(out, "Set runtime.asset_dir (or export %s) if models and tools live outside ./assets.\n", transcribe.AssetDirEnv)
			case !dirExists(assets):
				fmt.Fprintf(out, "Asset directory %s does not exist yet; it is ignored until created.\n", assets)
			default:
				fmt.Fprintf(out, "Asset directory: %s\n", assets)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().StringVar(&assetDir, "asset-dir", "", "Directory holding models/ and bin/ to record as runtime.asset_dir")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

// configTarget resolves the --path flag, defaulting to the user config path.
func configTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return defaultPath, nil
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return expanded, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Log level: %s, format: %s\n", cfg.Logging.Level, cfg.Logging.Format)
			if cfg.Runtime.AssetDir != "" {
				fmt.Fprintf(out, "Asset directory: %s\n", cfg.Runtime.AssetDir)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
