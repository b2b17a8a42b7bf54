// The root command for the CLI.
// It composes the subcommands and loads the layered configuration and logger
// every subcommand reads from its context.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/redjax/sysreadout/internal/commands/selfCommand"
	"github.com/redjax/sysreadout/internal/commands/showCommand"
	"github.com/redjax/sysreadout/internal/commands/versionCommand"
	"github.com/redjax/sysreadout/internal/config"
	"github.com/redjax/sysreadout/internal/logging"
	"github.com/redjax/sysreadout/internal/readout"
	"github.com/redjax/sysreadout/internal/utils/path"
	verpkg "github.com/redjax/sysreadout/internal/version"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sysreadout",
		Short:         "Cross-platform system information readout",
		Long:          `Read general, memory, battery, kernel, product, network and package information from whatever sources the current platform offers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			if cfgFile == "" {
				cfgFile = defaultConfigFile()
			} else if cfgFile, err = path.ExpandPath(cfgFile); err != nil {
				return fmt.Errorf("expanding config path: %w", err)
			}

			cfg, err := config.Load(cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}

			base := logging.Base("sysreadout", cfg.Log.Level, cfg.Log.Format)
			ctx := base.WithContext(cmd.Context())
			ctx = cfg.WithContext(ctx)
			cmd.SetContext(ctx)

			zerolog.Ctx(ctx).Debug().
				Str("config_file", cfgFile).
				Str("format", cfg.Output.Format).
				Str("root", cfg.Root).
				Msg("configuration loaded")

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to config file: yaml, json, toml or .env (default: <user config dir>/sysreadout/config.yaml if present)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "Log format: json, console")
	flags.StringP("format", "o", config.FormatTable, "Output format: table, plain, json")
	flags.String("unknown", "unknown", "Marker printed for fields that cannot be read")
	flags.String("root", "/", "Filesystem root prefixed to file sources")
	flags.Duration("sample-window", readout.DefaultSampleWindow, "CPU usage sampling window")
	flags.Bool("packages-concurrent", true, "Count package managers concurrently")
	flags.StringSlice("packages-disabled", nil, "Package backends to skip, e.g. snap,flatpak")
	flags.Duration("packages-timeout", config.DefaultPackagesTimeout, "Deadline for the whole package count; backends still running are reported unavailable")

	rootCmd.AddCommand(showCommand.NewShowCmd())
	rootCmd.AddCommand(selfcommand.NewSelfCommand())
	rootCmd.AddCommand(versioncommand.NewVersionCommand())

	rootCmd.Version = verpkg.GetVersion()
	rootCmd.SetVersionTemplate("sysreadout " + verpkg.GetVersion() + "\n")

	return rootCmd
}

// defaultConfigFile returns the per-user config file when it exists.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	p := filepath.Join(dir, "sysreadout", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func Execute() {
	ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
