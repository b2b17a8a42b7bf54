package showCommand

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/redjax/sysreadout/internal/config"
	"github.com/redjax/sysreadout/internal/logging"
	"github.com/redjax/sysreadout/internal/readout"
	packageservice "github.com/redjax/sysreadout/internal/services/packageService"
	platformservice "github.com/redjax/sysreadout/internal/services/platformService"
	"github.com/redjax/sysreadout/internal/utils/spinner"
)

// categoryArgs maps the positional argument of show to a category. "all"
// maps to the empty category.
var categoryArgs = map[string]readout.Category{
	"general":  readout.CategoryGeneral,
	"memory":   readout.CategoryMemory,
	"battery":  readout.CategoryBattery,
	"kernel":   readout.CategoryKernel,
	"product":  readout.CategoryProduct,
	"network":  readout.CategoryNetwork,
	"packages": readout.CategoryPackage,
	"all":      "",
}

// NewReadouts builds the platform readouts for a command. Tests replace it.
var NewReadouts = func(ctx context.Context, cfg *config.Config) readout.Readouts {
	return platformservice.New(platformservice.Options{
		Root:         cfg.Root,
		SampleWindow: cfg.CPU.SampleWindow,
		Packages: packageservice.Options{
			Concurrent: cfg.Packages.Concurrent,
			Timeout:    cfg.Packages.Timeout,
			Disabled:   cfg.Packages.Disabled,
		},
		Observe: logging.Observer(zerolog.Ctx(ctx)),
	})
}

func NewShowCmd() *cobra.Command {
	var (
		fields        []string
		params        Params
		absoluteShell bool
	)

	validArgs := make([]string, 0, len(categoryArgs))
	for arg := range categoryArgs {
		validArgs = append(validArgs, arg)
	}
	slices.Sort(validArgs)

	showCmd := &cobra.Command{
		Use:   "show [general|memory|battery|kernel|product|network|packages|all]",
		Short: "Show system information for one category, selected fields, or everything.",
		Long: `Print system information gathered from every source available on this platform.

Fields that cannot be read are shown as the unknown marker followed by the
reason, e.g. "unknown (metric not available)".

Select individual fields with --field, using "category.name" or a unique
name, e.g. --field general.hostname --field used.

Run sysreadout show constants for the detected package manager and family.
`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Ctx(ctx)

			selected, err := selectFields(args, fields)
			if err != nil {
				return err
			}

			if absoluteShell {
				params.Shell = readout.ShellAbsolute
			}

			r := NewReadouts(ctx, cfg)

			stop := func() {}
			if needsSpinner(selected) && cfg.Output.Format != config.FormatJSON {
				stop = spinner.StartSpinner("Reading system information")
			}
			entries := Collect(ctx, r, selected, params)
			stop()

			out := cmd.OutOrStdout()
			renderer := Renderer{
				Format:  cfg.Output.Format,
				Unknown: cfg.Output.Unknown,
				Styled:  cfg.Output.Format == config.FormatTable && isTerminal(out),
			}
			return renderer.Render(out, entries)
		},
	}

	showCmd.Flags().StringSliceVarP(&fields, "field", "f", nil, "Show only the given fields (repeatable), e.g. general.hostname")
	showCmd.Flags().StringVarP(&params.Iface, "iface", "i", "", "Network interface for network fields (default: default-route interface)")
	showCmd.Flags().StringVar(&params.DiskPath, "disk-path", "", "Filesystem path for general.disk_space (default: root)")
	showCmd.Flags().BoolVar(&absoluteShell, "absolute-shell", false, "Show the full path of the shell instead of its name")

	// Attach subcommands
	showCmd.AddCommand(NewConstantsCmd())
	showCmd.AddCommand(NewFieldsCmd())
	showCmd.AddCommand(NewBackendsCmd())

	return showCmd
}

func selectFields(args, fields []string) ([]readout.Field, error) {
	if len(fields) > 0 {
		if len(args) > 0 {
			return nil, fmt.Errorf("use either a category or --field, not both")
		}
		return ParseFields(fields)
	}

	category := readout.Category("")
	if len(args) == 1 {
		category = categoryArgs[args[0]]
	}
	return Displayable(category), nil
}

func needsSpinner(fields []readout.Field) bool {
	return slices.Contains(fields, readout.FieldCPUUsage) || slices.Contains(fields, readout.FieldPackageCount)
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewFieldsCmd lists every field accepted by --field.
func NewFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the field names accepted by show --field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range Displayable("") {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewBackendsCmd lists the package backends registered on this platform,
// marking the ones switched off by packages.disabled.
func NewBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the package backends counted on this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Ctx(cmd.Context())
			names := platformservice.PackageBackends(platformservice.Options{Root: cfg.Root})

			for _, name := range names {
				line := name
				if slices.Contains(cfg.Packages.Disabled, name) {
					line += " (disabled)"
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
