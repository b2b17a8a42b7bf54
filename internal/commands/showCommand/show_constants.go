package showCommand

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/redjax/sysreadout/internal/config"
	"github.com/redjax/sysreadout/internal/constants"
)

func NewConstantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "Show platform constants",
		Long:  `Show the platform family, distribution, release and native package manager derived from os-release, sw_vers or the registry.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Ctx(cmd.Context())
			consts := constants.GetPlatformConstants(cfg.Root)
			out := cmd.OutOrStdout()

			switch cfg.Output.Format {
			case config.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(consts)
			case config.FormatPlain:
				_, err := fmt.Fprintf(out, "Family: %s\nDistribution: %s\nRelease: %s\nPackage Manager: %s\nArchitecture: %s\n",
					consts.Family, consts.Distribution, consts.Release, consts.PackageManager, consts.Architecture)
				return err
			}

			t := table.NewWriter()
			t.SetStyle(table.StyleRounded)
			t.AppendRows([]table.Row{
				{"Family", consts.Family},
				{"Distribution", consts.Distribution},
				{"Release", consts.Release},
				{"Package Manager", consts.PackageManager},
				{"Architecture", consts.Architecture},
			})
			_, err := fmt.Fprintln(out, t.Render())
			return err
		},
	}
}
