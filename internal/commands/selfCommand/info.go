package selfcommand

import (
	"github.com/spf13/cobra"

	"github.com/redjax/sysreadout/internal/config"
	"github.com/redjax/sysreadout/internal/version"
)

// NewPackageInfoCommand creates the 'self info' command
func NewPackageInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show info about the current package",
		Args:  cobra.NoArgs,
		RunE:  showPackageInfo,
	}
}

func showPackageInfo(cmd *cobra.Command, args []string) error {
	cfg := config.Ctx(cmd.Context())
	return version.WritePackageInfo(cmd.OutOrStdout(), version.GetPackageInfo(), cfg.Output.Format == config.FormatJSON)
}
