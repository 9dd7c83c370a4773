package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharevar/sharevar/internal/config"
)

func versionCmd(info config.VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sharevar %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}
