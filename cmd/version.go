package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the binary and contract metadata versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "datagov-cc %s (contract %s %s)\n", version, cfg.Metadata.Title, cfg.Metadata.Version)
	},
}
