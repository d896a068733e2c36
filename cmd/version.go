package cmd

import (
	"fmt"

	"github.com/OpenCHAMI/pductl/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			return
		}
		version.PrintVersionInfo(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Only print the version")
	rootCmd.AddCommand(versionCmd)
}
