package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpauljoseph/pdftool/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), version.GetDetailedVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
