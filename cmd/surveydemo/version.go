package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "0.1.0-alpha"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of surveydemo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "surveydemo %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
