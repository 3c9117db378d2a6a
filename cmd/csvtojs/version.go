package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/csvtojs"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of csvtojs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "csvtojs version %s\n", strings.TrimSpace(csvtojs.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
