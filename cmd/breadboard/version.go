package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldtlabs/breadboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of breadboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("breadboard version %s\n", strings.TrimSpace(breadboard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
