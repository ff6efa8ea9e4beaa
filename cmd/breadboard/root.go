package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "breadboard",
	Short: "Breadboard is a transactional placement editor for board layouts",
	Long: `Breadboard lets you place catalog components on a board document
through an interactive tool, with every placement recorded as an
undoable transaction.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "./catalog", "Directory containing the component catalog")
}
