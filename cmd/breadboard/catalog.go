package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldtlabs/breadboard/internal/cli"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the component catalog",
	Long:  `List, show, and lint the component definitions in the catalog directory.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all component definitions",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("catalog")
		if err := cli.CatalogList(dir, os.Stdout); err != nil {
			fmt.Printf("Error listing catalog: %v\n", err)
			os.Exit(1)
		}
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <definition>",
	Short: "Show one definition by name, prefix or UUID",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("catalog")
		asMermaid, _ := cmd.Flags().GetBool("mermaid")

		if err := cli.CatalogShow(dir, args[0], asMermaid, os.Stdout); err != nil {
			fmt.Printf("Error showing definition '%s': %v\n", args[0], err)
			os.Exit(1)
		}
	},
}

var catalogLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check every definition file for problems",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("catalog")
		if err := cli.CatalogLint(dir, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogLintCmd)

	catalogShowCmd.Flags().Bool("mermaid", false, "Output a Mermaid diagram instead of a card")
}
