package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldtlabs/breadboard/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Edit a board document interactively",
	Long:  `Starts an interactive editing session against the catalog directory, with undo, redo and chained placement.`,
	Run: func(cmd *cobra.Command, args []string) {
		catalogDir, _ := cmd.Flags().GetString("catalog")
		if !cmd.Flags().Changed("catalog") && len(args) > 0 {
			catalogDir = args[0]
		}
		name, _ := cmd.Flags().GetString("name")
		redisURL, _ := cmd.Flags().GetString("redis-url")
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		err := cli.Execute(cli.RunOptions{
			CatalogDir:   catalogDir,
			DocumentName: name,
			RedisURL:     redisURL,
			Debug:        debug,
			Quiet:        quiet,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("name", "n", "", "Name of the board document")
	runCmd.Flags().String("redis-url", "", "Redis URL for catalog caching (optional)")
	runCmd.Flags().Bool("debug", false, "Log editor hook events to stderr")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")

	// Make 'run' the default if no command is provided?
	rootCmd.Run = runCmd.Run
}
