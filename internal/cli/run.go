package cli

import (
	"fmt"
	"os"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	CatalogDir   string
	DocumentName string
	RedisURL     string
	Debug        bool
	Quiet        bool
}

// Execute handles the 'run' command logic: it opens the catalog and starts
// the interactive placement session.
func Execute(opts RunOptions) error {
	if info, err := os.Stat(opts.CatalogDir); err != nil || !info.IsDir() {
		return fmt.Errorf("catalog directory '%s' not found", opts.CatalogDir)
	}
	if opts.DocumentName == "" {
		opts.DocumentName = "untitled"
	}
	return RunSession(opts)
}
