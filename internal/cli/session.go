package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/presentation/tui"
)

// RunSession executes a single interactive editing session on stdin/stdout.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	if !opts.Quiet {
		tui.PrintBanner()
	}

	cat, err := BuildCatalog(opts.CatalogDir, opts.RedisURL, 0, logger)
	if err != nil {
		return err
	}

	// Setup signal handling. The interruptible reader stops the command
	// loop from blocking on stdin after a signal arrives.
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	scanner := bufio.NewScanner(NewInterruptibleReader(os.Stdin, sigCtx.Done()))

	editorOpts := []breadboard.Option{
		breadboard.WithLogger(logger),
		breadboard.WithChooser(&terminalChooser{scanner: scanner, out: os.Stdout, catalog: cat}),
		breadboard.WithNotifier(&terminalNotifier{out: os.Stdout}),
		breadboard.WithDocumentName(opts.DocumentName),
	}
	if opts.Debug {
		editorOpts = append(editorOpts, breadboard.WithHooks(createDebugHooks(logger)))
	}

	ed, err := breadboard.New(cat, editorOpts...)
	if err != nil {
		return fmt.Errorf("error initializing editor: %w", err)
	}

	if !opts.Quiet {
		printSystemMessage("Editing '%s'. Type 'help' for commands.", opts.DocumentName)
	}

	r := &repl{
		editor:  ed,
		catalog: cat,
		scanner: scanner,
		out:     os.Stdout,
		render:  tui.NewRenderer(),
		logger:  logger,
	}
	runErr := r.loop(sigCtx)

	// Roll back any placement left pending when the loop ends.
	if err := ed.Close(); err != nil {
		logger.Warn("teardown failed", "err", err)
	}

	if sigCtx.Err() != nil && runErr == nil {
		runErr = sigCtx.Err()
	}
	if !opts.Quiet {
		printCompletion(ed.Name(), runErr, sigCtx.Signal())
	}
	return handleExecutionError(runErr)
}
