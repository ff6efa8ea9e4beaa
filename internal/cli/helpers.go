package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows
// retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. It writes to Stderr to
// keep Stdout free for the editor UI. Outside debug mode the CLI stays
// silent; in debug mode a colorized handler is picked when Stderr is a
// terminal.
func createLogger(debug bool) *slog.Logger {
	if !debug {
		return logging.NewNop()
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return logging.NewPretty(slog.LevelDebug)
	}
	return logging.New(slog.LevelDebug)
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// createDebugHooks logs every editor lifecycle event at debug level.
func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnTransactionCommitted: func(e *domain.TransactionEvent) {
			logger.Debug("Transaction Committed", "description", e.Description, "commands", e.Commands, "depth", e.Depth)
		},
		OnTransactionAborted: func(e *domain.TransactionEvent) {
			logger.Debug("Transaction Aborted", "description", e.Description, "commands", e.Commands)
		},
		OnUndo: func(e *domain.HistoryEvent) {
			logger.Debug("Undo", "description", e.Description, "cursor", e.Cursor)
		},
		OnRedo: func(e *domain.HistoryEvent) {
			logger.Debug("Redo", "description", e.Description, "cursor", e.Cursor)
		},
		OnPlacementStarted: func(e *domain.PlacementEvent) {
			logger.Debug("Placement Started", "definition", e.Definition, "designator", e.Designator)
		},
		OnPartPlaced: func(e *domain.PartEvent) {
			logger.Debug("Part Placed", "part", e.Part, "position", e.Position, "rotation", e.Rotation)
		},
		OnStateChanged: func(e *domain.StateEvent) {
			logger.Debug("Tool State", "from", e.From, "to", e.To)
		},
	}
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks for a
// cancellation signal around every blocking read.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	// Check before blocking
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}

	// Read (This blocks!)
	n, err = r.base.Read(p)

	// Check after returning
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		err.Error() == "interrupted" ||
		errors.Is(err, io.EOF) ||
		(errors.Unwrap(err) != nil && isInterrupted(errors.Unwrap(err)))
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

// printCompletion reports how the interactive session ended.
func printCompletion(doc string, err error, sig os.Signal) {
	if err == nil {
		printSystemMessage("Done editing '%s'.", doc)
		return
	}
	if !isInterrupted(err) {
		return
	}
	if sig == os.Interrupt {
		fmt.Printf("[CTRL+C]\n")
		printSystemMessage("Interrupted while editing '%s'.", doc)
		return
	}
	if sig != nil {
		fmt.Printf("\n")
		printSystemMessage("Terminated while editing '%s'.", doc)
		return
	}
	printSystemMessage("Interrupted while editing '%s'.", doc)
}
