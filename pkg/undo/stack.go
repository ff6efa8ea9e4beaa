package undo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// Stack owns the linear history of committed Groups plus the cursor marking
// the undo/redo boundary. It lives as long as its document and is owned by a
// single editing goroutine.
type Stack struct {
	logger *slog.Logger
	hooks  domain.Hooks

	history []*Group
	cursor  int // history[:cursor] is applied
	open    *Group

	cleanCursor int // cursor value at the last save point, -1 when unreachable
}

// Option configures a Stack.
type Option func(*Stack)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stack) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks sets lifecycle callbacks fired on commit, abort, undo and redo.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Stack) {
		s.hooks = hooks
	}
}

// NewStack creates an empty history. A fresh stack is clean.
func NewStack(opts ...Option) *Stack {
	s := &Stack{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin opens a new transaction with the given description. It fails with
// ErrTransactionOpen if one is already open, leaving that transaction
// untouched. Opening a transaction truncates any redo history beyond the
// cursor (branch-on-new-edit).
func (s *Stack) Begin(description string) error {
	if s.open != nil {
		return fmt.Errorf("failed to begin %q: %w (%q)", description, ErrTransactionOpen, s.open.Description())
	}

	if s.cursor < len(s.history) {
		dropped := len(s.history) - s.cursor
		s.history = s.history[:s.cursor]
		if s.cleanCursor > s.cursor {
			s.cleanCursor = -1
		}
		s.logger.Debug("truncated redo history", "dropped", dropped)
	}

	s.open = NewGroup(description)
	s.logger.Debug("transaction opened", "description", description)
	return nil
}

// Append executes the command immediately, so the document reflects it, and
// adds it to the open transaction. It fails with ErrNoTransaction when no
// transaction is open. If the command's own Execute fails, the command is
// not added and the transaction keeps its previous contents.
func (s *Stack) Append(cmd Command) error {
	if s.open == nil {
		return fmt.Errorf("failed to append command: %w", ErrNoTransaction)
	}
	if cmd == nil {
		return fmt.Errorf("failed to append command: nil command")
	}

	if err := cmd.Execute(); err != nil {
		return fmt.Errorf("failed to execute %q: %w", cmd.Description(), err)
	}
	if err := s.open.Append(cmd); err != nil {
		// Open groups are never sealed; reaching this is a bug.
		return err
	}

	s.logger.Debug("command appended", "command", cmd.Description(), "transaction", s.open.Description())
	return nil
}

// Commit seals the open transaction and pushes it onto the history,
// advancing the cursor. A transaction with zero commands is legal but is
// dropped rather than pushed, so empty actions never pollute history.
func (s *Stack) Commit() error {
	if s.open == nil {
		return fmt.Errorf("failed to commit: %w", ErrNoTransaction)
	}

	g := s.open
	s.open = nil

	if g.Empty() {
		s.logger.Debug("dropped empty transaction", "description", g.Description())
		return nil
	}

	g.seal()
	s.history = append(s.history, g)
	s.cursor++

	s.logger.Debug("transaction committed", "description", g.Description(), "commands", g.Len(), "depth", len(s.history))
	if s.hooks.OnTransactionCommitted != nil {
		s.hooks.OnTransactionCommitted(&domain.TransactionEvent{
			Timestamp:   time.Now(),
			Description: g.Description(),
			Commands:    g.Len(),
			Depth:       len(s.history),
		})
	}
	return nil
}

// Abort undoes every command appended to the open transaction in reverse
// order, then discards the transaction without pushing it. Calling Abort
// with no open transaction is a no-op. Abort always clears the transaction:
// rollback failures are logged and reported in the returned error but never
// prevent the stack from returning to a consistent idle state, because abort
// runs on error-recovery paths that must not fail again.
func (s *Stack) Abort() error {
	if s.open == nil {
		return nil
	}

	g := s.open
	s.open = nil

	var errs []error
	for i := len(g.commands) - 1; i >= 0; i-- {
		if err := g.commands[i].Undo(); err != nil {
			s.logger.Error("rollback failed", "command", g.commands[i].Description(), "err", err)
			errs = append(errs, err)
		}
	}

	s.logger.Debug("transaction aborted", "description", g.Description(), "commands", g.Len())
	if s.hooks.OnTransactionAborted != nil {
		s.hooks.OnTransactionAborted(&domain.TransactionEvent{
			Timestamp:   time.Now(),
			Description: g.Description(),
			Commands:    g.Len(),
			Depth:       len(s.history),
		})
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to roll back %q: %w", g.Description(), errors.Join(errs...))
	}
	return nil
}

// Undo moves the cursor one entry back, reversing that entry's commands in
// reverse order. It is a no-op at the history boundary and while a
// transaction is open.
func (s *Stack) Undo() error {
	if s.open != nil {
		s.logger.Debug("undo ignored, transaction open")
		return nil
	}
	if s.cursor == 0 {
		return nil
	}

	g := s.history[s.cursor-1]
	if err := g.Undo(); err != nil {
		return err
	}
	s.cursor--

	s.logger.Debug("undone", "description", g.Description(), "cursor", s.cursor)
	if s.hooks.OnUndo != nil {
		s.hooks.OnUndo(&domain.HistoryEvent{
			Timestamp:   time.Now(),
			Description: g.Description(),
			Depth:       len(s.history),
			Cursor:      s.cursor,
		})
	}
	return nil
}

// Redo moves the cursor one entry forward, re-executing that entry's
// commands with their captured parameters. It is a no-op at the history
// boundary and while a transaction is open.
func (s *Stack) Redo() error {
	if s.open != nil {
		s.logger.Debug("redo ignored, transaction open")
		return nil
	}
	if s.cursor >= len(s.history) {
		return nil
	}

	g := s.history[s.cursor]
	if err := g.Execute(); err != nil {
		return err
	}
	s.cursor++

	s.logger.Debug("redone", "description", g.Description(), "cursor", s.cursor)
	if s.hooks.OnRedo != nil {
		s.hooks.OnRedo(&domain.HistoryEvent{
			Timestamp:   time.Now(),
			Description: g.Description(),
			Depth:       len(s.history),
			Cursor:      s.cursor,
		})
	}
	return nil
}

// CanUndo reports whether Undo would move the cursor.
func (s *Stack) CanUndo() bool {
	return s.open == nil && s.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (s *Stack) CanRedo() bool {
	return s.open == nil && s.cursor < len(s.history)
}

// UndoDescription returns the label of the entry Undo would reverse, or "".
func (s *Stack) UndoDescription() string {
	if s.cursor == 0 {
		return ""
	}
	return s.history[s.cursor-1].Description()
}

// RedoDescription returns the label of the entry Redo would apply, or "".
func (s *Stack) RedoDescription() string {
	if s.cursor >= len(s.history) {
		return ""
	}
	return s.history[s.cursor].Description()
}

// Depth returns the number of committed history entries.
func (s *Stack) Depth() int { return len(s.history) }

// Cursor returns how many history entries are currently applied.
func (s *Stack) Cursor() int { return s.cursor }

// InTransaction reports whether a transaction is open.
func (s *Stack) InTransaction() bool { return s.open != nil }

// Descriptions returns the labels of all committed entries in commit order,
// for history introspection surfaces.
func (s *Stack) Descriptions() []string {
	out := make([]string, len(s.history))
	for i, g := range s.history {
		out[i] = g.Description()
	}
	return out
}

// MarkClean records the current cursor as the save point.
func (s *Stack) MarkClean() {
	s.cleanCursor = s.cursor
}

// IsClean reports whether the document matches the last save point and no
// transaction is open.
func (s *Stack) IsClean() bool {
	return s.open == nil && s.cleanCursor == s.cursor
}

// Clear drops the whole history. It fails while a transaction is open.
func (s *Stack) Clear() error {
	if s.open != nil {
		return fmt.Errorf("failed to clear history: %w", ErrTransactionOpen)
	}
	s.history = nil
	s.cursor = 0
	s.cleanCursor = 0
	return nil
}
