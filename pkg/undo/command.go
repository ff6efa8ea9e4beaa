package undo

import "errors"

// ErrTransactionOpen is returned by Begin while another transaction is open.
// It signals a contract violation in the calling code, not a user condition.
var ErrTransactionOpen = errors.New("a transaction is already open")

// ErrNoTransaction is returned by Append, Commit and (internally) guards
// that need an open transaction when none is.
var ErrNoTransaction = errors.New("no open transaction")

// ErrGroupSealed is returned when appending to a group that has already been
// committed to history.
var ErrGroupSealed = errors.New("command group already committed")

// Command is one reversible mutation of exactly one domain instance.
//
// Execute applies the forward mutation. It must be atomic: on error, no
// partial side effect may remain. The forward parameters are captured when
// the command is built, never re-derived, so calling Execute again after an
// Undo replays the identical change - that replay is how the stack drives
// redo.
//
// Undo applies the inverse mutation and must restore the exact prior
// observable state. It is expected to succeed whenever Execute previously
// succeeded and no incompatible mutation happened in between; a failure here
// is a programming error, not a recoverable condition.
type Command interface {
	Execute() error
	Undo() error
	Description() string
}
