package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionEvent describes a committed or aborted history transaction.
// Depth is the committed history length after the operation.
type TransactionEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Commands    int       `json:"commands"`
	Depth       int       `json:"depth"`
}

// HistoryEvent describes cursor movement through committed history.
type HistoryEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Depth       int       `json:"depth"`
	Cursor      int       `json:"cursor"`
}

// PlacementEvent describes the start of an interactive placement.
type PlacementEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Definition uuid.UUID `json:"definition"`
	Variant    uuid.UUID `json:"variant"`
	Designator string    `json:"designator"`
}

// PartEvent describes one placed part.
type PartEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Part      uuid.UUID `json:"part"`
	Component uuid.UUID `json:"component"`
	Position  Point     `json:"position"`
	Rotation  Angle     `json:"rotation"`
}

// StateEvent describes a tool state transition.
type StateEvent struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
}

// Hooks defines optional callbacks for editor observability. Nil fields are
// skipped. Hooks run synchronously on the editing goroutine and must not
// block.
type Hooks struct {
	OnTransactionCommitted func(*TransactionEvent)
	OnTransactionAborted   func(*TransactionEvent)
	OnUndo                 func(*HistoryEvent)
	OnRedo                 func(*HistoryEvent)
	OnPlacementStarted     func(*PlacementEvent)
	OnPartPlaced           func(*PartEvent)
	OnStateChanged         func(*StateEvent)
}

// Merge combines two hook sets; both callbacks fire, h first.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnTransactionCommitted: mergeHook(h.OnTransactionCommitted, other.OnTransactionCommitted),
		OnTransactionAborted:   mergeHook(h.OnTransactionAborted, other.OnTransactionAborted),
		OnUndo:                 mergeHook(h.OnUndo, other.OnUndo),
		OnRedo:                 mergeHook(h.OnRedo, other.OnRedo),
		OnPlacementStarted:     mergeHook(h.OnPlacementStarted, other.OnPlacementStarted),
		OnPartPlaced:           mergeHook(h.OnPartPlaced, other.OnPartPlaced),
		OnStateChanged:         mergeHook(h.OnStateChanged, other.OnStateChanged),
	}
}

func mergeHook[E any](a, b func(*E)) func(*E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
