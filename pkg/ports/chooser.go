package ports

import (
	"context"

	"github.com/google/uuid"
)

// Choice is the outcome of a successful chooser interaction.
type Choice struct {
	// Definition is the picked definition.
	Definition uuid.UUID

	// Variant optionally picks a variant; the zero UUID selects the
	// definition's default variant.
	Variant uuid.UUID

	// Version is the version string the chooser displayed for the
	// definition, if any. The editor warns when the resolved definition
	// carries a different version.
	Version string
}

// Chooser asks the user to pick a component definition. Implementations own
// their browsing surface (terminal picker, HTTP parameter, test stub).
//
// Choose blocks until the user decides. The boolean result distinguishes a
// cancelled interaction (false) from an accepted one; cancellation is a
// normal outcome, not an error. The error return is reserved for the
// interaction itself failing, e.g. a closed terminal.
type Chooser interface {
	Choose(ctx context.Context) (Choice, bool, error)
}
