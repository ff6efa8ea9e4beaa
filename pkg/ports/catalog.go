package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/catalog"
)

// Catalog defines how the editor retrieves component definitions.
// This allows the storage layer (memory, directory, Redis cache) to be
// decoupled from the editing core.
type Catalog interface {
	// Resolve retrieves a full definition by ID. It performs no document
	// side effects. Returns domain.ErrDefinitionNotFound for unknown IDs and
	// domain.ErrDefinitionNotInstalled for definitions that exist upstream
	// but have no local content.
	Resolve(ctx context.Context, id uuid.UUID) (*catalog.Definition, error)

	// List returns all resolvable definitions sorted by name then ID. This
	// is what choosers and introspection surfaces browse.
	List(ctx context.Context) ([]*catalog.Definition, error)
}
