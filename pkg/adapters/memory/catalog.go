// Package memory implements ports.Catalog over an in-memory map. It is the
// default backend for tests and embedded use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

// Catalog implements ports.Catalog using an in-memory map. Safe for
// concurrent use. Definitions are immutable reference data; Resolve returns
// them without copying.
type Catalog struct {
	mu           sync.RWMutex
	defs         map[uuid.UUID]*catalog.Definition
	notInstalled map[uuid.UUID]bool
}

var _ ports.Catalog = (*Catalog)(nil)

// NewCatalog creates a catalog seeded with the given definitions.
func NewCatalog(defs ...*catalog.Definition) *Catalog {
	c := &Catalog{
		defs:         make(map[uuid.UUID]*catalog.Definition, len(defs)),
		notInstalled: make(map[uuid.UUID]bool),
	}
	for _, def := range defs {
		c.defs[def.ID] = def
	}
	return c
}

// MarkNotInstalled records IDs that exist upstream but have no local
// content. Resolving them fails with domain.ErrDefinitionNotInstalled
// instead of the plain not-found error.
func (c *Catalog) MarkNotInstalled(ids ...uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.notInstalled[id] = true
	}
}

// Resolve retrieves a definition by ID.
func (c *Catalog) Resolve(ctx context.Context, id uuid.UUID) (*catalog.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.notInstalled[id] {
		return nil, fmt.Errorf("definition %s: %w", id, domain.ErrDefinitionNotInstalled)
	}
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("definition %s: %w", id, domain.ErrDefinitionNotFound)
	}
	return def, nil
}

// List returns all resolvable definitions sorted by name then ID.
func (c *Catalog) List(ctx context.Context) ([]*catalog.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*catalog.Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
