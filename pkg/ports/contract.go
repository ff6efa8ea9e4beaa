package ports

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// RunCatalogContract runs a suite of tests to verify that a Catalog
// implementation adheres to the defined interface contract. The seeded
// definitions must be exactly the catalog's content.
func RunCatalogContract(t *testing.T, cat Catalog, seeded []*catalog.Definition) {
	ctx := context.Background()

	t.Run("Resolve seeded", func(t *testing.T) {
		for _, def := range seeded {
			resolved, err := cat.Resolve(ctx, def.ID)
			require.NoError(t, err, "Resolve should find seeded definition %s", def.Name)
			assert.Equal(t, def.ID, resolved.ID)
			assert.Equal(t, def.Name, resolved.Name)
			assert.Equal(t, def.Version, resolved.Version)
			assert.Len(t, resolved.Variants, len(def.Variants))
		}
	})

	t.Run("Resolve unknown", func(t *testing.T) {
		_, err := cat.Resolve(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("Resolve is repeatable", func(t *testing.T) {
		if len(seeded) == 0 {
			t.Skip("no seeded definitions")
		}
		first, err := cat.Resolve(ctx, seeded[0].ID)
		require.NoError(t, err)
		second, err := cat.Resolve(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Name, second.Name)
	})

	t.Run("List", func(t *testing.T) {
		defs, err := cat.List(ctx)
		require.NoError(t, err)
		require.Len(t, defs, len(seeded))

		listed := make(map[uuid.UUID]bool, len(defs))
		for _, def := range defs {
			listed[def.ID] = true
		}
		for _, def := range seeded {
			assert.True(t, listed[def.ID], "List should contain %s", def.Name)
		}

		assert.True(t, sort.SliceIsSorted(defs, func(i, j int) bool {
			if defs[i].Name != defs[j].Name {
				return defs[i].Name < defs[j].Name
			}
			return defs[i].ID.String() < defs[j].ID.String()
		}), "List should be sorted by name then ID")
	})
}
