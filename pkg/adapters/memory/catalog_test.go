package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/internal/testutils"
	"github.com/veldtlabs/breadboard/pkg/adapters/memory"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

func TestMemoryCatalog_Contract(t *testing.T) {
	defs := []*catalog.Definition{
		testutils.Definition(t, "Op-Amp Dual", "U", 3),
		testutils.Definition(t, "Resistor", "R", 1),
	}
	ports.RunCatalogContract(t, memory.NewCatalog(defs...), defs)
}

func TestMemoryCatalog_NotInstalled(t *testing.T) {
	ctx := context.Background()
	installed := testutils.Definition(t, "Resistor", "R", 1)
	cat := memory.NewCatalog(installed)

	upstream := uuid.New()
	cat.MarkNotInstalled(upstream)

	_, err := cat.Resolve(ctx, upstream)
	assert.ErrorIs(t, err, domain.ErrDefinitionNotInstalled)

	defs, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, defs, 1, "not-installed definitions have no listable content")
}
