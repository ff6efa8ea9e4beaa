package breadboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/testutils"
	"github.com/veldtlabs/breadboard/pkg/adapters/memory"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/tool"
	"github.com/veldtlabs/breadboard/pkg/undo"
)

func pt(xmm, ymm int64) domain.Point {
	return domain.Point{X: domain.Millimeters(xmm), Y: domain.Millimeters(ymm)}
}

func TestNewRequiresCatalog(t *testing.T) {
	_, err := breadboard.New(nil)
	assert.Error(t, err)
}

func TestEditorPlaceUndoRedo(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	ed, err := breadboard.New(memory.NewCatalog(def), breadboard.WithDocumentName("demo"))
	require.NoError(t, err)
	defer ed.Close()

	empty := ed.Document().Snapshot()

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	require.NoError(t, ed.Handle(ctx, tool.PointerMove{Pos: pt(10, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(10, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.Deactivate{}))

	placed := ed.Document().Snapshot()
	require.NotEqual(t, empty, placed)
	assert.Equal(t, []string{"Place R1"}, ed.History().Descriptions())

	require.NoError(t, ed.Undo())
	assert.Equal(t, empty, ed.Document().Snapshot())
	require.NoError(t, ed.Redo())
	assert.Equal(t, placed, ed.Document().Snapshot())
}

func TestEditorRemoveComponent(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Op-Amp Duo", "U", 2)
	ed, err := breadboard.New(memory.NewCatalog(def))
	require.NoError(t, err)

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(10, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(20, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.Deactivate{}))
	placed := ed.Document().Snapshot()
	require.Equal(t, 2, ed.Document().PartCount())

	comp := ed.Document().Components()[0]
	require.NoError(t, ed.RemoveComponent(comp.ID))
	assert.Equal(t, 0, ed.Document().ComponentCount())
	assert.Equal(t, 0, ed.Document().PartCount())
	assert.Equal(t, "Remove component U1", ed.History().UndoDescription())

	require.NoError(t, ed.Undo())
	assert.Equal(t, placed, ed.Document().Snapshot(), "removal is one undoable action")
}

func TestEditorRemoveComponentWhilePlacing(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	ed, err := breadboard.New(memory.NewCatalog(def))
	require.NoError(t, err)
	defer ed.Close()

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	comp := ed.Document().Components()[0]

	err = ed.RemoveComponent(comp.ID)
	assert.True(t, errors.Is(err, undo.ErrTransactionOpen),
		"one-shot edits cannot run inside an open placement")
}

func TestEditorRemovePart(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	ed, err := breadboard.New(memory.NewCatalog(def))
	require.NoError(t, err)

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(5, 5)}))
	require.NoError(t, ed.Handle(ctx, tool.Deactivate{}))

	part := ed.Document().Parts()[0]
	require.NoError(t, ed.RemovePart(part.ID))
	assert.Equal(t, 0, ed.Document().PartCount())
	assert.Equal(t, 1, ed.Document().ComponentCount(), "the component itself stays")

	require.NoError(t, ed.Undo())
	assert.Equal(t, 1, ed.Document().PartCount())
}

func TestEditorHooks(t *testing.T) {
	ctx := context.Background()
	var committed, placedParts, stateChanges int
	def := testutils.Definition(t, "Resistor", "R", 1)
	ed, err := breadboard.New(memory.NewCatalog(def), breadboard.WithHooks(domain.Hooks{
		OnTransactionCommitted: func(*domain.TransactionEvent) { committed++ },
		OnPartPlaced:           func(*domain.PartEvent) { placedParts++ },
		OnStateChanged:         func(*domain.StateEvent) { stateChanges++ },
	}))
	require.NoError(t, err)

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(10, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.Deactivate{}))

	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, placedParts)
	assert.GreaterOrEqual(t, stateChanges, 2, "activation and deactivation both transition")
}

func TestEditorCleanMark(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	ed, err := breadboard.New(memory.NewCatalog(def))
	require.NoError(t, err)

	assert.True(t, ed.History().IsClean())

	require.NoError(t, ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}))
	require.NoError(t, ed.Handle(ctx, tool.PrimaryClick{Pos: pt(10, 10)}))
	require.NoError(t, ed.Handle(ctx, tool.Deactivate{}))
	assert.False(t, ed.History().IsClean())

	ed.History().MarkClean()
	assert.True(t, ed.History().IsClean())

	require.NoError(t, ed.Undo())
	assert.False(t, ed.History().IsClean())
	require.NoError(t, ed.Redo())
	assert.True(t, ed.History().IsClean())
}
