package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/internal/testutils"
	"github.com/veldtlabs/breadboard/pkg/adapters/memory"
	"github.com/veldtlabs/breadboard/pkg/catalog"
)

// scriptedREPL builds a repl reading the given input script, with markdown
// rendering pass-through so assertions see the raw text.
func scriptedREPL(t *testing.T, script string, defs ...*catalog.Definition) (*repl, *bytes.Buffer) {
	t.Helper()

	cat := memory.NewCatalog(defs...)
	out := &bytes.Buffer{}
	scanner := bufio.NewScanner(strings.NewReader(script))

	ed, err := breadboard.New(cat,
		breadboard.WithLogger(logging.NewNop()),
		breadboard.WithChooser(&terminalChooser{scanner: scanner, out: out, catalog: cat}),
		breadboard.WithNotifier(&terminalNotifier{out: out}),
		breadboard.WithDocumentName("test-board"),
	)
	require.NoError(t, err)

	return &repl{
		editor:  ed,
		catalog: cat,
		scanner: scanner,
		out:     out,
		render:  func(md string) (string, error) { return md, nil },
		logger:  logging.NewNop(),
	}, out
}

func TestREPLPlacementFlow(t *testing.T) {
	resistor := testutils.Definition(t, "Resistor", "R", 1)

	r, out := scriptedREPL(t, strings.Join([]string{
		"place Resistor",
		"move 10.0 5.0",
		"click",
		"done",
		"show",
		"history",
		"undo",
		"quit",
	}, "\n"), resistor)

	err := r.loop(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[R1] > ")
	assert.Contains(t, text, "*[R2] > ", "chained placement arms R2 and the star marks unsaved changes")
	assert.Contains(t, text, "*> ", "document stays dirty after the tool deactivates")
	assert.Contains(t, text, "→  1. Place R1")
	assert.Contains(t, text, ">>> Undid 'Place R1'.")
	assert.Contains(t, text, "scale: 1 cell")
	assert.Contains(t, text, "tool: idle")
}

func TestREPLChooserDrivenPlacement(t *testing.T) {
	amp := testutils.Definition(t, "Op-Amp", "U", 1)
	resistor := testutils.Definition(t, "Resistor", "R", 1)

	// "place" with no name lists the definitions; "1" picks Op-Amp (the
	// catalog sorts by name).
	r, out := scriptedREPL(t, strings.Join([]string{
		"place",
		"1",
		"quit",
	}, "\n"), amp, resistor)

	require.NoError(t, r.loop(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Pick a definition")
	assert.Contains(t, text, "1. Op-Amp")
	assert.Contains(t, text, "[U1] > ")
}

func TestREPLChooserCancelled(t *testing.T) {
	amp := testutils.Definition(t, "Op-Amp", "U", 1)

	r, out := scriptedREPL(t, strings.Join([]string{
		"place",
		"",
		"quit",
	}, "\n"), amp)

	require.NoError(t, r.loop(context.Background()))
	assert.NotContains(t, out.String(), "[U1] > ")
}

func TestREPLUndoRedoMessages(t *testing.T) {
	resistor := testutils.Definition(t, "Resistor", "R", 1)

	r, out := scriptedREPL(t, strings.Join([]string{
		"undo",
		"place Resistor",
		"undo",
		"done",
		"quit",
	}, "\n"), resistor)

	require.NoError(t, r.loop(context.Background()))

	text := out.String()
	assert.Contains(t, text, ">>> Nothing to undo.")
	assert.Contains(t, text, ">>> Finish or abort the placement first.")
}

func TestREPLRejectsBadInput(t *testing.T) {
	resistor := testutils.Definition(t, "Resistor", "R", 1)

	r, out := scriptedREPL(t, strings.Join([]string{
		"move 10",
		"move ten five",
		"place Capacitor",
		"frobnicate",
		"quit",
	}, "\n"), resistor)

	require.NoError(t, r.loop(context.Background()))

	text := out.String()
	assert.Contains(t, text, "expected two coordinates")
	assert.Contains(t, text, "Error:")
	assert.Contains(t, text, "no definition named 'Capacitor'")
	assert.Contains(t, text, "Unknown command 'frobnicate'")
}

func TestREPLDefinitionViews(t *testing.T) {
	amp := testutils.Definition(t, "Op-Amp", "U", 2)

	r, out := scriptedREPL(t, strings.Join([]string{
		"defs",
		"card op",
		"graph Op-Amp",
		"quit",
	}, "\n"), amp)

	require.NoError(t, r.loop(context.Background()))

	text := out.String()
	assert.Contains(t, text, "- Op-Amp v1.0.0 [U]")
	assert.Contains(t, text, "# Op-Amp")
	assert.Contains(t, text, "graph TD")
}

func TestREPLReloadUnsupportedOnMemoryCatalog(t *testing.T) {
	r, out := scriptedREPL(t, "reload\nquit\n")

	require.NoError(t, r.loop(context.Background()))
	assert.Contains(t, out.String(), "Reload not supported")
}

func TestResolveDefinition(t *testing.T) {
	amp := testutils.Definition(t, "Op-Amp", "U", 1)
	opto := testutils.Definition(t, "Optocoupler", "U", 1)
	r, _ := scriptedREPL(t, "", amp, opto)

	ctx := context.Background()

	id, err := r.resolveDefinition(ctx, amp.ID.String())
	require.NoError(t, err)
	assert.Equal(t, amp.ID, id)

	id, err = r.resolveDefinition(ctx, "op-amp")
	require.NoError(t, err)
	assert.Equal(t, amp.ID, id)

	id, err = r.resolveDefinition(ctx, "opto")
	require.NoError(t, err)
	assert.Equal(t, opto.ID, id)

	_, err = r.resolveDefinition(ctx, "op")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = r.resolveDefinition(ctx, "diode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definition named 'diode'")
}
