package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/testutils"
	"github.com/veldtlabs/breadboard/pkg/adapters/memory"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/session"
	"github.com/veldtlabs/breadboard/pkg/tool"
)

func factoryFor(def *catalog.Definition) session.Factory {
	return func(id uuid.UUID) (*breadboard.Editor, error) {
		return breadboard.New(memory.NewCatalog(def),
			breadboard.WithDocumentName("session-"+id.String()[:8]))
	}
}

func place(ctx context.Context, ed *breadboard.Editor, def *catalog.Definition) error {
	if err := ed.Handle(ctx, tool.StartPlacement{Definition: def.ID}); err != nil {
		return err
	}
	if err := ed.Handle(ctx, tool.PrimaryClick{Pos: ed.Tool().Pointer()}); err != nil {
		return err
	}
	return ed.Handle(ctx, tool.Deactivate{})
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	mgr := session.NewManager(factoryFor(def))

	id, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.Len())

	err = mgr.With(ctx, id, func(ctx context.Context, ed *breadboard.Editor) error {
		return place(ctx, ed, def)
	})
	require.NoError(t, err)

	err = mgr.With(ctx, id, func(ctx context.Context, ed *breadboard.Editor) error {
		assert.Equal(t, 1, ed.Document().ComponentCount())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, mgr.Close(id))
	assert.Equal(t, 0, mgr.Len())

	err = mgr.With(ctx, id, func(context.Context, *breadboard.Editor) error { return nil })
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, mgr.Close(id), session.ErrNotFound)
}

func TestManagerUnknownSession(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(factoryFor(testutils.Definition(t, "Resistor", "R", 1)))

	err := mgr.With(ctx, uuid.New(), func(context.Context, *breadboard.Editor) error { return nil })
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestManagerMaxSessions(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	mgr := session.NewManager(factoryFor(def), session.WithMaxSessions(1))

	id, err := mgr.Create(ctx)
	require.NoError(t, err)

	_, err = mgr.Create(ctx)
	assert.ErrorIs(t, err, session.ErrLimitReached)

	require.NoError(t, mgr.Close(id))
	_, err = mgr.Create(ctx)
	assert.NoError(t, err, "capacity frees up when a session closes")
}

func TestManagerLifecycleCallbacks(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)

	var created, closed int
	mgr := session.NewManager(factoryFor(def),
		session.WithLifecycle(func() { created++ }, func() { closed++ }))

	id, err := mgr.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, closed)

	require.NoError(t, mgr.Close(id))
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, closed)

	// A failed close must not fire the callback again.
	assert.Error(t, mgr.Close(id))
	assert.Equal(t, 1, closed)
}

func TestManagerFactoryError(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(func(uuid.UUID) (*breadboard.Editor, error) {
		return nil, fmt.Errorf("backend unavailable")
	})

	_, err := mgr.Create(ctx)
	assert.Error(t, err)
	assert.Equal(t, 0, mgr.Len())
}

func TestManagerList(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	mgr := session.NewManager(factoryFor(def))

	a, err := mgr.Create(ctx)
	require.NoError(t, err)
	b, err := mgr.Create(ctx)
	require.NoError(t, err)

	infos := mgr.List()
	require.Len(t, infos, 2)
	ids := []uuid.UUID{infos[0].ID, infos[1].ID}
	assert.Contains(t, ids, a)
	assert.Contains(t, ids, b)
	for _, info := range infos {
		assert.NotEmpty(t, info.Document)
		assert.False(t, info.Created.IsZero())
	}
}

// TestManagerSerializesAccess hammers one session from many goroutines; the
// per-session mutex must serialize them so every placement lands.
func TestManagerSerializesAccess(t *testing.T) {
	ctx := context.Background()
	def := testutils.Definition(t, "Resistor", "R", 1)
	mgr := session.NewManager(factoryFor(def))

	id, err := mgr.Create(ctx)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = mgr.With(ctx, id, func(ctx context.Context, ed *breadboard.Editor) error {
				return place(ctx, ed, def)
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	err = mgr.With(ctx, id, func(ctx context.Context, ed *breadboard.Editor) error {
		assert.Equal(t, workers, ed.Document().ComponentCount())
		seen := make(map[string]bool)
		for _, c := range ed.Document().Components() {
			require.False(t, seen[c.Designator], "designator %s allocated twice", c.Designator)
			seen[c.Designator] = true
		}
		return nil
	})
	require.NoError(t, err)
}
