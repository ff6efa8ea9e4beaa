package breadboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/edit"
	"github.com/veldtlabs/breadboard/pkg/ports"
	"github.com/veldtlabs/breadboard/pkg/tool"
	"github.com/veldtlabs/breadboard/pkg/undo"
)

// Editor is the high-level entry point for the breadboard library. It wires
// a document, its undo stack and the placement tool behind one facade and
// provides a simplified API for consumers.
//
// An Editor is single-threaded: all calls must come from one goroutine.
// Concurrent surfaces serialize access per editor, see pkg/session.
type Editor struct {
	logger   *slog.Logger
	catalog  ports.Catalog
	chooser  ports.Chooser
	notifier ports.Notifier
	hooks    domain.Hooks
	name     string
	pointer  domain.Point

	doc     *domain.Document
	stack   *undo.Stack
	machine *tool.Machine
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithChooser injects the definition chooser used when placement starts
// without a definition reference. Without one, such placements fail with
// domain.ErrChooserUnavailable.
func WithChooser(chooser ports.Chooser) Option {
	return func(e *Editor) {
		e.chooser = chooser
	}
}

// WithNotifier injects the sink for user-facing messages.
func WithNotifier(notifier ports.Notifier) Option {
	return func(e *Editor) {
		e.notifier = notifier
	}
}

// WithHooks registers observability hooks, fired for transactions, history
// movement, placements and tool state changes.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithDocumentName names the document (default "untitled").
func WithDocumentName(name string) Option {
	return func(e *Editor) {
		if name != "" {
			e.name = name
		}
	}
}

// WithPointer sets the initial pointer position.
func WithPointer(pos domain.Point) Option {
	return func(e *Editor) {
		e.pointer = pos
	}
}

// New initializes an Editor over the given catalog with an empty document.
func New(cat ports.Catalog, opts ...Option) (*Editor, error) {
	if cat == nil {
		return nil, errors.New("a catalog is required")
	}

	e := &Editor{
		catalog: cat,
		name:    "untitled",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	e.logger = e.logger.With("document", e.name)

	e.doc = domain.NewDocument(e.name)
	e.stack = undo.NewStack(
		undo.WithLogger(e.logger),
		undo.WithHooks(e.hooks),
	)

	machineOpts := []tool.Option{
		tool.WithLogger(e.logger),
		tool.WithHooks(e.hooks),
		tool.WithPointer(e.pointer),
	}
	if e.chooser != nil {
		machineOpts = append(machineOpts, tool.WithChooser(e.chooser))
	}
	if e.notifier != nil {
		machineOpts = append(machineOpts, tool.WithNotifier(e.notifier))
	}
	e.machine = tool.NewMachine(e.doc, e.stack, cat, machineOpts...)

	return e, nil
}

// Handle feeds one tool event to the placement machine.
func (e *Editor) Handle(ctx context.Context, ev tool.Event) error {
	return e.machine.Handle(ctx, ev)
}

// Undo reverses the newest committed action. No-op at the history boundary
// and while a placement transaction is open.
func (e *Editor) Undo() error { return e.stack.Undo() }

// Redo re-applies the newest undone action.
func (e *Editor) Redo() error { return e.stack.Redo() }

// Document returns the live document. Callers must respect the editor's
// single-goroutine ownership.
func (e *Editor) Document() *domain.Document { return e.doc }

// History returns the undo stack for introspection: depth, cursor,
// descriptions and the clean mark.
func (e *Editor) History() *undo.Stack { return e.stack }

// Tool returns the placement machine for state introspection.
func (e *Editor) Tool() *tool.Machine { return e.machine }

// Catalog returns the catalog the editor resolves definitions from.
func (e *Editor) Catalog() ports.Catalog { return e.catalog }

// Name returns the document name.
func (e *Editor) Name() string { return e.name }

// RemoveComponent removes a component and all of its placed parts as one
// undoable action. It fails while a placement transaction is open.
func (e *Editor) RemoveComponent(id uuid.UUID) error {
	c, ok := e.doc.Component(id)
	if !ok {
		return domain.NewMutationError("remove component", id.String(), "not registered")
	}

	if err := e.stack.Begin("Remove component " + c.Designator); err != nil {
		return err
	}
	for _, p := range e.doc.Parts() {
		if p.Component != id {
			continue
		}
		if err := e.stack.Append(edit.NewRemovePart(e.doc, p)); err != nil {
			return errors.Join(err, e.stack.Abort())
		}
	}
	if err := e.stack.Append(edit.NewRemoveComponent(e.doc, c)); err != nil {
		return errors.Join(err, e.stack.Abort())
	}

	e.logger.Info("component removed", "designator", c.Designator)
	return e.stack.Commit()
}

// RemovePart removes a single placed part as one undoable action.
func (e *Editor) RemovePart(id uuid.UUID) error {
	p, ok := e.doc.Part(id)
	if !ok {
		return domain.NewMutationError("remove part", id.String(), "not registered")
	}

	if err := e.stack.Begin("Remove part"); err != nil {
		return err
	}
	if err := e.stack.Append(edit.NewRemovePart(e.doc, p)); err != nil {
		return errors.Join(err, e.stack.Abort())
	}
	return e.stack.Commit()
}

// Close deactivates the tool, rolling back any pending placement. The
// editor stays queryable afterwards; Close exists for teardown symmetry and
// is idempotent.
func (e *Editor) Close() error {
	return e.machine.Deactivate()
}
