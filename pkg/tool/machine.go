package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/edit"
	"github.com/veldtlabs/breadboard/pkg/ports"
	"github.com/veldtlabs/breadboard/pkg/undo"
)

// session carries everything one running placement needs. It exists iff the
// machine is not Idle; fields fill progressively as the definition resolves
// and instances are created.
type session struct {
	definition *catalog.Definition
	variant    *catalog.Variant

	component *domain.ComponentInstance
	item      catalog.Item
	part      *domain.PartInstance
	live      *edit.PartEdit

	// rotation accumulates the user's rotate inputs and carries to the next
	// sub-part and the next chained placement. Abort resets it.
	rotation domain.Angle
}

// Machine drives interactive placement over a document and its undo stack.
// It owns the transition table: catalog lookups, transaction boundaries and
// preview mutations all happen here, while presentation stays behind the
// Chooser and Notifier ports.
type Machine struct {
	logger   *slog.Logger
	doc      *domain.Document
	stack    *undo.Stack
	catalog  ports.Catalog
	chooser  ports.Chooser
	notifier ports.Notifier
	hooks    domain.Hooks

	state   State
	pointer domain.Point
	sess    *session
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithChooser sets the definition chooser consulted when StartPlacement
// carries no definition reference.
func WithChooser(chooser ports.Chooser) Option {
	return func(m *Machine) {
		m.chooser = chooser
	}
}

// WithNotifier sets the sink for user-facing messages.
func WithNotifier(notifier ports.Notifier) Option {
	return func(m *Machine) {
		m.notifier = notifier
	}
}

// WithHooks sets observability callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithPointer sets the initial pointer position.
func WithPointer(pos domain.Point) Option {
	return func(m *Machine) {
		m.pointer = pos
	}
}

// NewMachine creates an idle machine over the given document, stack and
// catalog.
func NewMachine(doc *domain.Document, stack *undo.Stack, cat ports.Catalog, opts ...Option) *Machine {
	m := &Machine{
		logger:  logging.NewNop(),
		doc:     doc,
		stack:   stack,
		catalog: cat,
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the machine's current state.
func (m *Machine) State() State { return m.state }

// Pointer returns the last known pointer position.
func (m *Machine) Pointer() domain.Point { return m.pointer }

// Pending returns the part instance currently following the pointer.
func (m *Machine) Pending() (*domain.PartInstance, bool) {
	if m.state != StatePlacingInstance {
		return nil, false
	}
	return m.sess.part, true
}

// Designator returns the designator of the component being placed, or "".
func (m *Machine) Designator() string {
	if m.sess == nil || m.sess.component == nil {
		return ""
	}
	return m.sess.component.Designator
}

// Handle processes one event to completion. Events must arrive on the
// editing goroutine in input order. The returned error reports placement
// failures after rollback; the machine is always left in a consistent state.
func (m *Machine) Handle(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case StartPlacement:
		return m.handleStart(ctx, ev.Definition, ev.Variant)
	case PointerMove:
		m.handlePointerMove(ev.Pos)
		return nil
	case PrimaryClick:
		return m.handlePrimaryClick(ev.Pos)
	case SecondaryClick:
		m.handleRotate(domain.Degrees(-90))
		return nil
	case RotateCW:
		m.handleRotate(domain.Degrees(-90))
		return nil
	case RotateCCW:
		m.handleRotate(domain.Degrees(90))
		return nil
	case Abort:
		return m.handleAbort()
	case Deactivate:
		return m.Deactivate()
	default:
		return fmt.Errorf("unhandled event type %T", ev)
	}
}

// handleStart resolves a definition, explicitly or via the chooser, and
// starts placing it. Any pending placement is rolled back first.
func (m *Machine) handleStart(ctx context.Context, definitionID, variantID uuid.UUID) error {
	wasIdle := m.state == StateIdle
	version := ""

	if definitionID == uuid.Nil && m.chooser == nil {
		m.notify(ports.SeverityError, "no definition chooser is available")
		return fmt.Errorf("failed to start placement: %w", domain.ErrChooserUnavailable)
	}

	m.enterSelection()

	if definitionID == uuid.Nil {
		choice, ok, err := m.chooser.Choose(ctx)
		if err != nil {
			m.notify(ports.SeverityError, "definition selection failed: "+err.Error())
			m.leaveSelection(wasIdle)
			return fmt.Errorf("failed to choose definition: %w", err)
		}
		if !ok {
			// Cancellation is silent: reset, no message.
			m.logger.Debug("selection cancelled")
			m.leaveSelection(wasIdle)
			return nil
		}
		definitionID, variantID, version = choice.Definition, choice.Variant, choice.Version
	}

	def, err := m.catalog.Resolve(ctx, definitionID)
	if err != nil {
		m.notify(ports.SeverityError, fmt.Sprintf("cannot resolve definition %s: %v", definitionID, err))
		m.leaveSelection(wasIdle)
		return fmt.Errorf("failed to resolve definition %s: %w", definitionID, err)
	}
	if version != "" && version != def.Version {
		m.notify(ports.SeverityWarning, fmt.Sprintf(
			"definition %q is version %s locally but was listed as %s", def.Name, def.Version, version))
	}

	variant, ok := resolveVariant(def, variantID)
	if !ok {
		m.notify(ports.SeverityError, fmt.Sprintf("definition %q has no variant %s", def.Name, variantID))
		m.leaveSelection(wasIdle)
		return fmt.Errorf("failed to resolve variant %s of %q: %w", variantID, def.Name, domain.ErrVariantNotFound)
	}

	m.sess = &session{definition: def, variant: variant}
	m.logger.Info("placement starting", "definition", def.Name, "variant", variant.Name)
	return m.beginPlacement()
}

// handlePointerMove tracks the pointer and, while placing, preview-moves the
// live edit command. Never touches history.
func (m *Machine) handlePointerMove(pos domain.Point) {
	m.pointer = pos
	if m.state == StatePlacingInstance {
		m.sess.live.SetPositionPreview(pos.Add(m.sess.item.Offset))
	}
}

// handlePrimaryClick finalizes the pending sub-part, commits its
// transaction, and moves on: to the variant's next sub-part, or chained into
// a fresh placement of the same definition.
func (m *Machine) handlePrimaryClick(pos domain.Point) error {
	if m.state != StatePlacingInstance {
		return nil
	}
	m.pointer = pos
	sess := m.sess

	sess.live.SetPositionPreview(pos.Add(sess.item.Offset))
	if err := m.stack.Append(sess.live); err != nil {
		return m.placementFailed(fmt.Errorf("failed to finalize part: %w", err))
	}
	if err := m.stack.Commit(); err != nil {
		return m.placementFailed(fmt.Errorf("failed to commit placement: %w", err))
	}

	m.logger.Info("part placed", "component", sess.component.Designator,
		"pos", sess.part.Position.String(), "rot", sess.part.Rotation.String())
	if m.hooks.OnPartPlaced != nil {
		m.hooks.OnPartPlaced(&domain.PartEvent{
			Timestamp: time.Now(),
			Part:      sess.part.ID,
			Component: sess.component.ID,
			Position:  sess.part.Position,
			Rotation:  sess.part.Rotation,
		})
	}
	sess.live = nil

	if next, ok := sess.variant.Next(sess.item.ID); ok {
		if err := m.stack.Begin("Place " + sess.component.Designator); err != nil {
			return m.placementFailed(err)
		}
		return m.startSubPart(next)
	}

	// Definition fully placed; chain straight into the next instance so a
	// run of identical components needs no re-selection.
	m.logger.Debug("definition fully placed", "component", sess.component.Designator)
	return m.beginPlacement()
}

// handleRotate rotates the pending instance as a preview and accumulates
// the delta for subsequent sub-parts.
func (m *Machine) handleRotate(delta domain.Angle) {
	if m.state != StatePlacingInstance {
		return
	}
	m.sess.rotation = m.sess.rotation.Add(delta)
	m.sess.live.RotatePreview(delta)
}

// handleAbort rolls back the pending placement and restarts it for the
// resolved definition; with none resolved the tool is left. Abort in Idle
// does nothing and never opens a transaction.
func (m *Machine) handleAbort() error {
	switch m.state {
	case StateIdle:
		return nil
	case StateAwaitingSelection:
		m.sess = nil
		m.setState(StateIdle)
		return nil
	default:
		if err := m.stack.Abort(); err != nil {
			m.logger.Error("rollback failed", "err", err)
		}
		sess := m.sess
		sess.component = nil
		sess.part = nil
		sess.live = nil
		sess.rotation = 0
		m.logger.Debug("placement aborted, restarting", "definition", sess.definition.Name)
		return m.beginPlacement()
	}
}

// Deactivate leaves the tool from any state, rolling back pending work.
// Idempotent; runs on teardown and must not fail the caller.
func (m *Machine) Deactivate() error {
	if err := m.stack.Abort(); err != nil {
		m.logger.Error("rollback failed", "err", err)
	}
	if m.state != StateIdle {
		m.sess = nil
		m.setState(StateIdle)
	}
	return nil
}

// beginPlacement opens a transaction and creates the component plus its
// first sub-part from the session's resolved definition.
func (m *Machine) beginPlacement() error {
	def, variant := m.sess.definition, m.sess.variant

	item, ok := variant.First()
	if !ok {
		return m.placementFailed(domain.NewValidationError(
			"variant "+variant.Name, "no items to place"))
	}

	designator := m.doc.NextDesignator(def.Prefix)
	if err := m.stack.Begin("Place " + designator); err != nil {
		return m.placementFailed(err)
	}

	addComponent := edit.NewAddComponent(m.doc, def.ID, variant.ID, designator)
	if err := m.stack.Append(addComponent); err != nil {
		return m.placementFailed(err)
	}
	m.sess.component = addComponent.Instance()

	if m.hooks.OnPlacementStarted != nil {
		m.hooks.OnPlacementStarted(&domain.PlacementEvent{
			Timestamp:  time.Now(),
			Definition: def.ID,
			Variant:    variant.ID,
			Designator: designator,
		})
	}
	return m.startSubPart(item)
}

// startSubPart creates the part instance for one variant item at the
// current pointer position and opens its live edit command.
func (m *Machine) startSubPart(item catalog.Item) error {
	pos := m.pointer.Add(item.Offset)
	rot := m.sess.rotation.Add(item.Rotation)

	addPart := edit.NewAddPart(m.doc, m.sess.component.ID, item.ID, pos, rot)
	if err := m.stack.Append(addPart); err != nil {
		return m.placementFailed(err)
	}

	m.sess.item = item
	m.sess.part = addPart.Instance()
	m.sess.live = edit.NewPartEdit(m.sess.part)
	m.setState(StatePlacingInstance)

	m.logger.Debug("sub-part pending", "item", item.ID, "pos", pos.String(), "rot", rot.String())
	return nil
}

// placementFailed is the single failure boundary: it rolls the open
// transaction back so no partial mutation survives, tells the user, and
// returns the machine to Idle before propagating the error.
func (m *Machine) placementFailed(err error) error {
	if aerr := m.stack.Abort(); aerr != nil {
		m.logger.Error("rollback after failed placement", "err", aerr)
	}
	m.notify(ports.SeverityError, err.Error())
	m.sess = nil
	m.setState(StateIdle)
	return err
}

// enterSelection rolls back any pending placement and parks the machine in
// AwaitingSelection while a definition is resolved.
func (m *Machine) enterSelection() {
	if m.state == StatePlacingInstance {
		if err := m.stack.Abort(); err != nil {
			m.logger.Error("rollback failed", "err", err)
		}
	}
	m.sess = &session{}
	m.setState(StateAwaitingSelection)
}

// leaveSelection resets after an unresolved selection: back to Idle when the
// tool was entered from Idle, otherwise resting in AwaitingSelection.
func (m *Machine) leaveSelection(wasIdle bool) {
	if wasIdle {
		m.sess = nil
		m.setState(StateIdle)
	}
}

func (m *Machine) setState(next State) {
	if m.state == next {
		return
	}
	prev := m.state
	m.state = next
	m.logger.Debug("state changed", "from", prev.String(), "to", next.String())
	if m.hooks.OnStateChanged != nil {
		m.hooks.OnStateChanged(&domain.StateEvent{
			Timestamp: time.Now(),
			From:      prev.String(),
			To:        next.String(),
		})
	}
}

func (m *Machine) notify(severity ports.Severity, msg string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ports.Notification{Severity: severity, Message: msg})
}

func resolveVariant(def *catalog.Definition, id uuid.UUID) (*catalog.Variant, bool) {
	if id == uuid.Nil {
		return def.DefaultVariant()
	}
	return def.Variant(id)
}
