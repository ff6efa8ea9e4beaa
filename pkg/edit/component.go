package edit

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// AddComponent registers a new component instance in the document. The
// instance, including its generated ID and allocated designator, is built
// once at construction.
type AddComponent struct {
	doc      *domain.Document
	instance *domain.ComponentInstance
}

// NewAddComponent builds the command. The designator must already be
// allocated by the caller so that replays reuse it instead of drawing a
// fresh one.
func NewAddComponent(doc *domain.Document, definition, variant uuid.UUID, designator string) *AddComponent {
	return &AddComponent{
		doc:      doc,
		instance: domain.NewComponentInstance(definition, variant, designator),
	}
}

// Instance returns the component instance this command adds.
func (c *AddComponent) Instance() *domain.ComponentInstance { return c.instance }

func (c *AddComponent) Execute() error {
	return c.doc.AddComponent(c.instance)
}

func (c *AddComponent) Undo() error {
	return c.doc.RemoveComponent(c.instance.ID)
}

func (c *AddComponent) Description() string {
	return "Add component " + c.instance.Designator
}

// RemoveComponent unregisters an existing component instance. Undo restores
// the very same instance, so identity and designator survive the round trip.
type RemoveComponent struct {
	doc      *domain.Document
	instance *domain.ComponentInstance
}

// NewRemoveComponent builds the command for an instance that is currently
// registered. Any parts of the component must be removed first, in the same
// transaction, or Execute fails.
func NewRemoveComponent(doc *domain.Document, instance *domain.ComponentInstance) *RemoveComponent {
	return &RemoveComponent{doc: doc, instance: instance}
}

func (c *RemoveComponent) Execute() error {
	return c.doc.RemoveComponent(c.instance.ID)
}

func (c *RemoveComponent) Undo() error {
	return c.doc.AddComponent(c.instance)
}

func (c *RemoveComponent) Description() string {
	return "Remove component " + c.instance.Designator
}
