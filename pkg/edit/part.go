package edit

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// AddPart registers a new part instance at a captured position and rotation.
type AddPart struct {
	doc      *domain.Document
	instance *domain.PartInstance
}

// NewAddPart builds the command. The part instance is created here, so the
// generated ID is stable across undo and redo.
func NewAddPart(doc *domain.Document, component, item uuid.UUID, pos domain.Point, rot domain.Angle) *AddPart {
	return &AddPart{
		doc:      doc,
		instance: domain.NewPartInstance(component, item, pos, rot),
	}
}

// Instance returns the part instance this command adds.
func (c *AddPart) Instance() *domain.PartInstance { return c.instance }

func (c *AddPart) Execute() error {
	return c.doc.AddPart(c.instance)
}

func (c *AddPart) Undo() error {
	return c.doc.RemovePart(c.instance.ID)
}

func (c *AddPart) Description() string {
	return "Add part"
}

// RemovePart unregisters an existing part instance. Undo restores the same
// instance with the position and rotation it had at removal.
type RemovePart struct {
	doc      *domain.Document
	instance *domain.PartInstance
}

// NewRemovePart builds the command for a currently registered part.
func NewRemovePart(doc *domain.Document, instance *domain.PartInstance) *RemovePart {
	return &RemovePart{doc: doc, instance: instance}
}

func (c *RemovePart) Execute() error {
	return c.doc.RemovePart(c.instance.ID)
}

func (c *RemovePart) Undo() error {
	return c.doc.AddPart(c.instance)
}

func (c *RemovePart) Description() string {
	return "Remove part"
}
