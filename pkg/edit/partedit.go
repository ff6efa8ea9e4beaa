package edit

import (
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// PartEdit is the live edit command behind interactive move and rotate. It
// captures the part's original position and rotation at construction, then
// lets the caller preview new values: every preview mutates the instance
// immediately, so the rendering layer tracks the pointer, while the staged
// target values are what Execute commits.
//
// A PartEdit that is never executed must be dropped with Discard, which
// reverts the previews. After Execute the stack owns it: Undo restores the
// originals and a later Execute re-applies the staged values.
type PartEdit struct {
	part *domain.PartInstance

	origPos domain.Point
	origRot domain.Angle

	newPos domain.Point
	newRot domain.Angle
}

// NewPartEdit starts a live edit of the given part.
func NewPartEdit(part *domain.PartInstance) *PartEdit {
	return &PartEdit{
		part:    part,
		origPos: part.Position,
		origRot: part.Rotation,
		newPos:  part.Position,
		newRot:  part.Rotation,
	}
}

// SetPositionPreview moves the part immediately and stages the position.
func (c *PartEdit) SetPositionPreview(pos domain.Point) {
	c.newPos = pos
	c.part.SetPosition(pos)
}

// SetRotationPreview rotates the part immediately and stages the absolute
// rotation.
func (c *PartEdit) SetRotationPreview(rot domain.Angle) {
	c.newRot = rot.Normalized()
	c.part.SetRotation(rot)
}

// RotatePreview rotates the part immediately by a delta relative to the
// staged rotation.
func (c *PartEdit) RotatePreview(delta domain.Angle) {
	c.SetRotationPreview(c.newRot.Add(delta))
}

// Modified reports whether the staged values differ from the originals.
func (c *PartEdit) Modified() bool {
	return c.newPos != c.origPos || c.newRot != c.origRot
}

// Discard reverts all previews. Use when the edit is dropped without being
// executed, e.g. on abort.
func (c *PartEdit) Discard() {
	c.part.SetPosition(c.origPos)
	c.part.SetRotation(c.origRot)
}

func (c *PartEdit) Execute() error {
	c.part.SetPosition(c.newPos)
	c.part.SetRotation(c.newRot)
	return nil
}

func (c *PartEdit) Undo() error {
	c.part.SetPosition(c.origPos)
	c.part.SetRotation(c.origRot)
	return nil
}

func (c *PartEdit) Description() string {
	return "Edit part"
}
