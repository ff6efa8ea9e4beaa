package domain

import (
	"github.com/google/uuid"
)

// ComponentInstance is a logical component added to the document, e.g. the
// "R1" resistor. Its visual parts are placed separately as PartInstances.
type ComponentInstance struct {
	ID         uuid.UUID `json:"id"`
	Definition uuid.UUID `json:"definition"`
	Variant    uuid.UUID `json:"variant"`
	Designator string    `json:"designator"`
}

// NewComponentInstance creates a component instance for the given catalog
// definition and variant.
func NewComponentInstance(definition, variant uuid.UUID, designator string) *ComponentInstance {
	return &ComponentInstance{
		ID:         uuid.New(),
		Definition: definition,
		Variant:    variant,
		Designator: designator,
	}
}

// PartInstance is one placed visual part of a component. Position and
// rotation are the attributes the rendering layer reads back after every
// mutation.
type PartInstance struct {
	ID        uuid.UUID `json:"id"`
	Component uuid.UUID `json:"component"`
	Item      uuid.UUID `json:"item"`
	Position  Point     `json:"position"`
	Rotation  Angle     `json:"rotation"`
}

// NewPartInstance creates a part instance for one variant item of a
// component.
func NewPartInstance(component, item uuid.UUID, pos Point, rot Angle) *PartInstance {
	return &PartInstance{
		ID:        uuid.New(),
		Component: component,
		Item:      item,
		Position:  pos,
		Rotation:  rot.Normalized(),
	}
}

// SetPosition moves the part. The rendering layer picks the new value up on
// its next redraw.
func (p *PartInstance) SetPosition(pos Point) {
	p.Position = pos
}

// SetRotation rotates the part to an absolute normalized angle.
func (p *PartInstance) SetRotation(rot Angle) {
	p.Rotation = rot.Normalized()
}
