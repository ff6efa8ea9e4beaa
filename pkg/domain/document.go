package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Document is the design being edited. It owns every placed instance and is
// exclusively owned by a single editing goroutine; it performs no locking of
// its own.
type Document struct {
	Name string

	components  map[uuid.UUID]*ComponentInstance
	parts       map[uuid.UUID]*PartInstance
	designators map[string]int
}

// NewDocument creates an empty document.
func NewDocument(name string) *Document {
	return &Document{
		Name:        name,
		components:  make(map[uuid.UUID]*ComponentInstance),
		parts:       make(map[uuid.UUID]*PartInstance),
		designators: make(map[string]int),
	}
}

// NextDesignator allocates the next free designator for a prefix ("R" →
// "R1", "R2", …). Counters are monotonic; undoing an add does not release
// its designator.
func (d *Document) NextDesignator(prefix string) string {
	if prefix == "" {
		prefix = "U"
	}
	d.designators[prefix]++
	return prefix + strconv.Itoa(d.designators[prefix])
}

// AddComponent registers a component instance.
func (d *Document) AddComponent(c *ComponentInstance) error {
	if c == nil {
		return NewMutationError("add component", "<nil>", "no instance given")
	}
	if _, ok := d.components[c.ID]; ok {
		return NewMutationError("add component", c.Designator, "instance %s already registered", c.ID)
	}
	d.components[c.ID] = c
	return nil
}

// RemoveComponent unregisters a component instance. Fails while any of its
// parts are still placed.
func (d *Document) RemoveComponent(id uuid.UUID) error {
	c, ok := d.components[id]
	if !ok {
		return NewMutationError("remove component", id.String(), "not registered")
	}
	for _, p := range d.parts {
		if p.Component == id {
			return NewMutationError("remove component", c.Designator, "part %s still placed", p.ID)
		}
	}
	delete(d.components, id)
	return nil
}

// AddPart registers a part instance. Its owning component must already be
// registered.
func (d *Document) AddPart(p *PartInstance) error {
	if p == nil {
		return NewMutationError("add part", "<nil>", "no instance given")
	}
	if _, ok := d.parts[p.ID]; ok {
		return NewMutationError("add part", p.ID.String(), "already registered")
	}
	if _, ok := d.components[p.Component]; !ok {
		return NewMutationError("add part", p.ID.String(), "component %s not registered", p.Component)
	}
	d.parts[p.ID] = p
	return nil
}

// RemovePart unregisters a part instance.
func (d *Document) RemovePart(id uuid.UUID) error {
	if _, ok := d.parts[id]; !ok {
		return NewMutationError("remove part", id.String(), "not registered")
	}
	delete(d.parts, id)
	return nil
}

// Component looks up a component instance by ID.
func (d *Document) Component(id uuid.UUID) (*ComponentInstance, bool) {
	c, ok := d.components[id]
	return c, ok
}

// Part looks up a part instance by ID.
func (d *Document) Part(id uuid.UUID) (*PartInstance, bool) {
	p, ok := d.parts[id]
	return p, ok
}

// Components returns all component instances ordered by designator.
func (d *Document) Components() []*ComponentInstance {
	out := make([]*ComponentInstance, 0, len(d.components))
	for _, c := range d.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Designator != out[j].Designator {
			return out[i].Designator < out[j].Designator
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Parts returns all part instances in a deterministic order.
func (d *Document) Parts() []*PartInstance {
	out := make([]*PartInstance, 0, len(d.parts))
	for _, p := range d.parts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// ComponentCount returns the number of registered components.
func (d *Document) ComponentCount() int { return len(d.components) }

// PartCount returns the number of registered parts.
func (d *Document) PartCount() int { return len(d.parts) }

// Snapshot renders the full observable document state as a deterministic
// string. Two documents with identical instance state produce identical
// snapshots, which is what history round-trip checks compare.
func (d *Document) Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "document %s\n", d.Name)
	for _, c := range d.Components() {
		fmt.Fprintf(&b, "component %s id=%s definition=%s variant=%s\n",
			c.Designator, c.ID, c.Definition, c.Variant)
	}
	for _, p := range d.Parts() {
		fmt.Fprintf(&b, "part %s component=%s item=%s pos=%s rot=%s\n",
			p.ID, p.Component, p.Item, p.Position, p.Rotation)
	}
	return b.String()
}
