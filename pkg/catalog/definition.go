package catalog

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// Item is one placeable sub-part of a variant: the symbol it draws, the
// designator suffix it contributes ("A" in "U1A"), and the relative geometry
// applied when the instance is created.
type Item struct {
	ID       uuid.UUID    `json:"id"`
	Symbol   uuid.UUID    `json:"symbol"`
	Suffix   string       `json:"suffix"`
	Offset   domain.Point `json:"offset"`
	Rotation domain.Angle `json:"rotation"`
}

// Variant is one symbol arrangement of a definition with its ordered,
// finite, restartable item sequence.
type Variant struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Items []Item    `json:"items"`
}

// First returns the first item of the placement order.
func (v *Variant) First() (Item, bool) {
	if len(v.Items) == 0 {
		return Item{}, false
	}
	return v.Items[0], true
}

// Next returns the item placed after current. It returns false when current
// is the last item or is not part of this variant.
func (v *Variant) Next(current uuid.UUID) (Item, bool) {
	for i, it := range v.Items {
		if it.ID == current {
			if i+1 < len(v.Items) {
				return v.Items[i+1], true
			}
			return Item{}, false
		}
	}
	return Item{}, false
}

// Item looks up an item by ID.
func (v *Variant) Item(id uuid.UUID) (Item, bool) {
	for _, it := range v.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Definition describes one orderable component in the catalog.
type Definition struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Prefix      string     `json:"prefix"`
	Version     string     `json:"version,omitempty"`
	Variants    []Variant  `json:"variants"`
	Footprint   *Footprint `json:"footprint,omitempty"`
}

// Variant looks up a variant by ID.
func (d *Definition) Variant(id uuid.UUID) (*Variant, bool) {
	for i := range d.Variants {
		if d.Variants[i].ID == id {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

// DefaultVariant returns the first declared variant.
func (d *Definition) DefaultVariant() (*Variant, bool) {
	if len(d.Variants) == 0 {
		return nil, false
	}
	return &d.Variants[0], true
}

// Validate checks structural integrity: identifiers set, at least one
// variant, every variant non-empty with unique item IDs, and a valid
// footprint when present.
func (d *Definition) Validate() error {
	if d.ID == uuid.Nil {
		return domain.NewValidationError("definition", "missing id")
	}
	if d.Name == "" {
		return domain.NewValidationError("definition", "%s: missing name", d.ID)
	}
	if len(d.Variants) == 0 {
		return domain.NewValidationError("definition", "%s: no variants", d.Name)
	}
	for _, v := range d.Variants {
		if v.ID == uuid.Nil {
			return domain.NewValidationError("variant", "%s: missing id", d.Name)
		}
		if len(v.Items) == 0 {
			return domain.NewValidationError("variant", "%s/%s: no items", d.Name, v.Name)
		}
		seen := make(map[uuid.UUID]bool, len(v.Items))
		for _, it := range v.Items {
			if it.ID == uuid.Nil {
				return domain.NewValidationError("item", "%s/%s: missing id", d.Name, v.Name)
			}
			if seen[it.ID] {
				return domain.NewValidationError("item", "%s/%s: duplicate id %s", d.Name, v.Name, it.ID)
			}
			seen[it.ID] = true
		}
	}
	if d.Footprint != nil {
		if err := d.Footprint.Validate(); err != nil {
			return err
		}
	}
	return nil
}
