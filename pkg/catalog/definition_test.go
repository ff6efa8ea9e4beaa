package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

func dualVariantDefinition() Definition {
	return Definition{
		ID:     uuid.New(),
		Name:   "Dual OpAmp",
		Prefix: "U",
		Variants: []Variant{
			{
				ID:   uuid.New(),
				Name: "default",
				Items: []Item{
					{ID: uuid.New(), Symbol: uuid.New(), Suffix: "A"},
					{ID: uuid.New(), Symbol: uuid.New(), Suffix: "B"},
				},
			},
		},
	}
}

func TestVariantTraversal(t *testing.T) {
	def := dualVariantDefinition()
	v := &def.Variants[0]

	first, ok := v.First()
	require.True(t, ok)
	assert.Equal(t, "A", first.Suffix)

	second, ok := v.Next(first.ID)
	require.True(t, ok)
	assert.Equal(t, "B", second.Suffix)

	_, ok = v.Next(second.ID)
	assert.False(t, ok, "sequence is finite")

	// Restartable: First works again after exhausting the sequence.
	again, ok := v.First()
	require.True(t, ok)
	assert.Equal(t, first.ID, again.ID)

	_, ok = v.Next(uuid.New())
	assert.False(t, ok, "unknown cursor yields no next item")
}

func TestVariantLookup(t *testing.T) {
	def := dualVariantDefinition()

	got, ok := def.Variant(def.Variants[0].ID)
	require.True(t, ok)
	assert.Equal(t, "default", got.Name)

	_, ok = def.Variant(uuid.New())
	assert.False(t, ok)

	dv, ok := def.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, def.Variants[0].ID, dv.ID)
}

func TestDefinitionValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		def := dualVariantDefinition()
		assert.NoError(t, def.Validate())
	})

	cases := []struct {
		name   string
		mutate func(*Definition)
	}{
		{"missing id", func(d *Definition) { d.ID = uuid.Nil }},
		{"missing name", func(d *Definition) { d.Name = "" }},
		{"no variants", func(d *Definition) { d.Variants = nil }},
		{"empty variant", func(d *Definition) { d.Variants[0].Items = nil }},
		{"duplicate items", func(d *Definition) {
			d.Variants[0].Items[1].ID = d.Variants[0].Items[0].ID
		}},
		{"bad footprint", func(d *Definition) {
			d.Footprint = &Footprint{ID: uuid.New(), Pads: []Pad{{UUID: uuid.New()}}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := dualVariantDefinition()
			tc.mutate(&def)
			err := def.Validate()
			require.Error(t, err)
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
