package testutils

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// Definition builds a valid single-variant definition with the given number
// of placeable items. Item offsets are spaced 10 mm apart on X so fixtures
// place visually distinct parts. It fails the test immediately if the
// fixture would not validate.
func Definition(t *testing.T, name, prefix string, items int) *catalog.Definition {
	t.Helper()

	variant := catalog.Variant{
		ID:   uuid.New(),
		Name: "default",
	}
	for i := 0; i < items; i++ {
		variant.Items = append(variant.Items, catalog.Item{
			ID:     uuid.New(),
			Symbol: uuid.New(),
			Suffix: fmt.Sprintf("%c", 'A'+i),
			Offset: domain.Point{X: domain.Millimeters(int64(10 * i))},
		})
	}

	def := &catalog.Definition{
		ID:       uuid.New(),
		Name:     name,
		Prefix:   prefix,
		Version:  "1.0.0",
		Variants: []catalog.Variant{variant},
	}
	require.NoError(t, def.Validate(), "fixture definition must validate")
	return def
}

// Footprint builds a valid footprint with the given number of round
// through-hole pads on a 2.54 mm grid.
func Footprint(t *testing.T, name string, pads int) *catalog.Footprint {
	t.Helper()

	fp := &catalog.Footprint{
		ID:   uuid.New(),
		Name: name,
	}
	for i := 0; i < pads; i++ {
		fp.Pads = append(fp.Pads, catalog.Pad{
			UUID:     uuid.New(),
			Side:     catalog.SideTHT,
			Shape:    catalog.ShapeRound,
			Position: domain.Point{X: domain.Length(2540 * int64(i))},
			Size:     domain.Size{Width: domain.Length(1600), Height: domain.Length(1600)},
			Drill:    domain.Length(800),
		})
	}
	require.NoError(t, fp.Validate(), "fixture footprint must validate")
	return fp
}
