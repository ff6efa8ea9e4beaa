package graph_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/internal/presentation/graph"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	itemA := uuid.MustParse("0a0a0a0a-0000-4000-8000-000000000001")
	itemB := uuid.MustParse("0b0b0b0b-0000-4000-8000-000000000002")

	tests := []struct {
		name     string
		def      *catalog.Definition
		overlay  *graph.PlacementOverlay
		contains []string
	}{
		{
			name: "Definition Node Shape",
			def: &catalog.Definition{
				Name:    "Op-Amp",
				Version: "1.0.0",
			},
			contains: []string{
				"Op_Amp((\"Op-Amp <br/> v1.0.0\"))",
			},
		},
		{
			name: "Variant And Item Chain",
			def: &catalog.Definition{
				Name: "Op-Amp",
				Variants: []catalog.Variant{
					{
						Name: "dual",
						Items: []catalog.Item{
							{ID: itemA, Suffix: "A"},
							{ID: itemB, Suffix: "B", Offset: domain.Point{X: domain.Millimeters(7)}},
						},
					},
				},
			},
			contains: []string{
				"Op_Amp[/\"dual\"/]",
				"Op_Amp --> Op_Amp_dual",
				"item_0a0a0a0a_0000_4000_8000_000000000001[[\"A\"]]",
				"Op_Amp_dual --> item_0a0a0a0a_0000_4000_8000_000000000001",
				"item_0b0b0b0b_0000_4000_8000_000000000002[[\"B <br/> (7.0, 0.0)\"]]",
				"item_0a0a0a0a_0000_4000_8000_000000000001 --> item_0b0b0b0b_0000_4000_8000_000000000002",
			},
		},
		{
			name: "Unnamed Items And Variants Get Fallback Labels",
			def: &catalog.Definition{
				Name: "Resistor",
				Variants: []catalog.Variant{
					{Items: []catalog.Item{{ID: itemA}}},
				},
			},
			contains: []string{
				"Resistor_default[/\"default\"/]",
				"[[\"item 1\"]]",
			},
		},
		{
			name: "Footprint Dotted Link",
			def: &catalog.Definition{
				Name: "Op-Amp",
				Footprint: &catalog.Footprint{
					Name: "DIP-8",
					Pads: make([]catalog.Pad, 8),
				},
			},
			contains: []string{
				"fp_DIP_8[\"DIP-8 (8 pads)\"]",
				"Op_Amp -.-> fp_DIP_8",
			},
		},
		{
			name: "Label Escaping",
			def: &catalog.Definition{
				Name: `Quad "precision" Op-Amp`,
			},
			contains: []string{
				`(("Quad 'precision' Op-Amp"))`,
			},
		},
		{
			name: "Overlay Styles",
			def: &catalog.Definition{
				Name: "Op-Amp",
				Variants: []catalog.Variant{
					{Name: "dual", Items: []catalog.Item{{ID: itemA, Suffix: "A"}, {ID: itemB, Suffix: "B"}}},
				},
			},
			overlay: &graph.PlacementOverlay{
				PlacedItems: []uuid.UUID{itemA, itemA},
				CurrentItem: itemB,
			},
			contains: []string{
				"classDef placed",
				"classDef current",
				"class item_0a0a0a0a_0000_4000_8000_000000000001 placed;",
				"class item_0b0b0b0b_0000_4000_8000_000000000002 current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaidDeduplicatesPlacedItems(t *testing.T) {
	itemA := uuid.MustParse("0a0a0a0a-0000-4000-8000-000000000001")
	def := &catalog.Definition{
		Name: "Resistor",
		Variants: []catalog.Variant{
			{Items: []catalog.Item{{ID: itemA, Suffix: "A"}}},
		},
	}
	got := graph.GenerateMermaid(def, &graph.PlacementOverlay{
		PlacedItems: []uuid.UUID{itemA, itemA, itemA},
	})
	if n := strings.Count(got, "placed;"); n != 1 {
		t.Errorf("want exactly one placed class line, got %d in:\n%s", n, got)
	}
}
