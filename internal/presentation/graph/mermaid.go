package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// PlacementOverlay contains live session state to visualize on the graph.
type PlacementOverlay struct {
	PlacedItems []uuid.UUID
	CurrentItem uuid.UUID
}

// GenerateMermaid produces a Mermaid flowchart of a definition's structure.
// It applies semantic styling:
// - Definition: ((Circle))
// - Variant: [/Parallelogram/]
// - Item: [[Subroutine]], chained in placement order
// - Footprint: [Rectangle], linked with a dotted arrow
// It also applies overlay styles (Placed/Current) if provided.
func GenerateMermaid(def *catalog.Definition, overlay *PlacementOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	defID := sanitizeMermaidID(def.Name)
	defLabel := escapeMermaidLabel(def.Name)
	if def.Version != "" {
		defLabel = fmt.Sprintf("%s <br/> v%s", defLabel, def.Version)
	}
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", defID, defLabel))

	for _, v := range def.Variants {
		variantName := v.Name
		if variantName == "" {
			variantName = "default"
		}
		vid := sanitizeMermaidID(def.Name + "_" + variantName)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", vid, escapeMermaidLabel(variantName)))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", defID, vid))

		// Items chain in the order the placement tool walks them.
		prev := vid
		for i, item := range v.Items {
			iid := itemNodeID(item.ID)
			label := item.Suffix
			if label == "" {
				label = fmt.Sprintf("item %d", i+1)
			}
			if item.Offset != (domain.Point{}) {
				label = fmt.Sprintf("%s <br/> %s", label, item.Offset)
			}
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", iid, escapeMermaidLabel(label)))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", prev, iid))
			prev = iid
		}
	}

	if fp := def.Footprint; fp != nil {
		fpID := sanitizeMermaidID("fp_" + fp.Name)
		sb.WriteString(fmt.Sprintf("    %s[\"%s (%d pads)\"]\n", fpID, escapeMermaidLabel(fp.Name), len(fp.Pads)))
		sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", defID, fpID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme.
		sb.WriteString("    classDef placed fill:#e8f5e9,stroke:#1b5e20,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#fff8e1,stroke:#ff8f00,stroke-width:4px,color:#000;\n")

		placedSet := make(map[string]bool)
		for _, id := range overlay.PlacedItems {
			if id == uuid.Nil {
				continue
			}
			safeID := itemNodeID(id)
			if !placedSet[safeID] {
				placedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s placed;\n", safeID))
			}
		}

		if overlay.CurrentItem != uuid.Nil {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", itemNodeID(overlay.CurrentItem)))
		}
	}

	return sb.String()
}

func itemNodeID(id uuid.UUID) string {
	return "item_" + sanitizeMermaidID(id.String())
}

// escapeMermaidLabel rewrites double quotes so labels stay valid inside
// Mermaid's quoted node text.
func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "\"", "")
	return s
}
