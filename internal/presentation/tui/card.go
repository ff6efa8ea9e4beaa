package tui

import (
	"fmt"
	"strings"

	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// DefinitionMarkdown builds the markdown card for a catalog definition.
// The result is meant to go through the glamour renderer but stays readable
// as plain text when no TTY is attached.
func DefinitionMarkdown(def *catalog.Definition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", def.Description)
	}
	fmt.Fprintf(&b, "- **ID**: `%s`\n", def.ID)
	fmt.Fprintf(&b, "- **Designator prefix**: `%s`\n", def.Prefix)
	if def.Version != "" {
		fmt.Fprintf(&b, "- **Version**: %s\n", def.Version)
	}
	b.WriteString("\n")

	for _, v := range def.Variants {
		fmt.Fprintf(&b, "## Variant %s\n\n", variantLabel(v))
		b.WriteString("| # | Suffix | Symbol | Offset | Rotation |\n")
		b.WriteString("|---|--------|--------|--------|----------|\n")
		for i, it := range v.Items {
			suffix := it.Suffix
			if suffix == "" {
				suffix = "—"
			}
			fmt.Fprintf(&b, "| %d | %s | `%s` | %s | %s° |\n",
				i+1, suffix, shortID(it.Symbol.String()), it.Offset, it.Rotation)
		}
		b.WriteString("\n")
	}

	if fp := def.Footprint; fp != nil {
		fmt.Fprintf(&b, "## Footprint %s\n\n", fp.Name)
		b.WriteString("| Pad | Side | Shape | Position | Size | Drill |\n")
		b.WriteString("|-----|------|-------|----------|------|-------|\n")
		for _, pad := range fp.Pads {
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s | %s |\n",
				shortID(pad.UUID.String()), pad.Side, pad.Shape,
				pad.Position, pad.Size, pad.Drill)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DocumentMarkdown builds a markdown summary of the document: one table of
// components and one of placed parts.
func DocumentMarkdown(doc *domain.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Name)
	fmt.Fprintf(&b, "%d component(s), %d part(s) placed.\n\n",
		doc.ComponentCount(), doc.PartCount())

	components := doc.Components()
	if len(components) > 0 {
		b.WriteString("## Components\n\n")
		b.WriteString("| Designator | Definition | Variant |\n")
		b.WriteString("|------------|------------|--------|\n")
		for _, c := range components {
			fmt.Fprintf(&b, "| **%s** | `%s` | `%s` |\n",
				c.Designator, shortID(c.Definition.String()), shortID(c.Variant.String()))
		}
		b.WriteString("\n")
	}

	parts := doc.Parts()
	if len(parts) > 0 {
		b.WriteString("## Parts\n\n")
		b.WriteString("| Part | Component | Position | Rotation |\n")
		b.WriteString("|------|-----------|----------|----------|\n")
		for _, p := range parts {
			designator := shortID(p.Component.String())
			if c, ok := doc.Component(p.Component); ok {
				designator = c.Designator
			}
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s° |\n",
				shortID(p.ID.String()), designator, p.Position, p.Rotation)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HistoryMarkdown builds a markdown view of the undo history. The cursor
// separates undoable steps (above) from redoable ones (below).
func HistoryMarkdown(descriptions []string, cursor int, clean bool) string {
	var b strings.Builder
	b.WriteString("# History\n\n")
	if len(descriptions) == 0 {
		b.WriteString("No recorded operations.\n")
		return b.String()
	}
	for i, desc := range descriptions {
		marker := " "
		if i == cursor-1 {
			marker = "→"
		}
		fmt.Fprintf(&b, "%s %2d. %s\n", marker, i+1, desc)
	}
	b.WriteString("\n")
	if clean {
		b.WriteString("Document matches the last saved state.\n")
	} else {
		b.WriteString("Document has unsaved changes.\n")
	}
	return b.String()
}

func variantLabel(v catalog.Variant) string {
	if v.Name != "" {
		return v.Name
	}
	return "default"
}

// shortID abbreviates a UUID to its first group for table cells where the
// full value would drown the row.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
