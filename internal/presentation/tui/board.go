package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// One character cell covers one 0.1 inch grid pitch at scale 1.
const sketchPitch = domain.Length(2540)

const (
	sketchMaxCols = 64
	sketchMaxRows = 24
)

// BoardSketch renders a character-cell top view of the document. Parts are
// drawn as the first rune of their component designator, the pointer as a
// plus sign, and cells holding more than one part as an asterisk. The pitch
// doubles until everything fits the canvas. Pass a nil pointer to leave the
// cursor out of the sketch.
func BoardSketch(doc *domain.Document, pointer *domain.Point) string {
	type marker struct {
		pos   domain.Point
		glyph rune
	}
	var markers []marker
	for _, part := range doc.Parts() {
		glyph := '?'
		if c, ok := doc.Component(part.Component); ok && c.Designator != "" {
			glyph = rune(c.Designator[0])
		}
		markers = append(markers, marker{pos: part.Position, glyph: glyph})
	}
	if len(markers) == 0 && pointer == nil {
		return "(empty board)\n"
	}

	bounds := func(pitch domain.Length) (minC, maxC, minR, maxR int) {
		first := true
		observe := func(p domain.Point) {
			c, r := cellFor(p, pitch)
			if first {
				minC, maxC, minR, maxR = c, c, r, r
				first = false
				return
			}
			minC, maxC = min(minC, c), max(maxC, c)
			minR, maxR = min(minR, r), max(maxR, r)
		}
		for _, m := range markers {
			observe(m.pos)
		}
		if pointer != nil {
			observe(*pointer)
		}
		return minC, maxC, minR, maxR
	}

	pitch := sketchPitch
	minC, maxC, minR, maxR := bounds(pitch)
	for maxC-minC+1 > sketchMaxCols || maxR-minR+1 > sketchMaxRows {
		pitch *= 2
		minC, maxC, minR, maxR = bounds(pitch)
	}
	width, height := maxC-minC+1, maxR-minR+1

	profile := termenv.ColorProfile()
	dot := termenv.String("·").Foreground(profile.Color("#52525b")).String()
	grid := make([][]string, height)
	occupied := make([][]bool, height)
	for r := range grid {
		grid[r] = make([]string, width)
		occupied[r] = make([]bool, width)
		for c := range grid[r] {
			grid[r][c] = dot
		}
	}

	// Row 0 is the top of the canvas; document Y grows upward.
	place := func(p domain.Point, glyph rune, color string) {
		c, r := cellFor(p, pitch)
		col, row := c-minC, maxR-r
		if occupied[row][col] {
			glyph = '*'
		}
		grid[row][col] = termenv.String(string(glyph)).Foreground(profile.Color(color)).String()
		occupied[row][col] = true
	}
	for _, m := range markers {
		place(m.pos, m.glyph, "#4ade80")
	}
	if pointer != nil {
		c, r := cellFor(*pointer, pitch)
		col, row := c-minC, maxR-r
		grid[row][col] = termenv.String("+").Foreground(profile.Color("#fbbf24")).String()
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", width) + "+\n"
	b.WriteString(border)
	for _, row := range grid {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(cell)
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	fmt.Fprintf(&b, "scale: 1 cell = %s mm\n", pitch)
	return b.String()
}

// cellFor maps a board position to grid coordinates, rounding half away
// from zero so markers land on the nearest pitch line.
func cellFor(p domain.Point, pitch domain.Length) (col, row int) {
	return roundDiv(int64(p.X), int64(pitch)), roundDiv(int64(p.Y), int64(pitch))
}

func roundDiv(v, d int64) int {
	if v >= 0 {
		return int((v + d/2) / d)
	}
	return -int((-v + d/2) / d)
}
