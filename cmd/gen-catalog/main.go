// Command gen-catalog writes the sample catalog used by the examples and the
// quickstart docs. Regenerating is idempotent; every ID is fixed so diffs
// stay readable.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/veldtlabs/breadboard/pkg/adapters/file"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
)

// yamlDefinition mirrors the document schema the file adapter reads.
// Dimensioned values are decimal strings so the adapter parses them exactly.
type yamlDefinition struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Prefix      string        `yaml:"prefix"`
	Version     string        `yaml:"version,omitempty"`
	Variants    []yamlVariant `yaml:"variants"`
}

type yamlVariant struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name,omitempty"`
	Items []yamlItem `yaml:"items"`
}

type yamlItem struct {
	ID       string    `yaml:"id"`
	Symbol   string    `yaml:"symbol"`
	Suffix   string    `yaml:"suffix,omitempty"`
	Offset   yamlPoint `yaml:"offset"`
	Rotation string    `yaml:"rotation"`
}

type yamlPoint struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

func main() {
	targetDir := "examples/catalog"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample catalog in: %s\n", targetDir)

	writeDefinition(targetDir, "resistor", yamlDefinition{
		ID:          "8f9a1c2e-4b5d-4e6f-8a1b-2c3d4e5f6a7b",
		Name:        "Resistor",
		Description: "Generic axial resistor.",
		Prefix:      "R",
		Version:     "1.0.0",
		Variants: []yamlVariant{{
			ID: "1a2b3c4d-5e6f-4a1b-9c2d-3e4f5a6b7c8d",
			Items: []yamlItem{{
				ID:       "2b3c4d5e-6f7a-4b2c-8d3e-4f5a6b7c8d9e",
				Symbol:   "3c4d5e6f-7a8b-4c3d-9e4f-5a6b7c8d9e0f",
				Offset:   yamlPoint{X: "0.0", Y: "0.0"},
				Rotation: "0.0",
			}},
		}},
	})

	writeDefinition(targetDir, "capacitor", yamlDefinition{
		ID:          "b1c2d3e4-f5a6-4b7c-8d9e-0f1a2b3c4d5e",
		Name:        "Capacitor",
		Description: "Ceramic disc capacitor.",
		Prefix:      "C",
		Version:     "1.0.0",
		Variants: []yamlVariant{{
			ID: "c2d3e4f5-a6b7-4c8d-9e0f-1a2b3c4d5e6f",
			Items: []yamlItem{{
				ID:       "d3e4f5a6-b7c8-4d9e-8f1a-2b3c4d5e6f7a",
				Symbol:   "e4f5a6b7-c8d9-4e0f-9a2b-3c4d5e6f7a8b",
				Offset:   yamlPoint{X: "0.0", Y: "0.0"},
				Rotation: "0.0",
			}},
		}},
	})

	// The op-amp shows off multi-gate variants: the dual package places two
	// gates from one definition, each with its own suffix and offset.
	writeDefinition(targetDir, "opamp", yamlDefinition{
		ID:          "5d1e6a2f-3b4c-4d5e-9f6a-7b8c9d0e1f2a",
		Name:        "Op-Amp",
		Description: "General purpose operational amplifier.",
		Prefix:      "U",
		Version:     "2.1.0",
		Variants: []yamlVariant{
			{
				ID:   "6e2f7b3a-4c5d-4e6f-8a7b-9c0d1e2f3a4b",
				Name: "single",
				Items: []yamlItem{{
					ID:       "7f3a8c4b-5d6e-4f7a-9b8c-0d1e2f3a4b5c",
					Symbol:   "8a4b9d5c-6e7f-4a8b-8c9d-1e2f3a4b5c6d",
					Offset:   yamlPoint{X: "0.0", Y: "0.0"},
					Rotation: "0.0",
				}},
			},
			{
				ID:   "9b5c0e6d-7f8a-4b9c-9d0e-2f3a4b5c6d7e",
				Name: "dual",
				Items: []yamlItem{
					{
						ID:       "0c6d1f7e-8a9b-4c0d-8e1f-3a4b5c6d7e8f",
						Symbol:   "8a4b9d5c-6e7f-4a8b-8c9d-1e2f3a4b5c6d",
						Suffix:   "A",
						Offset:   yamlPoint{X: "0.0", Y: "0.0"},
						Rotation: "0.0",
					},
					{
						ID:       "1d7e2a8f-9b0c-4d1e-9f2a-4b5c6d7e8f9a",
						Symbol:   "8a4b9d5c-6e7f-4a8b-8c9d-1e2f3a4b5c6d",
						Suffix:   "B",
						Offset:   yamlPoint{X: "7.62", Y: "0.0"},
						Rotation: "0.0",
					},
				},
			},
		},
	})
	writeFootprint(targetDir, "opamp", dip8Footprint())

	writeDefinition(targetDir, "led", yamlDefinition{
		ID:          "2e8f3b9a-0c1d-4e2f-8a3b-5c6d7e8f9a0b",
		Name:        "LED",
		Description: "5mm indicator LED.",
		Prefix:      "D",
		Version:     "1.0.0",
		Variants: []yamlVariant{{
			ID: "3f9a4c0b-1d2e-4f3a-9b4c-6d7e8f9a0b1c",
			Items: []yamlItem{{
				ID:       "4a0b5d1c-2e3f-4a4b-8c5d-7e8f9a0b1c2d",
				Symbol:   "5b1c6e2d-3f4a-4b5c-9d6e-8f9a0b1c2d3e",
				Offset:   yamlPoint{X: "0.0", Y: "0.0"},
				Rotation: "0.0",
			}},
		}},
	})

	// Prove the generated directory actually loads before declaring success.
	if _, err := file.New(targetDir); err != nil {
		panic(err)
	}

	fmt.Println("Done. Catalog loads cleanly from", targetDir)
}

// dip8Footprint lays out a standard DIP-8: two rows of four through-hole
// pads, 2.54mm pitch, 7.62mm row spacing, pin 1 marked with a square pad.
func dip8Footprint() *catalog.Footprint {
	padIDs := []string{
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c01",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c02",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c03",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c04",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c05",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c06",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c07",
		"a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c08",
	}

	fp := &catalog.Footprint{
		ID:   uuid.MustParse("f0e1d2c3-b4a5-4f6e-8d7c-9b0a1f2e3d4c"),
		Name: "DIP-8",
	}
	for i, raw := range padIDs {
		// Pins 1-4 run down the left column, 5-8 back up the right.
		var pos domain.Point
		if i < 4 {
			pos = domain.Point{X: domain.Length(-3810), Y: domain.Length(3810 - int64(i)*2540)}
		} else {
			pos = domain.Point{X: domain.Length(3810), Y: domain.Length(-3810 + int64(i-4)*2540)}
		}
		shape := catalog.ShapeRound
		if i == 0 {
			shape = catalog.ShapeRect
		}
		fp.Pads = append(fp.Pads, catalog.Pad{
			UUID:     uuid.MustParse(raw),
			Side:     catalog.SideTHT,
			Shape:    shape,
			Position: pos,
			Size:     domain.Size{Width: domain.Length(1600), Height: domain.Length(1600)},
			Drill:    domain.Length(800),
		})
	}
	return fp
}

func writeDefinition(dir, name string, def yamlDefinition) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	check(enc.Encode(def))
	check(enc.Close())
	check(os.WriteFile(filepath.Join(dir, name+".yaml"), buf.Bytes(), 0644))
}

func writeFootprint(dir, name string, fp *catalog.Footprint) {
	check(fp.Validate())
	src := fp.Sexpr().String()
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	check(os.WriteFile(filepath.Join(dir, name+".footprint.sx"), []byte(src), 0644))
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
