package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/pkg/adapters/file"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

const resistorYAML = `id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be1
name: Resistor
description: Axial resistor
prefix: R
version: "1.0.0"
variants:
  - id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be2
    name: default
    items:
      - id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be3
        symbol: 5f430e3a-04b2-4a35-8f17-54a47a2a9be4
        suffix: A
        offset: { x: "0.0", y: "0.0" }
        rotation: "0.0"
`

const opampYAML = `id: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa1
name: Dual Op-Amp
description: Two amplifier stages in one package
prefix: U
version: "2.1.0"
variants:
  - id: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa2
    name: default
    items:
      - id: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa3
        symbol: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa4
        suffix: A
        offset: { x: "0.0", y: "0.0" }
        rotation: "0.0"
      - id: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa5
        symbol: 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa4
        suffix: B
        offset: { x: "7.62", y: "0.0" }
        rotation: "90.0"
`

const opampFootprintSX = `(footprint 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa6
 (name "DIP-8")
 (pad 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa7 (side tht) (shape round) (pos -3.81 0.0) (rot 0.0) (size 1.6 1.6) (drill 0.8))
 (pad 9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa8 (side tht) (shape rect) (pos 3.81 0.0) (rot 90.0) (size 1.6 1.6) (drill 0.8)))
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML)
	writeFile(t, dir, "opamp.yaml", opampYAML)
	writeFile(t, dir, "opamp.footprint.sx", opampFootprintSX)
	return dir
}

func TestFileCatalog_Contract(t *testing.T) {
	cat, err := file.New(sampleDir(t))
	require.NoError(t, err)

	seeded := []*catalog.Definition{
		{
			ID:       uuid.MustParse("5f430e3a-04b2-4a35-8f17-54a47a2a9be1"),
			Name:     "Resistor",
			Version:  "1.0.0",
			Variants: make([]catalog.Variant, 1),
		},
		{
			ID:       uuid.MustParse("9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa1"),
			Name:     "Dual Op-Amp",
			Version:  "2.1.0",
			Variants: make([]catalog.Variant, 1),
		},
	}
	ports.RunCatalogContract(t, cat, seeded)
}

func TestFileCatalog_DecodesGeometryAndFootprint(t *testing.T) {
	cat, err := file.New(sampleDir(t))
	require.NoError(t, err)

	ctx := context.Background()

	opamp, err := cat.Resolve(ctx, uuid.MustParse("9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa1"))
	require.NoError(t, err)
	require.Len(t, opamp.Variants, 1)
	require.Len(t, opamp.Variants[0].Items, 2)

	second := opamp.Variants[0].Items[1]
	assert.Equal(t, "B", second.Suffix)
	assert.Equal(t, domain.Length(7620), second.Offset.X)
	assert.Equal(t, domain.Degrees(90), second.Rotation)
	assert.Equal(t, uuid.MustParse("9d1f6a38-33c1-47f5-9e4e-b4f2f26f8aa4"), second.Symbol)

	require.NotNil(t, opamp.Footprint)
	assert.Equal(t, "DIP-8", opamp.Footprint.Name)
	require.Len(t, opamp.Footprint.Pads, 2)
	assert.Equal(t, catalog.SideTHT, opamp.Footprint.Pads[0].Side)
	assert.Equal(t, domain.Length(-3810), opamp.Footprint.Pads[0].Position.X)
	assert.Equal(t, catalog.ShapeRect, opamp.Footprint.Pads[1].Shape)

	resistor, err := cat.Resolve(ctx, uuid.MustParse("5f430e3a-04b2-4a35-8f17-54a47a2a9be1"))
	require.NoError(t, err)
	assert.Nil(t, resistor.Footprint)
}

func TestFileCatalog_MissingDirectory(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog directory")
}

func TestFileCatalog_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "{{{ not yaml")

	_, err := file.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFileCatalog_UnknownKeyRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML+"color: red\n")

	_, err := file.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
}

func TestFileCatalog_BareNumberRejected(t *testing.T) {
	dir := t.TempDir()
	bad := `id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be1
name: Resistor
prefix: R
variants:
  - id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be2
    name: default
    items:
      - id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be3
        symbol: 5f430e3a-04b2-4a35-8f17-54a47a2a9be4
        suffix: A
        rotation: 90.0
`
	writeFile(t, dir, "resistor.yaml", bad)

	_, err := file.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quoted")
}

func TestFileCatalog_InvalidDefinitionRejected(t *testing.T) {
	dir := t.TempDir()
	empty := `id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be1
name: Resistor
prefix: R
variants:
  - id: 5f430e3a-04b2-4a35-8f17-54a47a2a9be2
    name: default
    items: []
`
	writeFile(t, dir, "resistor.yaml", empty)

	_, err := file.New(dir)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "no items")
}

func TestFileCatalog_DuplicateIDRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML)
	writeFile(t, dir, "duplicate.yaml", resistorYAML)

	_, err := file.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share id")
}

func TestFileCatalog_BadFootprintRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "opamp.yaml", opampYAML)
	writeFile(t, dir, "opamp.footprint.sx", "(footprint not-a-uuid)")

	_, err := file.New(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opamp.yaml")

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFileCatalog_Reload(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML)

	cat, err := file.New(dir)
	require.NoError(t, err)

	defs, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)

	writeFile(t, dir, "opamp.yaml", opampYAML)
	require.NoError(t, cat.Reload())

	defs, err = cat.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}

func TestFileCatalog_FailedReloadKeepsContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML)

	cat, err := file.New(dir)
	require.NoError(t, err)

	writeFile(t, dir, "broken.yaml", "{{{ not yaml")
	require.Error(t, cat.Reload())

	defs, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestFileCatalog_Lint(t *testing.T) {
	dir := sampleDir(t)

	issues, err := file.Lint(dir)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestFileCatalog_LintCollectsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resistor.yaml", resistorYAML)
	writeFile(t, dir, "broken.yaml", "nope: [")
	writeFile(t, dir, "duplicate.yaml", resistorYAML)

	issues, err := file.Lint(dir)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	// Directory order is lexical, so duplicate.yaml claims the shared id
	// first and resistor.yaml is the one reported.
	files := []string{issues[0].File, issues[1].File}
	assert.Contains(t, files, "broken.yaml")
	assert.Contains(t, files, "resistor.yaml")
	for _, issue := range issues {
		assert.Error(t, issue.Err)
	}
}

func TestFileCatalog_LintMissingDirectory(t *testing.T) {
	_, err := file.Lint(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
