package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogList(t *testing.T) {
	dir := seedCatalogDir(t)

	var out bytes.Buffer
	require.NoError(t, CatalogList(dir, &out))

	assert.Contains(t, out.String(), "- Resistor [R] 5f430e3a-52dc-4bcb-8bf9-119e43bc0be1")
}

func TestCatalogListEmptyDirectory(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, CatalogList(t.TempDir(), &out))

	assert.Contains(t, out.String(), "No definitions installed.")
}

func TestCatalogShowMermaid(t *testing.T) {
	dir := seedCatalogDir(t)

	var out bytes.Buffer
	require.NoError(t, CatalogShow(dir, "resistor", true, &out))

	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "Resistor")
}

func TestCatalogShowByPrefix(t *testing.T) {
	dir := seedCatalogDir(t)

	var out bytes.Buffer
	require.NoError(t, CatalogShow(dir, "resi", true, &out))

	assert.Contains(t, out.String(), "Resistor")
}

func TestCatalogShowUnknownDefinition(t *testing.T) {
	dir := seedCatalogDir(t)

	var out bytes.Buffer
	err := CatalogShow(dir, "capacitor", false, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no definition named 'capacitor'")
}

func TestCatalogLintValidDirectory(t *testing.T) {
	dir := seedCatalogDir(t)

	var out bytes.Buffer
	require.NoError(t, CatalogLint(dir, &out))

	assert.Contains(t, out.String(), "is valid")
}

func TestCatalogLintReportsProblems(t *testing.T) {
	dir := seedCatalogDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("nope: ["), 0o644))

	var out bytes.Buffer
	err := CatalogLint(dir, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s)")
	assert.Contains(t, out.String(), "broken.yaml")
}
