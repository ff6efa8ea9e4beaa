// Package file implements ports.Catalog over a directory of definition
// documents.
//
// Layout: every <name>.yaml in the directory is one definition document; an
// optional <name>.footprint.sx sidecar holds its footprint as an
// S-expression. The whole directory is loaded and validated eagerly so a
// broken catalog fails at startup, not mid-placement.
package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/veldtlabs/breadboard/internal/logging"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
)

const footprintSuffix = ".footprint.sx"

// Catalog implements ports.Catalog over a directory tree. Safe for
// concurrent use after New returns; Reload swaps the content atomically.
type Catalog struct {
	dir    string
	logger *slog.Logger

	mu   sync.RWMutex
	defs map[uuid.UUID]*catalog.Definition
}

var _ ports.Catalog = (*Catalog)(nil)

// Option configures the Catalog.
type Option func(*Catalog)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New loads every definition document under dir and validates it.
func New(dir string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		dir:    dir,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-scans the directory. On error the previous content stays.
func (c *Catalog) Reload() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	defs := make(map[uuid.UUID]*catalog.Definition)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		def, err := c.loadDefinition(filepath.Join(c.dir, name))
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		if prev, ok := defs[def.ID]; ok {
			return domain.NewValidationError("catalog", "%s and %s share id %s", prev.Name, def.Name, def.ID)
		}
		defs[def.ID] = def
	}

	c.mu.Lock()
	c.defs = defs
	c.mu.Unlock()

	c.logger.Info("catalog loaded", "dir", c.dir, "definitions", len(defs))
	return nil
}

// Issue is one problem Lint found in a catalog directory.
type Issue struct {
	File string
	Err  error
}

// Lint loads every definition document under dir and collects the problems
// instead of stopping at the first one. Duplicate IDs are reported against
// the later file. An empty result means New would accept the directory.
func Lint(dir string) ([]Issue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	scratch := &Catalog{dir: dir, logger: logging.NewNop()}
	seen := make(map[uuid.UUID]string)
	var issues []Issue
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		def, err := scratch.loadDefinition(filepath.Join(dir, name))
		if err != nil {
			issues = append(issues, Issue{File: name, Err: err})
			continue
		}
		if prev, ok := seen[def.ID]; ok {
			issues = append(issues, Issue{
				File: name,
				Err:  domain.NewValidationError("catalog", "shares id %s with %s", def.ID, prev),
			})
			continue
		}
		seen[def.ID] = name
	}
	return issues, nil
}

// Resolve retrieves a definition by ID.
func (c *Catalog) Resolve(ctx context.Context, id uuid.UUID) (*catalog.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("definition %s: %w", id, domain.ErrDefinitionNotFound)
	}
	return def, nil
}

// List returns all definitions sorted by name then ID.
func (c *Catalog) List(ctx context.Context) ([]*catalog.Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*catalog.Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// fileDefinition mirrors the YAML document. It uses "mapstructure" tags so
// the YAML map decodes through the shared hook set.
type fileDefinition struct {
	ID          uuid.UUID     `mapstructure:"id"`
	Name        string        `mapstructure:"name"`
	Description string        `mapstructure:"description"`
	Prefix      string        `mapstructure:"prefix"`
	Version     string        `mapstructure:"version"`
	Variants    []fileVariant `mapstructure:"variants"`
}

type fileVariant struct {
	ID    uuid.UUID  `mapstructure:"id"`
	Name  string     `mapstructure:"name"`
	Items []fileItem `mapstructure:"items"`
}

type fileItem struct {
	ID       uuid.UUID    `mapstructure:"id"`
	Symbol   uuid.UUID    `mapstructure:"symbol"`
	Suffix   string       `mapstructure:"suffix"`
	Offset   filePoint    `mapstructure:"offset"`
	Rotation domain.Angle `mapstructure:"rotation"`
}

type filePoint struct {
	X domain.Length `mapstructure:"x"`
	Y domain.Length `mapstructure:"y"`
}

func (c *Catalog) loadDefinition(path string) (*catalog.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, domain.NewValidationError("definition document", "%v", err)
	}

	var fd fileDefinition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  decodeHook,
		Result:      &fd,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, domain.NewValidationError("definition document", "%v", err)
	}

	def := &catalog.Definition{
		ID:          fd.ID,
		Name:        fd.Name,
		Description: fd.Description,
		Prefix:      fd.Prefix,
		Version:     fd.Version,
	}
	for _, fv := range fd.Variants {
		variant := catalog.Variant{ID: fv.ID, Name: fv.Name}
		for _, fi := range fv.Items {
			variant.Items = append(variant.Items, catalog.Item{
				ID:       fi.ID,
				Symbol:   fi.Symbol,
				Suffix:   fi.Suffix,
				Offset:   domain.Point{X: fi.Offset.X, Y: fi.Offset.Y},
				Rotation: fi.Rotation,
			})
		}
		def.Variants = append(def.Variants, variant)
	}

	fp, err := c.loadFootprint(strings.TrimSuffix(path, ".yaml") + footprintSuffix)
	if err != nil {
		return nil, err
	}
	def.Footprint = fp

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (c *Catalog) loadFootprint(path string) (*catalog.Footprint, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return catalog.ParseFootprint(string(raw))
}

var (
	uuidType   = reflect.TypeOf(uuid.UUID{})
	lengthType = reflect.TypeOf(domain.Length(0))
	angleType  = reflect.TypeOf(domain.Angle(0))
)

// decodeHook converts the string leaves of a YAML document into the typed
// values the catalog model uses: uuids, exact millimeters and degrees.
// Dimensioned values must be quoted strings; a bare YAML number would decode
// as a raw micrometer or microdegree count, so it is rejected instead.
func decodeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		if to == lengthType || to == angleType {
			return nil, domain.NewValidationError("definition document", "dimensioned value %v must be a quoted decimal string", data)
		}
		return data, nil
	}
	s := data.(string)

	switch to {
	case uuidType:
		return uuid.Parse(s)
	case lengthType:
		return domain.ParseMillimeters(s)
	case angleType:
		return domain.ParseDegrees(s)
	}
	return data, nil
}
