package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/veldtlabs/breadboard/internal/presentation/graph"
	"github.com/veldtlabs/breadboard/internal/presentation/tui"
	"github.com/veldtlabs/breadboard/pkg/adapters/file"
)

// CatalogList prints the definitions installed under dir, one per line.
func CatalogList(dir string, out io.Writer) error {
	cat, err := file.New(dir)
	if err != nil {
		return err
	}
	defs, err := cat.List(context.Background())
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		fmt.Fprintln(out, "No definitions installed.")
		return nil
	}
	for _, def := range defs {
		version := ""
		if def.Version != "" {
			version = " v" + def.Version
		}
		footprint := ""
		if def.Footprint != nil {
			footprint = fmt.Sprintf("  footprint %s", def.Footprint.Name)
		}
		fmt.Fprintf(out, "- %s%s [%s] %s%s\n", def.Name, version, def.Prefix, def.ID, footprint)
	}
	return nil
}

// CatalogShow renders one definition, as a glamour card or as a Mermaid
// diagram when asMermaid is set.
func CatalogShow(dir, ref string, asMermaid bool, out io.Writer) error {
	cat, err := file.New(dir)
	if err != nil {
		return err
	}
	ctx := context.Background()
	id, err := resolveDefinition(ctx, cat, ref)
	if err != nil {
		return err
	}
	def, err := cat.Resolve(ctx, id)
	if err != nil {
		return err
	}

	if asMermaid {
		fmt.Fprint(out, graph.GenerateMermaid(def, nil))
		return nil
	}

	md := tui.DefinitionMarkdown(def)
	rendered, err := tui.NewRenderer()(md)
	if err != nil {
		fmt.Fprint(out, md)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// CatalogLint reports every problem in a catalog directory. It returns an
// error when the directory would not load.
func CatalogLint(dir string, out io.Writer) error {
	issues, err := file.Lint(dir)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintf(out, "Catalog '%s' is valid.\n", dir)
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintf(out, "%s: %v\n", issue.File, issue.Err)
	}
	return fmt.Errorf("%d problem(s) in '%s'", len(issues), dir)
}
