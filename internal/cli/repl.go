package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard"
	"github.com/veldtlabs/breadboard/internal/presentation/graph"
	"github.com/veldtlabs/breadboard/internal/presentation/tui"
	"github.com/veldtlabs/breadboard/pkg/catalog"
	"github.com/veldtlabs/breadboard/pkg/domain"
	"github.com/veldtlabs/breadboard/pkg/ports"
	"github.com/veldtlabs/breadboard/pkg/tool"
)

const replHelp = `Commands:
  place [name]     start placing a definition (chooser when omitted)
  move <x> <y>     move the pointer, millimeter coordinates
  click [x y]      commit the pending part at the pointer or given position
  rotate [ccw]     rotate the pending part 90 degrees
  abort            cancel the pending placement
  done             leave the placement tool
  undo, redo       move through history
  show             sketch the board
  doc              document summary
  history          undo history
  defs             list installed definitions
  card <name>      definition details
  graph <name>     Mermaid diagram of a definition
  reload           re-read the catalog directory
  help             this text
  quit             exit`

// repl drives the interactive command loop over one editor.
type repl struct {
	editor  *breadboard.Editor
	catalog ports.Catalog
	scanner *bufio.Scanner
	out     io.Writer
	render  func(string) (string, error)
	logger  *slog.Logger
}

func (r *repl) loop(ctx context.Context) error {
	for {
		fmt.Fprint(r.out, r.prompt())
		if !r.scanner.Scan() {
			return r.scanner.Err()
		}
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "q", "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(r.out, replHelp)
		case "place":
			r.cmdPlace(ctx, args)
		case "move":
			r.cmdMove(ctx, args)
		case "click":
			r.cmdClick(ctx, args)
		case "rotate":
			r.cmdRotate(ctx, args)
		case "abort":
			r.handle(ctx, tool.Abort{})
		case "done":
			r.handle(ctx, tool.Deactivate{})
		case "undo":
			r.cmdUndo()
		case "redo":
			r.cmdRedo()
		case "show":
			r.showBoard()
		case "doc":
			r.renderMarkdown(tui.DocumentMarkdown(r.editor.Document()))
		case "history":
			r.showHistory()
		case "defs":
			r.listDefinitions(ctx)
		case "card":
			r.showCard(ctx, args)
		case "graph":
			r.showGraph(ctx, args)
		case "reload":
			r.reloadCatalog()
		default:
			r.system("Unknown command '%s'. Type 'help'.", cmd)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// prompt shows the designator being placed so the user knows which
// component their clicks land on, and a leading star while the document
// has unsaved changes.
func (r *repl) prompt() string {
	star := ""
	if !r.editor.History().IsClean() {
		star = "*"
	}
	if d := r.editor.Tool().Designator(); d != "" {
		return fmt.Sprintf("%s[%s] > ", star, d)
	}
	return star + "> "
}

func (r *repl) system(format string, args ...any) {
	fmt.Fprintf(r.out, ">>> %s\n", fmt.Sprintf(format, args...))
}

// handle feeds one event to the editor and reports failures without
// stopping the loop.
func (r *repl) handle(ctx context.Context, ev tool.Event) {
	if err := r.editor.Handle(ctx, ev); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}

func (r *repl) cmdPlace(ctx context.Context, args []string) {
	if len(args) == 0 {
		r.handle(ctx, tool.StartPlacement{})
		return
	}
	id, err := r.resolveDefinition(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.handle(ctx, tool.StartPlacement{Definition: id})
}

func (r *repl) cmdMove(ctx context.Context, args []string) {
	pos, err := parsePoint(args)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.handle(ctx, tool.PointerMove{Pos: pos})
}

func (r *repl) cmdClick(ctx context.Context, args []string) {
	pos := r.editor.Tool().Pointer()
	if len(args) > 0 {
		var err error
		if pos, err = parsePoint(args); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return
		}
	}
	r.handle(ctx, tool.PrimaryClick{Pos: pos})
}

func (r *repl) cmdRotate(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "ccw" {
		r.handle(ctx, tool.RotateCCW{})
		return
	}
	r.handle(ctx, tool.RotateCW{})
}

func (r *repl) cmdUndo() {
	hist := r.editor.History()
	if hist.InTransaction() {
		r.system("Finish or abort the placement first.")
		return
	}
	if !hist.CanUndo() {
		r.system("Nothing to undo.")
		return
	}
	desc := hist.UndoDescription()
	if err := r.editor.Undo(); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.system("Undid '%s'.", desc)
}

func (r *repl) cmdRedo() {
	hist := r.editor.History()
	if hist.InTransaction() {
		r.system("Finish or abort the placement first.")
		return
	}
	if !hist.CanRedo() {
		r.system("Nothing to redo.")
		return
	}
	desc := hist.RedoDescription()
	if err := r.editor.Redo(); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.system("Redid '%s'.", desc)
}

func (r *repl) showBoard() {
	machine := r.editor.Tool()
	var pointer *domain.Point
	if machine.State() != tool.StateIdle {
		p := machine.Pointer()
		pointer = &p
	}
	fmt.Fprint(r.out, tui.BoardSketch(r.editor.Document(), pointer))
	fmt.Fprintf(r.out, "tool: %s  pointer: %s  components: %d  parts: %d\n",
		machine.State(), machine.Pointer(),
		r.editor.Document().ComponentCount(), r.editor.Document().PartCount())
}

func (r *repl) showHistory() {
	hist := r.editor.History()
	r.renderMarkdown(tui.HistoryMarkdown(hist.Descriptions(), hist.Cursor(), hist.IsClean()))
}

func (r *repl) listDefinitions(ctx context.Context) {
	defs, err := r.catalog.List(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(defs) == 0 {
		r.system("No definitions installed.")
		return
	}
	for _, def := range defs {
		version := ""
		if def.Version != "" {
			version = " v" + def.Version
		}
		fmt.Fprintf(r.out, "- %s%s [%s] %s\n", def.Name, version, def.Prefix, def.ID)
	}
}

func (r *repl) showCard(ctx context.Context, args []string) {
	def, ok := r.lookupDefinition(ctx, args)
	if !ok {
		return
	}
	r.renderMarkdown(tui.DefinitionMarkdown(def))
}

func (r *repl) showGraph(ctx context.Context, args []string) {
	def, ok := r.lookupDefinition(ctx, args)
	if !ok {
		return
	}
	fmt.Fprint(r.out, graph.GenerateMermaid(def, nil))
}

func (r *repl) reloadCatalog() {
	type reloader interface{ Reload() error }
	rl, ok := r.catalog.(reloader)
	if !ok {
		r.system("Reload not supported with the cache enabled.")
		return
	}
	if err := rl.Reload(); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	r.system("Catalog reloaded.")
}

func (r *repl) lookupDefinition(ctx context.Context, args []string) (*catalog.Definition, bool) {
	if len(args) == 0 {
		r.system("Which definition? Try 'defs' for the list.")
		return nil, false
	}
	id, err := r.resolveDefinition(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return nil, false
	}
	def, err := r.catalog.Resolve(ctx, id)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return nil, false
	}
	return def, true
}

func (r *repl) resolveDefinition(ctx context.Context, ref string) (uuid.UUID, error) {
	return resolveDefinition(ctx, r.catalog, ref)
}

// resolveDefinition accepts a definition UUID or a name. Names match case
// insensitively, first exact, then as a unique prefix.
func resolveDefinition(ctx context.Context, cat ports.Catalog, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	defs, err := cat.List(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	lowered := strings.ToLower(ref)
	var prefixMatches []*catalog.Definition
	for _, def := range defs {
		name := strings.ToLower(def.Name)
		if name == lowered {
			return def.ID, nil
		}
		if strings.HasPrefix(name, lowered) {
			prefixMatches = append(prefixMatches, def)
		}
	}
	switch len(prefixMatches) {
	case 1:
		return prefixMatches[0].ID, nil
	case 0:
		return uuid.Nil, fmt.Errorf("no definition named '%s'", ref)
	default:
		names := make([]string, len(prefixMatches))
		for i, def := range prefixMatches {
			names[i] = def.Name
		}
		return uuid.Nil, fmt.Errorf("'%s' is ambiguous: %s", ref, strings.Join(names, ", "))
	}
}

func (r *repl) renderMarkdown(md string) {
	rendered, err := r.render(md)
	if err != nil {
		// Glamour failures degrade to the raw markdown.
		fmt.Fprint(r.out, md)
		return
	}
	fmt.Fprint(r.out, rendered)
}

func parsePoint(args []string) (domain.Point, error) {
	if len(args) != 2 {
		return domain.Point{}, fmt.Errorf("expected two coordinates, got %d", len(args))
	}
	x, err := domain.ParseMillimeters(args[0])
	if err != nil {
		return domain.Point{}, err
	}
	y, err := domain.ParseMillimeters(args[1])
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}
