/*
Package breadboard is a transactional editing core for interactive design
tools: a command-pattern undo/redo engine paired with an event-driven
placement tool, built for electronics-style documents where components from
a catalog are placed, moved and rotated on a board.

It implements a "one transaction per user action" architecture, separating
reversible mutations (Commands) from interaction flow (the tool state
machine) and from presentation (choosers and notifiers supplied by the
host).

# Concept

Every user-visible action is one transaction on the undo stack: a group of
commands executed together, undone together. While a placement is pending,
pointer moves and rotations mutate a single open live edit command instead
of growing history, so undoing a placement is always exactly one step. This
Hexagonal Architecture keeps the core embeddable in any interface: CLI,
HTTP server, or MCP agent infrastructure.

# Key Features

  - Transactional history: begin/append/commit-or-abort with rollback on
    partial failure; redo replays commands from captured parameters.
  - Interactive placement: chooser-driven selection, chained placement,
    carry-forward rotation, abort-restart.
  - Hexagonal Architecture: catalogs (memory, directory, Redis-cached) and
    user interaction live behind ports.
  - Deterministic snapshots: a document renders to a canonical string, so
    undo round trips are verifiable bit for bit.

# Usage

Initialize an Editor with a catalog, then feed it tool events.

	package main

	import (
		"context"
		"log"

		"github.com/veldtlabs/breadboard"
		"github.com/veldtlabs/breadboard/pkg/adapters/memory"
		"github.com/veldtlabs/breadboard/pkg/tool"
	)

	func main() {
		cat := memory.NewCatalog(myDefinitions()...)
		ed, err := breadboard.New(cat, breadboard.WithDocumentName("demo"))
		if err != nil {
			log.Fatal(err)
		}
		defer ed.Close()

		ctx := context.Background()

		// Activate placement for a known definition and click it down.
		if err := ed.Handle(ctx, tool.StartPlacement{Definition: resistorID}); err != nil {
			log.Fatal(err)
		}
		_ = ed.Handle(ctx, tool.PointerMove{Pos: pos(10, 10)})
		_ = ed.Handle(ctx, tool.PrimaryClick{Pos: pos(10, 10)})

		// Every placed sub-part is exactly one undo step.
		_ = ed.Undo()
		_ = ed.Redo()
	}
*/
package breadboard
