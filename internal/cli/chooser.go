package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/veldtlabs/breadboard/pkg/ports"
)

// terminalChooser lists the installed definitions and reads a numbered pick
// from the shared input scanner. Sharing the scanner with the command loop
// avoids a second stdin reader fighting over input.
type terminalChooser struct {
	scanner *bufio.Scanner
	out     io.Writer
	catalog ports.Catalog
}

func (c *terminalChooser) Choose(ctx context.Context) (ports.Choice, bool, error) {
	defs, err := c.catalog.List(ctx)
	if err != nil {
		return ports.Choice{}, false, fmt.Errorf("list definitions: %w", err)
	}
	if len(defs) == 0 {
		fmt.Fprintln(c.out, ">>> No definitions installed.")
		return ports.Choice{}, false, nil
	}

	fmt.Fprintln(c.out, "Pick a definition (empty to cancel):")
	for i, def := range defs {
		version := ""
		if def.Version != "" {
			version = " v" + def.Version
		}
		fmt.Fprintf(c.out, "  %2d. %s%s [%s]\n", i+1, def.Name, version, def.Prefix)
	}
	fmt.Fprint(c.out, "? ")

	if !c.scanner.Scan() {
		// EOF or interrupt counts as cancellation, scanner errors do not.
		if err := c.scanner.Err(); err != nil && !isInterrupted(err) {
			return ports.Choice{}, false, err
		}
		return ports.Choice{}, false, nil
	}
	line := strings.TrimSpace(c.scanner.Text())
	if line == "" {
		return ports.Choice{}, false, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(defs) {
		fmt.Fprintf(c.out, ">>> '%s' is not a listed number.\n", line)
		return ports.Choice{}, false, nil
	}

	picked := defs[n-1]
	return ports.Choice{
		Definition: picked.ID,
		Version:    picked.Version,
	}, true, nil
}

// terminalNotifier prints editor notifications as system messages.
type terminalNotifier struct {
	out io.Writer
}

func (n *terminalNotifier) Notify(note ports.Notification) {
	switch note.Severity {
	case ports.SeverityInfo:
		fmt.Fprintf(n.out, ">>> %s\n", note.Message)
	default:
		fmt.Fprintf(n.out, ">>> [%s] %s\n", note.Severity, note.Message)
	}
}
