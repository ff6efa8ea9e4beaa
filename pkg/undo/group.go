package undo

import (
	"errors"
	"fmt"
)

// Group is an ordered sequence of Commands forming one user-visible action,
// e.g. "Add Component". It executes children in order and undoes them in
// strictly reverse order. Once committed to the stack a group is sealed and
// its composition can no longer change.
type Group struct {
	description string
	commands    []Command
	sealed      bool
}

// NewGroup creates an open group with the given description.
func NewGroup(description string) *Group {
	return &Group{description: description}
}

// Description returns the human label of the action.
func (g *Group) Description() string { return g.description }

// Len returns the number of appended commands.
func (g *Group) Len() int { return len(g.commands) }

// Empty reports whether no command was appended.
func (g *Group) Empty() bool { return len(g.commands) == 0 }

// Append adds a command to the group without executing it. Appending to a
// sealed group fails with ErrGroupSealed.
func (g *Group) Append(cmd Command) error {
	if g.sealed {
		return fmt.Errorf("failed to append to %q: %w", g.description, ErrGroupSealed)
	}
	if cmd == nil {
		return fmt.Errorf("failed to append to %q: nil command", g.description)
	}
	g.commands = append(g.commands, cmd)
	return nil
}

// Execute runs all children in order. If child i fails, children i-1 … 0 are
// undone before the error propagates, so a partially executed group is never
// left applied.
func (g *Group) Execute() error {
	for i, cmd := range g.commands {
		if err := cmd.Execute(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := g.commands[j].Undo(); uerr != nil {
					err = errors.Join(err, fmt.Errorf("rollback of %q also failed: %w",
						g.commands[j].Description(), uerr))
				}
			}
			return fmt.Errorf("failed to execute %q: %w", g.description, err)
		}
	}
	return nil
}

// Undo reverses all children in strictly reverse order. A child failure
// stops the unwind and propagates; per the Command contract that situation
// is a programming error.
func (g *Group) Undo() error {
	for i := len(g.commands) - 1; i >= 0; i-- {
		if err := g.commands[i].Undo(); err != nil {
			return fmt.Errorf("failed to undo %q: %w", g.description, err)
		}
	}
	return nil
}

// seal freezes the group's composition. Called by the stack on commit.
func (g *Group) seal() { g.sealed = true }
