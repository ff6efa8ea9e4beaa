package tool

import (
	"github.com/google/uuid"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// Event is the closed set of inputs the machine processes. Only the variants
// in this file implement it, so Handle can switch exhaustively and a new
// event kind fails loudly everywhere instead of being silently dropped.
type Event interface {
	isEvent()
}

// StartPlacement activates the placement tool. A zero Definition asks the
// chooser; a zero Variant selects the definition's default variant. Sent
// while a placement is pending, it rolls that placement back and reselects.
type StartPlacement struct {
	Definition uuid.UUID
	Variant    uuid.UUID
}

// PointerMove reports the grid-snapped pointer position.
type PointerMove struct {
	Pos domain.Point
}

// PrimaryClick finalizes the pending instance at the given position.
type PrimaryClick struct {
	Pos domain.Point
}

// SecondaryClick rotates the pending instance 90° clockwise, like RotateCW.
type SecondaryClick struct{}

// RotateCW rotates the pending instance 90° clockwise.
type RotateCW struct{}

// RotateCCW rotates the pending instance 90° counterclockwise.
type RotateCCW struct{}

// Abort cancels the pending placement and restarts it for the same
// definition; with no definition resolved it leaves the tool.
type Abort struct{}

// Deactivate leaves the tool unconditionally, rolling back pending work.
// Safe to send in any state, including Idle.
type Deactivate struct{}

func (StartPlacement) isEvent() {}
func (PointerMove) isEvent()    {}
func (PrimaryClick) isEvent()   {}
func (SecondaryClick) isEvent() {}
func (RotateCW) isEvent()       {}
func (RotateCCW) isEvent()      {}
func (Abort) isEvent()          {}
func (Deactivate) isEvent()     {}
