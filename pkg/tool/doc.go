// Package tool implements the interactive placement tool as an event-driven
// state machine over a document, an undo stack and a component catalog.
//
// The machine is single-threaded: events are processed strictly in arrival
// order on the editing goroutine, and every pointer preview mutates the one
// open live edit command instead of appending history entries. Exactly one
// history entry exists per placed sub-part.
package tool
