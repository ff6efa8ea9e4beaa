// Package edit provides the concrete undo.Command implementations that
// mutate a domain.Document: adding and removing instances, and the live
// PartEdit command used for interactive move and rotate previews.
//
// Every command captures its forward parameters at construction, including
// generated instance IDs, so re-executing after an undo replays the
// identical change.
package edit
