/*
Package undo implements the transactional command history of the editor.

Every mutation of the document is a Command: an atomic, reversible unit that
captures its forward parameters up front so re-executing it after an undo
replays the identical change. Commands are grouped into a Group, one per
user-visible action, and Groups are committed to the Stack, which owns the
linear history and the undo/redo cursor.

Interactive editing runs through the Stack's transaction protocol:

	stack.Begin("Add Component")
	stack.Append(cmd1) // executes immediately
	stack.Append(cmd2)
	stack.Commit()     // or stack.Abort() to roll everything back

Exactly one transaction may be open at a time. Abort is safe on every error
path: it rolls back appended commands in reverse order, reports rollback
failures without propagating them, and always leaves the stack consistent.
*/
package undo
