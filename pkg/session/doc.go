/*
Package session implements the registry of live editor sessions.

Editors are single-threaded by contract; this package gives concurrent
surfaces (HTTP, MCP) serialized access to each editor through a per-session
mutex, preserving the single-goroutine ownership model without making the
core itself lock.
*/
package session
