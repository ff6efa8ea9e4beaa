/*
Package ports defines the driven ports (interfaces) for the breadboard editor
core.

These interfaces decouple the editing core from external implementations,
allowing the editor to work with various catalog backends and user-interaction
surfaces.

# Key Interfaces

  - Catalog: resolves component definitions (memory, directory, Redis-cached).
  - Chooser: asks the user to pick a definition when placement starts without one.
  - Notifier: delivers user-facing messages without coupling the core to a UI.
*/
package ports
