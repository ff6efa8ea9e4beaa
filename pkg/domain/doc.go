/*
Package domain contains the core domain models for the breadboard editor.

It defines the fundamental entities of an edited design, such as the Document,
the component and part instances placed in it, and the fixed-point geometry
they are positioned with. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Document: The design being edited; owns all placed instances.
  - ComponentInstance: A logical component added to the document ("R1").
  - PartInstance: One placed visual part of a component, with position and rotation.
  - Length / Point / Angle: Integer fixed-point geometry (micrometers, microdegrees).
  - Hooks: Optional lifecycle callbacks for observability.
*/
package domain
