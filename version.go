package breadboard

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/veldtlabs/breadboard.Version=...".
var Version = "0.3.0"
