// Package version exposes the depscope build version.
package version

// Version is the current depscope version, overridable at build time via
// -ldflags "-X depscope/internal/version.Version=...".
var Version = "0.3.0"
