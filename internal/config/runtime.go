package config

import "strings"

// Runtime identifies the shell the tool runs inside. It only changes
// messaging, never behavior.
type Runtime string

const (
	// RuntimeTerminal is a plain terminal session.
	RuntimeTerminal Runtime = "terminal"
	// RuntimeDesktop is the packaged desktop shell.
	RuntimeDesktop Runtime = "desktop"
)

// DetectRuntime inspects a capability string (a user agent) for the desktop
// shell marker.
func DetectRuntime(capability string) Runtime {
	if strings.Contains(strings.ToLower(capability), "electron") {
		return RuntimeDesktop
	}
	return RuntimeTerminal
}

// IsDesktop reports whether r is the desktop shell.
func (r Runtime) IsDesktop() bool {
	return r == RuntimeDesktop
}
