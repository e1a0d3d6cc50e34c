//go:build !systray

package tray

// New returns the no-op tray when the binary is built without systray
// support.
func New(title string, quit func()) App { return NewNoop() }
