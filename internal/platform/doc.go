// Package platform wraps the few operations that differ between operating
// systems. Today that is opening a directory in the desktop file browser,
// which is "open" on macOS, "xdg-open" on Linux and "cmd /c start" on Windows.
package platform
