package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// currentOS is a variable so tests can pin a platform
var currentOS = detectOS()

func detectOS() OSType {
	switch runtime.GOOS {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations.
// Default is always accepted; the OS-specific key is an alternative for
// terminals that swallow the default (XOFF on ctrl+s, SIGTSTP on ctrl+z).
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string
}

// Get returns the preferred shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch currentOS {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Matches reports whether a key string triggers the shortcut
func (s ShortcutKey) Matches(key string) bool {
	return key == s.Default || key == s.Get()
}

// Shortcuts holds the keys that have terminal conflicts on some platforms
var Shortcuts = struct {
	Save ShortcutKey
	Undo ShortcutKey
	Quit ShortcutKey
}{
	Save: ShortcutKey{
		Linux:   "alt+s", // Ctrl+S may be XOFF
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Undo: ShortcutKey{
		Linux:   "alt+z", // Ctrl+Z may suspend the process
		Windows: "alt+z",
		Default: "ctrl+z",
	},
	Quit: ShortcutKey{
		Default: "ctrl+c",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	shortcut := key.Get()
	if currentOS == OSLinux || currentOS == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")
	return shortcut
}
