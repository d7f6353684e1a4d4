//go:build windows

package config

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/term"
)

const forbiddenNameChars = `<>:"/\|?*;`

// isReservedName reports names starting with a device name, those cannot be
// used for files whatever extension follows.
func isReservedName(name string) bool {
	n, _, _ := strings.Cut(strings.ToUpper(name), ".")
	switch n {
	case "CON", "PRN", "AUX", "NUL":
		return true
	default:
		return len(n) == 4 && (strings.HasPrefix(n, "COM") || strings.HasPrefix(n, "LPT")) && '1' <= n[3] && n[3] <= '9'
	}
}

// EnableColorOutput checks if stream is a console and switches it to VT100
// sequence processing, which is only available on Windows 10 and later.
func EnableColorOutput(stream *os.File) bool {
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
