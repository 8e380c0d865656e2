package consolekit

import "github.com/atotto/clipboard"

// Clipboard reads text for the paste handler.
//
// Errors are never shown to the user; the paste handler treats them like an
// empty clipboard.
type Clipboard interface {
	ReadText() (string, error)
}

// ClipboardFunc adapts a function to a Clipboard.
type ClipboardFunc func() (string, error)

// ReadText calls f().
func (f ClipboardFunc) ReadText() (string, error) {
	return f()
}

type systemClipboard struct{}

// SystemClipboard returns the operating system clipboard.
// On Linux it needs xclip, xsel or wl-clipboard; without them reads fail.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", nil
	}
	return clipboard.ReadAll()
}
