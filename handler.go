package consolekit

import (
	"strings"
	"unicode"
)

// KeyPressHandler reacts to one key press by changing the editor through its
// exported methods.
//
// Handlers are stateless and may be shared between editors and bindings; all
// state lives in the Editor passed to Handle. An error returned by Handle ends
// the current ReadLine call with that error.
type KeyPressHandler interface {
	Handle(ev KeyEvent, ed *Editor) error
}

// KeyPressHandlerFunc adapts an ordinary function to a KeyPressHandler.
type KeyPressHandlerFunc func(ev KeyEvent, ed *Editor) error

// Handle calls f(ev, ed).
func (f KeyPressHandlerFunc) Handle(ev KeyEvent, ed *Editor) error {
	return f(ev, ed)
}

// ArrowHandler moves the cursor one character left or right.
// It does nothing at the ends of the buffer.
type ArrowHandler struct{}

// Handle implements KeyPressHandler.
func (ArrowHandler) Handle(ev KeyEvent, ed *Editor) error {
	switch ev.Key {
	case KeyLeft:
		if ed.Cursor() > 0 {
			return ed.MoveLeft()
		}
	case KeyRight:
		if ed.Cursor() < ed.Len() {
			return ed.MoveRight()
		}
	}
	return nil
}

// BackspaceHandler deletes the character before the cursor.
type BackspaceHandler struct{}

// Handle implements KeyPressHandler.
func (BackspaceHandler) Handle(_ KeyEvent, ed *Editor) error {
	if ed.Cursor() == 0 {
		return nil
	}
	if err := ed.MoveLeft(); err != nil {
		return err
	}
	return ed.RemoveAtCursor()
}

// DeleteHandler deletes the character under the cursor.
type DeleteHandler struct{}

// Handle implements KeyPressHandler.
func (DeleteHandler) Handle(_ KeyEvent, ed *Editor) error {
	if ed.Cursor() >= ed.Len() {
		return nil
	}
	return ed.RemoveAtCursor()
}

// HomeEndHandler moves the cursor to the start (Home) or end (End) of the buffer.
type HomeEndHandler struct{}

// Handle implements KeyPressHandler.
func (HomeEndHandler) Handle(ev KeyEvent, ed *Editor) error {
	switch ev.Key {
	case KeyHome:
		return ed.MoveHome()
	case KeyEnd:
		return ed.MoveEnd()
	}
	return nil
}

// TabHandler completes and cycles through suggestions.
//
// The first Tab selects the suggestion the editor's matcher finds for the
// current text. Further presses step to the next suggestion, or the previous
// one with Shift held, wrapping around the whole list. The selected
// suggestion replaces the buffer and the cursor moves to its end. When
// nothing is selected the buffer is left alone.
type TabHandler struct{}

// Handle implements KeyPressHandler.
func (TabHandler) Handle(ev KeyEvent, ed *Editor) error {
	switch {
	case !ed.HasSelection():
		ed.SelectFirstMatch()
	case ev.Mod.Has(ModShift):
		ed.SelectPrevious()
	default:
		ed.SelectNext()
	}

	if s, ok := ed.CurrentSuggestion(); ok {
		return ed.ReplaceText(s)
	}
	return nil
}

// LiteralHandler inserts the character of the key at the cursor.
// Keys without a printable character, or pressed with Ctrl or Alt, are ignored.
type LiteralHandler struct{}

// Handle implements KeyPressHandler.
func (LiteralHandler) Handle(ev KeyEvent, ed *Editor) error {
	if !ev.printable() {
		return nil
	}
	return ed.Insert(ev.Rune)
}

// PasteHandler inserts the clipboard text at the cursor on Ctrl+V. Without
// Ctrl the key is typed as a normal character.
//
// Line breaks and other control characters in the clipboard text are
// dropped; tabs become spaces. An empty or unreadable clipboard does nothing.
type PasteHandler struct {
	Clipboard Clipboard
}

// NewPasteHandler creates a paste handler reading from clip.
func NewPasteHandler(clip Clipboard) *PasteHandler {
	return &PasteHandler{Clipboard: clip}
}

// Handle implements KeyPressHandler.
func (h *PasteHandler) Handle(ev KeyEvent, ed *Editor) error {
	if !ev.Mod.Has(ModCtrl) {
		return LiteralHandler{}.Handle(ev, ed)
	}
	if h.Clipboard == nil {
		return nil
	}
	text, err := h.Clipboard.ReadText()
	if err != nil {
		return nil
	}
	text = sanitizePaste(text)
	if text == "" {
		return nil
	}
	return ed.InsertString(text)
}

// sanitizePaste keeps only the characters that can be edited on one line.
func sanitizePaste(text string) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r == '\t':
			sb.WriteRune(' ')
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
