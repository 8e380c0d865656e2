package consolekit

import (
	"errors"
	"unicode"
)

// Common errors
var (
	// ErrOutOfRange is returned when a cursor, buffer or screen coordinate is outside its valid range.
	ErrOutOfRange = errors.New("position out of range")
	// ErrInterrupted is returned by terminal consoles when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
)

// Console abstracts the console operations the toolkit needs.
//
// The editor, the prompters, the menu and the screen buffer only talk to the
// console through this interface, so they work the same on a raw tty
// (Terminal), a full-screen tcell screen (TcellConsole) and in tests
// (ScriptedConsole).
//
// Column and row are zero based. Writing text advances the cursor, wrapping at
// the window width; writing past the last row scrolls the window so the
// cursor stays on the last row.
type Console interface {
	Write(text string, category OutputCategory) error // Write text tagged with an output category
	ReadKey() (KeyEvent, error)                       // Block until one key event is available
	CursorPosition() (col, row int)                   // Current cursor cell
	SetCursorPosition(col, row int) error             // Move the cursor; ErrOutOfRange outside the window
	WindowSize() (width, height int)                  // Window dimensions in cells
	CursorVisible() bool                              // Whether the cursor is shown
	SetCursorVisible(visible bool) error              // Show or hide the cursor
}

// Key identifies a physical key.
type Key int

// Key constants. KeyRune covers every key that produces a character; the
// character itself is carried in KeyEvent.Rune.
const (
	KeyUnknown Key = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyRune:      "Rune",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyEscape:    "Escape",
}

// String returns the name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ModMask is a set of modifier keys held during a key press.
type ModMask uint8

// Modifier flags
const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt

	ModNone ModMask = 0
)

// Has reports whether all modifiers in m are set.
func (mm ModMask) Has(m ModMask) bool {
	return mm&m == m
}

// NoChar is the Rune of a key event that produced no character.
const NoChar rune = 0

// KeyEvent is a single key press read from a console.
type KeyEvent struct {
	Key  Key     // Key identity
	Rune rune    // Character produced by the key, NoChar if none
	Mod  ModMask // Modifiers held during the press
}

// RuneEvent returns the key event for typing r without modifiers.
func RuneEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// SpecialEvent returns the key event for a named key without modifiers.
func SpecialEvent(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

// CtrlEvent returns the key event for Ctrl plus the letter r.
func CtrlEvent(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: unicode.ToLower(r), Mod: ModCtrl}
}

// KeyCode is the identity a key event is bound by in a KeyMapping.
type KeyCode struct {
	Key  Key
	Rune rune
}

// Code returns the mapping identity of the event. Rune keys are identified by
// their lower-case rune, so 'v', 'V' and Ctrl+V share one binding.
func (e KeyEvent) Code() KeyCode {
	if e.Key == KeyRune {
		return RuneCode(e.Rune)
	}
	return SpecialCode(e.Key)
}

// SpecialCode returns the mapping identity of a named key.
func SpecialCode(k Key) KeyCode {
	return KeyCode{Key: k}
}

// RuneCode returns the mapping identity of a character key.
func RuneCode(r rune) KeyCode {
	return KeyCode{Key: KeyRune, Rune: unicode.ToLower(r)}
}

// printable reports whether the event should be inserted as text.
func (e KeyEvent) printable() bool {
	if e.Rune == NoChar || e.Mod.Has(ModCtrl) || e.Mod.Has(ModAlt) {
		return false
	}
	return unicode.IsPrint(e.Rune)
}
