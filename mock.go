package consolekit

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNoMoreKeys is returned by ScriptedConsole.ReadKey after the scripted keys are used up.
var ErrNoMoreKeys = fmt.Errorf("no more scripted keys: %w", io.EOF)

// ScriptedConsole is an in-memory Console fed with a fixed key sequence.
//
// It keeps a character grid of the window, tracks the cursor exactly like a
// terminal (wrapping at the width, scrolling at the bottom) and records every
// write, so code built on ReadLine can be tested without a terminal:
//
//	con := consolekit.NewScriptedConsole(80, 24, consolekit.Keys("t\t\r")...)
//	ed := consolekit.NewEditor(con)
//	got, _ := ed.ReadLine([]string{"coffee", "tea", "water"}, "Drink? ")
//	// got == "tea", con.Line(0) == "Drink? tea"
type ScriptedConsole struct {
	keys    []KeyEvent
	keyPos  int
	width   int
	height  int
	col     int
	row     int
	visible bool
	grid    [][]rune
	writes  []ScriptedWrite
}

// ScriptedWrite is one recorded Write call.
type ScriptedWrite struct {
	Text     string
	Category OutputCategory
}

// NewScriptedConsole creates a width x height console that returns keys from ReadKey in order.
func NewScriptedConsole(width, height int, keys ...KeyEvent) *ScriptedConsole {
	if width <= 0 || height <= 0 {
		// Same fallback as a terminal whose size cannot be read
		width, height = 80, 24
	}
	c := &ScriptedConsole{
		keys:    keys,
		width:   width,
		height:  height,
		visible: true,
	}
	c.grid = make([][]rune, height)
	for i := range c.grid {
		c.grid[i] = blankRow(width)
	}
	return c
}

// Keys converts a string into key events the way a raw terminal would
// deliver them: '\r' and '\n' are Enter, '\t' is Tab, '\x7f' and '\b' are
// Backspace, other control characters are Ctrl+letter and everything else
// is a character key.
func Keys(s string) []KeyEvent {
	events := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n':
			events = append(events, SpecialEvent(KeyEnter))
		case r == '\t':
			events = append(events, SpecialEvent(KeyTab))
		case r == '\x7f' || r == '\b':
			events = append(events, SpecialEvent(KeyBackspace))
		case r >= 0x01 && r <= 0x1a:
			events = append(events, CtrlEvent('a'+r-1))
		case r == '\x1b':
			events = append(events, SpecialEvent(KeyEscape))
		case unicode.IsUpper(r):
			events = append(events, KeyEvent{Key: KeyRune, Rune: r, Mod: ModShift})
		default:
			events = append(events, RuneEvent(r))
		}
	}
	return events
}

// PushKeys appends keys to the script.
func (c *ScriptedConsole) PushKeys(keys ...KeyEvent) {
	c.keys = append(c.keys, keys...)
}

// Write implements Console.
func (c *ScriptedConsole) Write(text string, category OutputCategory) error {
	c.writes = append(c.writes, ScriptedWrite{Text: text, Category: category})
	for _, r := range text {
		c.putRune(r)
	}
	return nil
}

func (c *ScriptedConsole) putRune(r rune) {
	switch r {
	case '\n':
		c.newLine()
		return
	case '\r':
		c.col = 0
		return
	}
	w := cellWidth(r)
	if c.col+w > c.width {
		c.newLine()
	}
	c.grid[c.row][c.col] = r
	for i := 1; i < w; i++ {
		c.grid[c.row][c.col+i] = 0
	}
	c.col += w
	if c.col >= c.width {
		c.newLine()
	}
}

func (c *ScriptedConsole) newLine() {
	c.col = 0
	if c.row < c.height-1 {
		c.row++
		return
	}
	copy(c.grid, c.grid[1:])
	c.grid[c.height-1] = blankRow(c.width)
}

// ReadKey implements Console. It returns ErrNoMoreKeys once the script is exhausted.
func (c *ScriptedConsole) ReadKey() (KeyEvent, error) {
	if c.keyPos >= len(c.keys) {
		return KeyEvent{}, ErrNoMoreKeys
	}
	ev := c.keys[c.keyPos]
	c.keyPos++
	return ev, nil
}

// CursorPosition implements Console.
func (c *ScriptedConsole) CursorPosition() (col, row int) {
	return c.col, c.row
}

// SetCursorPosition implements Console.
func (c *ScriptedConsole) SetCursorPosition(col, row int) error {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return fmt.Errorf("cursor (%d,%d) outside %dx%d window: %w", col, row, c.width, c.height, ErrOutOfRange)
	}
	c.col, c.row = col, row
	return nil
}

// WindowSize implements Console.
func (c *ScriptedConsole) WindowSize() (width, height int) {
	return c.width, c.height
}

// CursorVisible implements Console.
func (c *ScriptedConsole) CursorVisible() bool {
	return c.visible
}

// SetCursorVisible implements Console.
func (c *ScriptedConsole) SetCursorVisible(visible bool) error {
	c.visible = visible
	return nil
}

// Line returns the visible text of a window row without trailing spaces.
func (c *ScriptedConsole) Line(row int) string {
	if row < 0 || row >= c.height {
		return ""
	}
	var sb strings.Builder
	for _, r := range c.grid[row] {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Writes returns the recorded Write calls.
func (c *ScriptedConsole) Writes() []ScriptedWrite {
	return append([]ScriptedWrite{}, c.writes...)
}

// Output returns the concatenated text of all writes.
func (c *ScriptedConsole) Output() string {
	var sb strings.Builder
	for _, w := range c.writes {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// Remaining returns the number of scripted keys not read yet.
func (c *ScriptedConsole) Remaining() int {
	return len(c.keys) - c.keyPos
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}
