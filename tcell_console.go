package consolekit

import (
	"fmt"
	"io"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// TcellConsole is a Console drawing on a full-screen tcell screen.
//
// It suits applications that combine the line editor with the Screen
// painter, and it is what tests use to exercise real key decoding through
// tcell's simulation screen.
type TcellConsole struct {
	screen  tcell.Screen
	styles  map[OutputCategory]tcell.Style
	col     int
	row     int
	visible bool

	onResize func(width, height int)
}

// DefaultTcellStyles returns the tcell styles matching DefaultPalette.
func DefaultTcellStyles() map[OutputCategory]tcell.Style {
	base := tcell.StyleDefault
	return map[OutputCategory]tcell.Style{
		CategoryDefault:    base,
		CategoryPrompt:     base.Foreground(tcell.ColorGreen).Bold(true),
		CategoryInput:      base.Foreground(tcell.ColorWhite),
		CategorySuggestion: base.Foreground(tcell.ColorGray),
		CategoryTitle:      base.Foreground(tcell.ColorTeal).Bold(true),
		CategoryMenuItem:   base.Foreground(tcell.ColorSilver),
		CategoryError:      base.Foreground(tcell.ColorRed).Bold(true),
		CategoryBorder:     base.Foreground(tcell.ColorNavy),
		CategoryHighlight:  base.Foreground(tcell.ColorYellow).Bold(true),
	}
}

// NewTcellConsole initialises screen and wraps it as a Console.
// The caller owns the screen; Close finalises it.
func NewTcellConsole(screen tcell.Screen) (*TcellConsole, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	c := &TcellConsole{
		screen:  screen,
		styles:  DefaultTcellStyles(),
		visible: true,
	}
	screen.ShowCursor(0, 0)
	return c, nil
}

// Screen returns the underlying tcell screen.
func (c *TcellConsole) Screen() tcell.Screen {
	return c.screen
}

// Write implements Console.
func (c *TcellConsole) Write(text string, category OutputCategory) error {
	style, ok := c.styles[category]
	if !ok {
		style = tcell.StyleDefault
	}
	for _, r := range text {
		c.putRune(r, style)
	}
	c.syncCursor()
	c.screen.Show()
	return nil
}

func (c *TcellConsole) putRune(r rune, style tcell.Style) {
	width, _ := c.screen.Size()
	switch r {
	case '\n':
		c.newLine()
		return
	case '\r':
		c.col = 0
		return
	}
	w := cellWidth(r)
	if c.col+w > width {
		c.newLine()
	}
	c.screen.SetContent(c.col, c.row, r, nil, style)
	c.col += w
	if c.col >= width {
		c.newLine()
	}
}

func (c *TcellConsole) newLine() {
	_, height := c.screen.Size()
	c.col = 0
	if c.row < height-1 {
		c.row++
		return
	}
	c.scrollUp()
}

// scrollUp moves every row up by one and blanks the last row.
func (c *TcellConsole) scrollUp() {
	width, height := c.screen.Size()
	for y := 1; y < height; y++ {
		for x := 0; x < width; x++ {
			mainc, combc, style, _ := c.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			c.screen.SetContent(x, y-1, mainc, combc, style)
		}
	}
	for x := 0; x < width; x++ {
		c.screen.SetContent(x, height-1, ' ', nil, tcell.StyleDefault)
	}
}

func (c *TcellConsole) syncCursor() {
	if c.visible {
		c.screen.ShowCursor(c.col, c.row)
	} else {
		c.screen.HideCursor()
	}
}

// OnResize sets fn to be called from ReadKey each time the window changes
// size, before ReadKey waits for the next event. Full-screen output should be
// redrawn from fn since ReadKey does not return resize events.
func (c *TcellConsole) OnResize(fn func(width, height int)) {
	c.onResize = fn
}

// ReadKey implements Console. It returns io.EOF once the screen is finalised.
func (c *TcellConsole) ReadKey() (KeyEvent, error) {
	for {
		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return KeyEvent{}, io.EOF
		case *tcell.EventKey:
			return convertTcellKey(ev), nil
		case *tcell.EventResize:
			c.screen.Sync()
			width, height := c.screen.Size()
			c.col = min(c.col, width-1)
			c.row = min(c.row, height-1)
			if c.onResize != nil {
				c.onResize(width, height)
			}
		}
	}
}

// convertTcellKey converts a tcell key event to a KeyEvent.
func convertTcellKey(ev *tcell.EventKey) KeyEvent {
	mod := convertTcellMod(ev.Modifiers())
	k := ev.Key()

	// Several tcell key names share a value (KeyTab == KeyCtrlI), so compare
	// instead of using a case list.
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mod.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return KeyEvent{Key: KeyRune, Rune: r, Mod: mod}
	case k == tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter, Mod: mod}
	case k == tcell.KeyTab:
		return KeyEvent{Key: KeyTab, Mod: mod}
	case k == tcell.KeyBacktab:
		return KeyEvent{Key: KeyTab, Mod: mod | ModShift}
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace, Mod: mod}
	case k == tcell.KeyDelete:
		return KeyEvent{Key: KeyDelete, Mod: mod}
	case k == tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft, Mod: mod}
	case k == tcell.KeyRight:
		return KeyEvent{Key: KeyRight, Mod: mod}
	case k == tcell.KeyUp:
		return KeyEvent{Key: KeyUp, Mod: mod}
	case k == tcell.KeyDown:
		return KeyEvent{Key: KeyDown, Mod: mod}
	case k == tcell.KeyHome:
		return KeyEvent{Key: KeyHome, Mod: mod}
	case k == tcell.KeyEnd:
		return KeyEvent{Key: KeyEnd, Mod: mod}
	case k == tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape, Mod: mod}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return KeyEvent{Key: KeyRune, Rune: 'a' + rune(k-tcell.KeyCtrlA), Mod: mod | ModCtrl}
	}
	return KeyEvent{Key: KeyUnknown, Mod: mod}
}

func convertTcellMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	return mod
}

// CursorPosition implements Console.
func (c *TcellConsole) CursorPosition() (col, row int) {
	return c.col, c.row
}

// SetCursorPosition implements Console.
func (c *TcellConsole) SetCursorPosition(col, row int) error {
	width, height := c.screen.Size()
	if col < 0 || col >= width || row < 0 || row >= height {
		return fmt.Errorf("cursor (%d,%d) outside %dx%d window: %w", col, row, width, height, ErrOutOfRange)
	}
	c.col, c.row = col, row
	c.syncCursor()
	c.screen.Show()
	return nil
}

// WindowSize implements Console.
func (c *TcellConsole) WindowSize() (width, height int) {
	return c.screen.Size()
}

// CursorVisible implements Console.
func (c *TcellConsole) CursorVisible() bool {
	return c.visible
}

// SetCursorVisible implements Console.
func (c *TcellConsole) SetCursorVisible(visible bool) error {
	c.visible = visible
	c.syncCursor()
	c.screen.Show()
	return nil
}

// Close finalises the screen.
func (c *TcellConsole) Close() error {
	c.screen.Fini()
	return nil
}
