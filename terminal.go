package consolekit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// Terminal is a Console on the process's controlling terminal.
//
// Input is read in raw mode through go-tty and decoded from VT escape
// sequences; output is written with ANSI control sequences (through
// go-colorable on Windows) and coloured with a Palette. The cursor position
// is queried once when the terminal is opened and tracked from then on.
//
// The terminal must be closed to restore the original terminal mode:
//
//	term, err := consolekit.OpenTerminal()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer term.Close()
type Terminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform key input
	input         io.RuneReader
	output        io.Writer   // Color-capable output writer (colorable on Windows, stdout elsewhere)
	palette       Palette     // Category colours
	stdinFd       int         // File descriptor for raw mode management
	originalState *term.State // Terminal state to restore on Close
	closed        bool        // Prevents double close, which panics on Windows

	col, row      int
	width, height int
	visible       bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithPalette sets the category colours. The default is DefaultPalette().
func WithPalette(p Palette) TerminalOption {
	return func(t *Terminal) {
		t.palette = p
	}
}

// WithOutput sets the writer output goes to. The default is stdout.
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.output = w
	}
}

// OpenTerminal opens the controlling terminal and switches it to raw mode.
func OpenTerminal(opts ...TerminalOption) (*Terminal, error) {
	tt, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open tty: %w", err)
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		// Use colorable for Windows ANSI color support
		output = colorable.NewColorableStdout()
	}

	t := &Terminal{
		tty:     tt,
		input:   ttyInput{tt},
		output:  output,
		palette: DefaultPalette(),
		stdinFd: int(os.Stdin.Fd()),
		visible: true,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.setRaw(); err != nil {
		return nil, multierror.Append(fmt.Errorf("failed to enter raw mode: %w", err), tt.Close()).ErrorOrNil()
	}
	t.refreshSize()
	t.col, t.row = 0, t.height-1
	if col, row, err := t.queryCursor(); err == nil {
		t.col, t.row = col, row
	}
	return t, nil
}

// ttyInput adapts go-tty to io.RuneReader and bufferedInput.
type ttyInput struct {
	tty *tty.TTY
}

func (in ttyInput) ReadRune() (rune, int, error) {
	r, err := in.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	// Return size as 1 for single rune (compatible with io.RuneReader)
	return r, 1, nil
}

func (in ttyInput) Buffered() bool {
	return in.tty.Buffered()
}

// bufferedInput is input that can tell whether more runes are already
// waiting. A terminal sends an escape sequence in one write, so ESC with
// nothing waiting after it is the Escape key itself.
type bufferedInput interface {
	Buffered() bool
}

func (t *Terminal) setRaw() error {
	if !term.IsTerminal(t.stdinFd) {
		return nil
	}
	state, err := term.MakeRaw(t.stdinFd)
	if err != nil {
		return err
	}
	t.originalState = state
	return nil
}

func (t *Terminal) restore() error {
	if t.originalState == nil {
		return nil
	}
	err := term.Restore(t.stdinFd, t.originalState)
	t.originalState = nil
	return err
}

func (t *Terminal) refreshSize() {
	if t.tty == nil {
		return
	}
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Ask stdout before giving up on the size
		w, h, err = term.GetSize(int(os.Stdout.Fd()))
		if err != nil || w <= 0 || h <= 0 {
			// Safe fallback to prevent divide by zero
			w, h = 80, 24
		}
	}
	t.width, t.height = w, h
	t.col = min(t.col, w-1)
	t.row = min(t.row, h-1)
}

// queryCursor asks the terminal for the cursor position (DSR 6).
func (t *Terminal) queryCursor() (col, row int, err error) {
	if _, err := fmt.Fprint(t.output, "\x1b[6n"); err != nil {
		return 0, 0, err
	}
	return readCursorReport(t.input)
}

// readCursorReport parses a cursor position report "ESC [ row ; col R".
func readCursorReport(in io.RuneReader) (col, row int, err error) {
	var sb strings.Builder
	for range 32 {
		r, _, err := in.ReadRune()
		if err != nil {
			return 0, 0, err
		}
		if r == 'R' {
			break
		}
		sb.WriteRune(r)
	}
	report, ok := strings.CutPrefix(sb.String(), "\x1b[")
	if !ok {
		return 0, 0, fmt.Errorf("unexpected cursor report %q", sb.String())
	}
	rowText, colText, ok := strings.Cut(report, ";")
	if !ok {
		return 0, 0, fmt.Errorf("unexpected cursor report %q", sb.String())
	}
	row, err = strconv.Atoi(rowText)
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected cursor report %q: %w", sb.String(), err)
	}
	col, err = strconv.Atoi(colText)
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected cursor report %q: %w", sb.String(), err)
	}
	return col - 1, row - 1, nil
}

// Write implements Console.
func (t *Terminal) Write(text string, category OutputCategory) error {
	if text == "" {
		return nil
	}
	col, row, _ := advanceText(t.col, t.row, t.width, t.height, text)

	// Raw mode does not translate line feeds.
	out := strings.ReplaceAll(text, "\n", "\r\n")
	if _, err := fmt.Fprint(t.output, t.palette.Sprint(category, out)); err != nil {
		return err
	}
	// Text ending exactly at the right margin leaves real terminals in a
	// pending-wrap state; complete the wrap so the tracked position holds.
	if col == 0 && !strings.HasSuffix(text, "\n") && !strings.HasSuffix(text, "\r") {
		if _, err := fmt.Fprint(t.output, "\r\n"); err != nil {
			return err
		}
	}
	t.col, t.row = col, row
	return nil
}

// ReadKey implements Console. Ctrl+C returns ErrInterrupted.
func (t *Terminal) ReadKey() (KeyEvent, error) {
	ev, err := decodeKey(t.input)
	if err != nil {
		return KeyEvent{}, err
	}
	if ev.Mod.Has(ModCtrl) && ev.Rune == 'c' {
		return KeyEvent{}, ErrInterrupted
	}
	return ev, nil
}

// CursorPosition implements Console.
func (t *Terminal) CursorPosition() (col, row int) {
	return t.col, t.row
}

// SetCursorPosition implements Console.
func (t *Terminal) SetCursorPosition(col, row int) error {
	if col < 0 || col >= t.width || row < 0 || row >= t.height {
		return fmt.Errorf("cursor (%d,%d) outside %dx%d window: %w", col, row, t.width, t.height, ErrOutOfRange)
	}
	if _, err := fmt.Fprintf(t.output, "\x1b[%d;%dH", row+1, col+1); err != nil {
		return err
	}
	t.col, t.row = col, row
	return nil
}

// WindowSize implements Console.
func (t *Terminal) WindowSize() (width, height int) {
	t.refreshSize()
	return t.width, t.height
}

// CursorVisible implements Console.
func (t *Terminal) CursorVisible() bool {
	return t.visible
}

// SetCursorVisible implements Console.
func (t *Terminal) SetCursorVisible(visible bool) error {
	seq := "\x1b[?25l"
	if visible {
		seq = "\x1b[?25h"
	}
	if _, err := fmt.Fprint(t.output, seq); err != nil {
		return err
	}
	t.visible = visible
	return nil
}

// Close shows the cursor, restores the terminal mode and closes the tty.
// It is safe to call Close more than once.
func (t *Terminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed {
		return nil
	}
	t.closed = true

	var result *multierror.Error
	if err := t.SetCursorVisible(true); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to show cursor: %w", err))
	}
	if err := t.restore(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to restore terminal: %w", err))
	}
	if t.tty != nil {
		if err := t.tty.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close tty: %w", err))
		}
	}
	return result.ErrorOrNil()
}

// decodeKey reads one key press from raw terminal input.
func decodeKey(in io.RuneReader) (KeyEvent, error) {
	r, _, err := in.ReadRune()
	if err != nil {
		return KeyEvent{}, err
	}

	switch {
	case r == '\r' || r == '\n':
		return SpecialEvent(KeyEnter), nil
	case r == '\t':
		return SpecialEvent(KeyTab), nil
	case r == '\x7f' || r == '\b':
		return SpecialEvent(KeyBackspace), nil
	case r == '\x1b':
		return decodeEscape(in)
	case r == 0:
		// Ctrl+Space / Ctrl+@
		return KeyEvent{Key: KeyRune, Rune: ' ', Mod: ModCtrl}, nil
	case r >= 0x01 && r <= 0x1a:
		return CtrlEvent('a' + r - 1), nil
	case r < 0x20:
		return SpecialEvent(KeyUnknown), nil
	}
	return RuneEvent(r), nil
}

// decodeEscape decodes the rest of an escape sequence after ESC.
// On input without buffering information a lone ESC is only recognised at
// the end of the input, otherwise ESC and the next key read as Alt+key.
func decodeEscape(in io.RuneReader) (KeyEvent, error) {
	if b, ok := in.(bufferedInput); ok && !b.Buffered() {
		return SpecialEvent(KeyEscape), nil
	}
	r, _, err := in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return SpecialEvent(KeyEscape), nil
		}
		return KeyEvent{}, err
	}

	switch r {
	case '\x1b':
		return SpecialEvent(KeyEscape), nil
	case 'O':
		// SS3 sequences sent in application cursor mode
		r, _, err = in.ReadRune()
		if err != nil {
			return KeyEvent{}, err
		}
		return csiFinal(r, ""), nil
	case '[':
	default:
		// Alt+key
		ev, _ := decodeKey(singleRune(r))
		ev.Mod |= ModAlt
		return ev, nil
	}

	// CSI: parameters then a final byte in '@'..'~'
	var params strings.Builder
	for range 16 { // Limit to prevent infinite loop
		r, _, err = in.ReadRune()
		if err != nil {
			return KeyEvent{}, err
		}
		if r >= '@' && r <= '~' {
			return csiFinal(r, params.String()), nil
		}
		params.WriteRune(r)
	}
	return SpecialEvent(KeyUnknown), nil
}

// csiFinal maps a CSI/SS3 final byte and its parameters to a key event.
func csiFinal(final rune, params string) KeyEvent {
	var mod ModMask
	// "1;2" style modifier parameter: 2 Shift, 3 Alt, 5 Ctrl and sums
	if _, m, ok := strings.Cut(params, ";"); ok {
		if n, err := strconv.Atoi(m); err == nil && n > 1 {
			bits := n - 1
			if bits&1 != 0 {
				mod |= ModShift
			}
			if bits&2 != 0 {
				mod |= ModAlt
			}
			if bits&4 != 0 {
				mod |= ModCtrl
			}
		}
	}

	key := KeyUnknown
	switch final {
	case 'A':
		key = KeyUp
	case 'B':
		key = KeyDown
	case 'C':
		key = KeyRight
	case 'D':
		key = KeyLeft
	case 'H':
		key = KeyHome
	case 'F':
		key = KeyEnd
	case 'Z':
		key = KeyTab
		mod |= ModShift
	case '~':
		code, _, _ := strings.Cut(params, ";")
		switch code {
		case "1", "7":
			key = KeyHome
		case "4", "8":
			key = KeyEnd
		case "3":
			key = KeyDelete
		}
	}
	return KeyEvent{Key: key, Mod: mod}
}

// singleRune is an io.RuneReader over one rune.
type singleRune rune

func (s singleRune) ReadRune() (rune, int, error) {
	return rune(s), 1, nil
}
