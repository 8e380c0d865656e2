package consolekit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, text string, cursor int, suggestions []string) (*Editor, *ScriptedConsole) {
	t.Helper()

	con := NewScriptedConsole(40, 10)
	ed := NewEditor(con)
	ed.reset(suggestions)
	require.NoError(t, ed.InsertString(text))
	for ed.Cursor() > cursor {
		require.NoError(t, ed.MoveLeft())
	}
	return ed, con
}

func TestArrowHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    Key
		cursor int
		want   int
	}{
		{"left", KeyLeft, 2, 1},
		{"left at start", KeyLeft, 0, 0},
		{"right", KeyRight, 1, 2},
		{"right at end", KeyRight, 3, 3},
		{"other key", KeyUp, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed, con := newTestEditor(t, "abc", tt.cursor, nil)
			require.NoError(t, ArrowHandler{}.Handle(SpecialEvent(tt.key), ed))
			assert.Equal(t, tt.want, ed.Cursor())

			col, _ := con.CursorPosition()
			assert.Equal(t, tt.want, col, "console cursor follows the logical cursor")
		})
	}
}

func TestBackspaceAndDeleteHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    KeyPressHandler
		cursor     int
		wantText   string
		wantCursor int
	}{
		{"backspace in the middle", BackspaceHandler{}, 2, "ac", 1},
		{"backspace at the end", BackspaceHandler{}, 3, "ab", 2},
		{"backspace at the start", BackspaceHandler{}, 0, "abc", 0},
		{"delete in the middle", DeleteHandler{}, 1, "ac", 1},
		{"delete at the start", DeleteHandler{}, 0, "bc", 0},
		{"delete at the end", DeleteHandler{}, 3, "abc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed, con := newTestEditor(t, "abc", tt.cursor, nil)
			require.NoError(t, tt.handler.Handle(KeyEvent{}, ed))
			assert.Equal(t, tt.wantText, ed.Text())
			assert.Equal(t, tt.wantCursor, ed.Cursor())
			assert.Equal(t, tt.wantText, con.Line(0))
		})
	}
}

func TestHomeEndHandler(t *testing.T) {
	t.Parallel()

	ed, con := newTestEditor(t, "hello", 2, nil)

	require.NoError(t, HomeEndHandler{}.Handle(SpecialEvent(KeyHome), ed))
	assert.Equal(t, 0, ed.Cursor())
	col, _ := con.CursorPosition()
	assert.Equal(t, 0, col)

	require.NoError(t, HomeEndHandler{}.Handle(SpecialEvent(KeyEnd), ed))
	assert.Equal(t, 5, ed.Cursor())
	col, _ = con.CursorPosition()
	assert.Equal(t, 5, col)

	require.NoError(t, HomeEndHandler{}.Handle(SpecialEvent(KeyLeft), ed))
	assert.Equal(t, 5, ed.Cursor())
}

func TestTabHandlerCycles(t *testing.T) {
	t.Parallel()

	suggestions := []string{"one", "two", "three", "four"}
	ed, con := newTestEditor(t, "t", 1, suggestions)
	tab := SpecialEvent(KeyTab)

	// First press matches, then N more presses come back to the match.
	want := []string{"two", "three", "four", "one", "two"}
	for _, w := range want {
		require.NoError(t, TabHandler{}.Handle(tab, ed))
		assert.Equal(t, w, ed.Text())
		assert.Equal(t, len(w), ed.Cursor())
		assert.Equal(t, w, con.Line(0))
	}

	backTab := KeyEvent{Key: KeyTab, Mod: ModShift}
	for _, w := range []string{"one", "four", "three"} {
		require.NoError(t, TabHandler{}.Handle(backTab, ed))
		assert.Equal(t, w, ed.Text())
	}
}

func TestTabHandlerWithoutMatch(t *testing.T) {
	t.Parallel()

	ed, _ := newTestEditor(t, "zz", 2, []string{"one", "two"})
	require.NoError(t, TabHandler{}.Handle(SpecialEvent(KeyTab), ed))
	assert.Equal(t, "zz", ed.Text())
	assert.False(t, ed.HasSelection())

	ed, _ = newTestEditor(t, "", 0, nil)
	require.NoError(t, TabHandler{}.Handle(SpecialEvent(KeyTab), ed))
	assert.Empty(t, ed.Text())
}

func TestLiteralHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   KeyEvent
		want string
	}{
		{"letter", RuneEvent('x'), "abx"},
		{"shifted letter", KeyEvent{Key: KeyRune, Rune: 'X', Mod: ModShift}, "abX"},
		{"space", RuneEvent(' '), "ab "},
		{"multibyte", RuneEvent('é'), "abé"},
		{"ctrl", CtrlEvent('x'), "ab"},
		{"alt", KeyEvent{Key: KeyRune, Rune: 'x', Mod: ModAlt}, "ab"},
		{"no character", SpecialEvent(KeyUp), "ab"},
		{"control character", RuneEvent('\x07'), "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed, _ := newTestEditor(t, "ab", 2, nil)
			require.NoError(t, LiteralHandler{}.Handle(tt.ev, ed))
			assert.Equal(t, tt.want, ed.Text())
		})
	}
}

func TestPasteHandler(t *testing.T) {
	t.Parallel()

	clip := func(text string, err error) Clipboard {
		return ClipboardFunc(func() (string, error) { return text, err })
	}

	tests := []struct {
		name string
		h    *PasteHandler
		ev   KeyEvent
		want string
	}{
		{"ctrl v pastes", NewPasteHandler(clip("hello", nil)), CtrlEvent('v'), "[hello]"},
		{"plain v is typed", NewPasteHandler(clip("hello", nil)), RuneEvent('v'), "[v]"},
		{"shift v is typed", NewPasteHandler(clip("hello", nil)), KeyEvent{Key: KeyRune, Rune: 'V', Mod: ModShift}, "[V]"},
		{"tabs become spaces and line breaks are dropped", NewPasteHandler(clip("a\tb\r\nc", nil)), CtrlEvent('v'), "[a bc]"},
		{"clipboard error", NewPasteHandler(clip("hello", errors.New("no clipboard"))), CtrlEvent('v'), "[]"},
		{"empty clipboard", NewPasteHandler(clip("", nil)), CtrlEvent('v'), "[]"},
		{"only control characters", NewPasteHandler(clip("\n\x1b", nil)), CtrlEvent('v'), "[]"},
		{"no clipboard", NewPasteHandler(nil), CtrlEvent('v'), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ed, con := newTestEditor(t, "[]", 1, nil)
			require.NoError(t, tt.h.Handle(tt.ev, ed))
			assert.Equal(t, tt.want, ed.Text())
			assert.Equal(t, tt.want, con.Line(0))
			assert.Equal(t, len([]rune(tt.want))-1, ed.Cursor())
		})
	}
}

func TestPasteThroughReadLine(t *testing.T) {
	t.Parallel()

	km := NewDefaultKeyMapping()
	km.Bind(RuneCode('v'), NewPasteHandler(ClipboardFunc(func() (string, error) {
		return "hello\tworld\n", nil
	})))

	got, con := readLine(t, 80, 24, Keys("a\x16b\r"), nil, "> ", WithKeyMapping(km))
	assert.Equal(t, "ahello worldb", got)
	assert.Equal(t, "> ahello worldb", con.Line(0))
}

func TestKeyPressHandlerFunc(t *testing.T) {
	t.Parallel()

	var got KeyEvent
	h := KeyPressHandlerFunc(func(ev KeyEvent, ed *Editor) error {
		got = ev
		return ed.ReplaceText("replaced")
	})

	ed, _ := newTestEditor(t, "abc", 3, nil)
	require.NoError(t, h.Handle(SpecialEvent(KeyEscape), ed))
	assert.Equal(t, SpecialEvent(KeyEscape), got)
	assert.Equal(t, "replaced", ed.Text())
}
