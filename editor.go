package consolekit

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Editor is an autocomplete-capable line editor.
//
// The editor owns the editing state of one ReadLine call (text, cursor offset,
// suggestions and the selected suggestion) and keeps the console cursor in
// step with the logical cursor. Key presses are dispatched through a
// KeyMapping to stateless KeyPressHandlers, which change the state only
// through the exported mutation and suggestion methods.
//
// An Editor is not safe for concurrent use. ReadLine blocks until Enter is
// pressed; there is no timeout or cancellation.
type Editor struct {
	console Console
	matcher Matcher
	mapping *KeyMapping
	logger  *slog.Logger

	buffer      []rune
	cursor      int
	origin      int // console column the text starts at
	suggestions []string
	selected    int
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithMatcher sets the matcher used to find the first suggestion on Tab.
// The default is a case-insensitive PrefixMatcher.
func WithMatcher(m Matcher) EditorOption {
	return func(e *Editor) {
		e.matcher = m
	}
}

// WithKeyMapping sets the key bindings. The default is NewDefaultKeyMapping().
func WithKeyMapping(km *KeyMapping) EditorOption {
	return func(e *Editor) {
		e.mapping = km
	}
}

// WithLogger sets the logger for key dispatch tracing. Logging is discarded by default.
func WithLogger(logger *slog.Logger) EditorOption {
	return func(e *Editor) {
		e.logger = logger
	}
}

// NewEditor creates an editor reading from and writing to console.
//
// Example:
//
//	term, err := consolekit.OpenTerminal()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer term.Close()
//
//	ed := consolekit.NewEditor(term, consolekit.WithMatcher(consolekit.NewSubstringMatcher(consolekit.CompareIgnoreCase)))
//	drink, err := ed.ReadLine([]string{"coffee", "tea", "water"}, "Drink? ")
func NewEditor(console Console, opts ...EditorOption) *Editor {
	e := &Editor{
		console:  console,
		selected: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = NewPrefixMatcher(CompareIgnoreCase)
	}
	if e.mapping == nil {
		e.mapping = NewDefaultKeyMapping()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// Console returns the console the editor works on.
func (e *Editor) Console() Console {
	return e.console
}

// ReadLine writes prompt and reads one line of input.
//
// Key presses are read one at a time and handed to the handler bound in the
// key mapping until Enter is pressed. Tab completes from suggestions, whose
// order is also the cycling order. The cursor is hidden while a key is being
// handled. The returned error is non-nil only when reading a key, writing to
// the console or a handler fails.
func (e *Editor) ReadLine(suggestions []string, prompt string) (string, error) {
	e.logger.Debug("read line started", "prompt", prompt, "suggestions", len(suggestions))

	if err := e.console.Write(prompt, CategoryPrompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	e.reset(suggestions)

	for {
		ev, err := e.console.ReadKey()
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		if ev.Key == KeyEnter {
			break
		}
		if err := e.dispatch(ev); err != nil {
			return "", err
		}
	}

	// Leave the cursor after the text so the newline does not split it.
	if err := e.MoveEnd(); err != nil {
		return "", err
	}
	if err := e.console.Write("\n", CategoryDefault); err != nil {
		return "", fmt.Errorf("failed to write newline: %w", err)
	}
	e.SelectNone()

	result := string(e.buffer)
	e.logger.Debug("read line finished", "length", len(e.buffer))
	return result, nil
}

// reset starts an empty edit at the console cursor.
func (e *Editor) reset(suggestions []string) {
	e.buffer = []rune{}
	e.cursor = 0
	e.origin, _ = e.console.CursorPosition()
	e.suggestions = slices.Clone(suggestions)
	e.selected = -1
}

// dispatch runs the handler bound to ev with the cursor hidden.
func (e *Editor) dispatch(ev KeyEvent) error {
	handler := e.mapping.Lookup(ev)
	e.logger.Debug("dispatching key", "key", ev.Key.String(), "rune", string(ev.Rune), "mod", int(ev.Mod))

	visible := e.console.CursorVisible()
	if err := e.console.SetCursorVisible(false); err != nil {
		return fmt.Errorf("failed to hide cursor: %w", err)
	}
	handleErr := handler.Handle(ev, e)
	if err := e.console.SetCursorVisible(visible); err != nil && handleErr == nil {
		return fmt.Errorf("failed to restore cursor visibility: %w", err)
	}
	if handleErr != nil {
		return fmt.Errorf("failed to handle %s key: %w", ev.Key, handleErr)
	}
	return nil
}

// Text returns the current edit buffer.
func (e *Editor) Text() string {
	return string(e.buffer)
}

// Cursor returns the logical cursor offset, in runes.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Len returns the length of the edit buffer, in runes.
func (e *Editor) Len() int {
	return len(e.buffer)
}

// Insert inserts r at the cursor and moves the cursor after it.
func (e *Editor) Insert(r rune) error {
	return e.InsertString(string(r))
}

// InsertString inserts s at the cursor and moves the cursor after it.
func (e *Editor) InsertString(s string) error {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	oldEnd := e.distance(0, len(e.buffer))
	e.selected = -1
	e.buffer = slices.Insert(e.buffer, e.cursor, runes...)

	start := e.cursor
	e.cursor += len(runes)
	return e.redraw(start, oldEnd)
}

// RemoveAtCursor deletes the character under the cursor.
// It returns ErrOutOfRange when the cursor is at the end of the buffer.
func (e *Editor) RemoveAtCursor() error {
	if e.cursor >= len(e.buffer) {
		return fmt.Errorf("remove at %d (length %d): %w", e.cursor, len(e.buffer), ErrOutOfRange)
	}
	oldEnd := e.distance(0, len(e.buffer))
	e.selected = -1
	e.buffer = slices.Delete(e.buffer, e.cursor, e.cursor+1)
	return e.redraw(e.cursor, oldEnd)
}

// RemoveBeforeCursor deletes the character before the cursor and moves the cursor left.
// It returns ErrOutOfRange when the cursor is at the start of the buffer.
func (e *Editor) RemoveBeforeCursor() error {
	if e.cursor == 0 {
		return fmt.Errorf("remove before 0: %w", ErrOutOfRange)
	}
	if err := e.MoveLeft(); err != nil {
		return err
	}
	return e.RemoveAtCursor()
}

// ReplaceText replaces the whole buffer with s and puts the cursor at its end.
// The selected suggestion is kept, as this is how a suggestion is accepted.
func (e *Editor) ReplaceText(s string) error {
	if err := e.MoveHome(); err != nil {
		return err
	}
	oldEnd := e.distance(0, len(e.buffer))
	e.buffer = []rune(s)
	e.cursor = len(e.buffer)
	return e.redraw(0, oldEnd)
}

// MoveLeft moves the cursor one character left.
// It returns ErrOutOfRange at the start of the buffer.
func (e *Editor) MoveLeft() error {
	if e.cursor == 0 {
		return fmt.Errorf("move left from 0: %w", ErrOutOfRange)
	}
	n := e.distance(e.cursor-1, e.cursor)
	e.cursor--
	return e.retreat(n)
}

// MoveRight moves the cursor one character right.
// It returns ErrOutOfRange at the end of the buffer.
func (e *Editor) MoveRight() error {
	if e.cursor >= len(e.buffer) {
		return fmt.Errorf("move right from %d (length %d): %w", e.cursor, len(e.buffer), ErrOutOfRange)
	}
	n := e.distance(e.cursor, e.cursor+1)
	e.cursor++
	return e.advance(n)
}

// MoveHome moves the cursor to the start of the buffer.
func (e *Editor) MoveHome() error {
	n := e.distance(0, e.cursor)
	e.cursor = 0
	return e.retreat(n)
}

// MoveEnd moves the cursor to the end of the buffer.
func (e *Editor) MoveEnd() error {
	n := e.distance(e.cursor, len(e.buffer))
	e.cursor = len(e.buffer)
	return e.advance(n)
}

// distance returns the number of console cells between rune offsets from and
// to of the buffer as laid out on screen.
func (e *Editor) distance(from, to int) int {
	width, _ := e.console.WindowSize()
	return span(e.buffer, e.origin, width, from, to)
}

// redraw writes the buffer from offset from, where the console cursor is, to
// its end and blanks what is left of the old text, which ended oldEnd cells
// after the start. The console cursor is then put back at the logical cursor.
func (e *Editor) redraw(from, oldEnd int) error {
	width, _ := e.console.WindowSize()
	col, _ := textEnd(e.origin, width, e.buffer[:from])
	newEnd := e.distance(0, len(e.buffer))
	pad := max(oldEnd-newEnd, 0)

	text := fillGaps(e.buffer[from:], col, width) + strings.Repeat(" ", pad)
	if err := e.console.Write(text, CategoryInput); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return e.retreat(newEnd + pad - e.distance(0, e.cursor))
}

// retreat moves the console cursor n cells back.
func (e *Editor) retreat(n int) error {
	if n == 0 {
		return nil
	}
	col, row := e.console.CursorPosition()
	width, height := e.console.WindowSize()
	col, row = stepBackward(col, row, n, width, height)
	if err := e.console.SetCursorPosition(col, row); err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	return nil
}

// advance moves the console cursor n cells forward.
func (e *Editor) advance(n int) error {
	if n == 0 {
		return nil
	}
	col, row := e.console.CursorPosition()
	width, height := e.console.WindowSize()
	col, row = stepForward(col, row, n, width, height)
	if err := e.console.SetCursorPosition(col, row); err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	return nil
}

// Suggestions returns a copy of the suggestions of the current read.
func (e *Editor) Suggestions() []string {
	return slices.Clone(e.suggestions)
}

// SelectedIndex returns the index of the selected suggestion, or -1.
func (e *Editor) SelectedIndex() int {
	return e.selected
}

// HasSelection reports whether a suggestion is selected.
func (e *Editor) HasSelection() bool {
	return e.selected >= 0
}

// SelectFirstMatch selects the suggestion the matcher picks for the current
// text, or nothing if it finds no match.
func (e *Editor) SelectFirstMatch() {
	i := e.matcher.FindMatch(string(e.buffer), e.suggestions)
	if i < 0 || i >= len(e.suggestions) {
		i = -1
	}
	e.selected = i
}

// SelectNext selects the suggestion after the selected one, wrapping to the
// first. With nothing selected it selects the first suggestion.
func (e *Editor) SelectNext() {
	n := len(e.suggestions)
	if n == 0 {
		e.selected = -1
		return
	}
	e.selected = (e.selected + 1) % n
}

// SelectPrevious selects the suggestion before the selected one, wrapping to
// the last. With nothing selected it selects the last suggestion.
func (e *Editor) SelectPrevious() {
	n := len(e.suggestions)
	if n == 0 {
		e.selected = -1
		return
	}
	if e.selected < 0 {
		e.selected = n - 1
		return
	}
	e.selected = (e.selected - 1 + n) % n
}

// SelectNone clears the selection.
func (e *Editor) SelectNone() {
	e.selected = -1
}

// CurrentSuggestion returns the text of the selected suggestion.
// The second result is false when nothing is selected.
func (e *Editor) CurrentSuggestion() (string, bool) {
	if e.selected < 0 || e.selected >= len(e.suggestions) {
		return "", false
	}
	return e.suggestions[e.selected], true
}
