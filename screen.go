package consolekit

import (
	"fmt"
	"log/slog"
	"strings"
)

// Cell is one character cell of a Screen.
type Cell struct {
	// Rune is the character to display.
	// A value of 0 marks the second cell of a wide character.
	Rune     rune
	Category OutputCategory
}

// blankCell is the content of a cleared cell.
var blankCell = Cell{Rune: ' ', Category: CategoryDefault}

// Screen is an off-screen buffer for full-screen output.
//
// Painters draw into the buffer; Flush sends only the rows that changed since
// the last flush to the console, each row as runs of cells sharing an output
// category, so a redraw costs one Write per colour change instead of one per
// cell.
type Screen struct {
	console Console
	logger  *slog.Logger
	width   int
	height  int
	cells   [][]Cell
	dirty   []bool
}

// NewScreen creates a buffer the size of the console window.
// All rows start dirty so the first Flush draws the whole window.
func NewScreen(console Console) *Screen {
	s := &Screen{
		console: console,
		logger:  slog.New(slog.DiscardHandler),
	}
	s.Resize()
	return s
}

// SetLogger sets the logger used to trace flushes.
func (s *Screen) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Size returns the buffer dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// Bounds returns the rectangle covering the whole buffer.
func (s *Screen) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Resize reallocates the buffer to the current window size.
// The content is cleared and every row marked dirty.
func (s *Screen) Resize() {
	s.width, s.height = s.console.WindowSize()
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
	s.dirty = make([]bool, s.height)
	s.Invalidate()
}

// Invalidate marks every row dirty, forcing a full redraw on the next Flush.
func (s *Screen) Invalidate() {
	for y := range s.dirty {
		s.dirty[y] = true
	}
}

// Dirty reports whether row has changes that have not been flushed.
func (s *Screen) Dirty(row int) bool {
	return row >= 0 && row < s.height && s.dirty[row]
}

// Get returns the cell at (col, row).
func (s *Screen) Get(col, row int) (Cell, error) {
	if !s.inside(col, row) {
		return Cell{}, fmt.Errorf("cell (%d,%d) outside %dx%d screen: %w", col, row, s.width, s.height, ErrOutOfRange)
	}
	return s.cells[row][col], nil
}

// Set puts r at (col, row). Setting a cell to its current content does not
// dirty the row.
func (s *Screen) Set(col, row int, r rune, category OutputCategory) error {
	if !s.inside(col, row) {
		return fmt.Errorf("cell (%d,%d) outside %dx%d screen: %w", col, row, s.width, s.height, ErrOutOfRange)
	}
	s.set(col, row, Cell{Rune: r, Category: category})
	return nil
}

// put is Set for painters: cells outside the screen are dropped.
func (s *Screen) put(col, row int, r rune, category OutputCategory) {
	if s.inside(col, row) {
		s.set(col, row, Cell{Rune: r, Category: category})
	}
}

// set keeps wide characters whole: overwriting either half of one blanks the
// other half.
func (s *Screen) set(col, row int, c Cell) {
	cells := s.cells[row]
	old := cells[col]
	if old == c {
		return
	}
	if old.Rune == 0 && c.Rune != 0 && col > 0 && cellWidth(cells[col-1].Rune) > 1 {
		cells[col-1] = blankCell
	}
	if old.Rune != 0 && cellWidth(old.Rune) > 1 && col+1 < s.width && cells[col+1].Rune == 0 {
		cells[col+1] = blankCell
	}
	cells[col] = c
	s.dirty[row] = true
}

func (s *Screen) inside(col, row int) bool {
	return col >= 0 && col < s.width && row >= 0 && row < s.height
}

// WriteString draws text starting at (col, row), clipped to maxWidth cells
// and to the screen edge. A wide character that does not fit is not drawn.
// It returns the number of cells drawn.
func (s *Screen) WriteString(col, row, maxWidth int, text string, category OutputCategory) int {
	if row < 0 || row >= s.height || col >= s.width {
		return 0
	}
	limit := min(col+maxWidth, s.width)
	x := col
	for _, r := range text {
		if r == '\n' || r == '\r' {
			break
		}
		w := cellWidth(r)
		if x+w > limit {
			break
		}
		if x >= 0 {
			s.set(x, row, Cell{Rune: r, Category: category})
			for i := 1; i < w; i++ {
				s.set(x+i, row, Cell{Rune: 0, Category: category})
			}
		}
		x += w
	}
	return x - col
}

// Fill sets every cell of area to r.
func (s *Screen) Fill(area Rect, r rune, category OutputCategory) {
	area = area.Intersect(s.Bounds())
	for y := area.Row; y < area.Row+area.Height; y++ {
		for x := area.Col; x < area.Col+area.Width; x++ {
			s.set(x, y, Cell{Rune: r, Category: category})
		}
	}
}

// Clear blanks the whole buffer.
func (s *Screen) Clear() {
	s.Fill(s.Bounds(), ' ', CategoryDefault)
}

// Paint clears the buffer, lets p draw the whole screen and flushes.
func (s *Screen) Paint(p Painter) error {
	s.Clear()
	p.Paint(s, s.Bounds())
	return s.Flush()
}

// Flush writes the dirty rows to the console.
//
// The cursor is hidden while drawing and put back where it was afterwards.
// The bottom-right cell is never written, as doing so scrolls most
// terminals.
func (s *Screen) Flush() error {
	col, row := s.console.CursorPosition()
	visible := s.console.CursorVisible()
	if err := s.console.SetCursorVisible(false); err != nil {
		return fmt.Errorf("failed to hide cursor: %w", err)
	}

	flushed := 0
	for y := range s.height {
		if !s.dirty[y] {
			continue
		}
		if err := s.flushRow(y); err != nil {
			return err
		}
		s.dirty[y] = false
		flushed++
	}
	s.logger.Debug("screen flushed", "rows", flushed)

	if err := s.console.SetCursorPosition(min(col, s.width-1), min(row, s.height-1)); err != nil {
		return fmt.Errorf("failed to restore cursor: %w", err)
	}
	if err := s.console.SetCursorVisible(visible); err != nil {
		return fmt.Errorf("failed to restore cursor visibility: %w", err)
	}
	return nil
}

// flushRow writes one row as runs of cells with the same category.
func (s *Screen) flushRow(y int) error {
	if err := s.console.SetCursorPosition(0, y); err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	cells := s.cells[y]
	if y == s.height-1 && len(cells) > 0 {
		cells = cells[:len(cells)-1]
	}

	var run strings.Builder
	category := CategoryDefault
	emit := func() error {
		if run.Len() == 0 {
			return nil
		}
		err := s.console.Write(run.String(), category)
		run.Reset()
		if err != nil {
			return fmt.Errorf("failed to write row %d: %w", y, err)
		}
		return nil
	}

	for i, c := range cells {
		if c.Rune == 0 {
			// Covered by the wide character before it
			continue
		}
		if i > 0 && c.Category != category {
			if err := emit(); err != nil {
				return err
			}
		}
		category = c.Category
		run.WriteRune(c.Rune)
	}
	return emit()
}

// Lines returns the buffer content as text, one string per row.
func (s *Screen) Lines() []string {
	lines := make([]string, s.height)
	for y, row := range s.cells {
		var sb strings.Builder
		for _, c := range row {
			if c.Rune != 0 {
				sb.WriteRune(c.Rune)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}
