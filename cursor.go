package consolekit

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// This file holds the physical cursor projection: pure functions mapping a
// number of cells to move (or a piece of text to write) onto console
// column/row coordinates. The editor keeps its logical offset separately and
// uses these to keep the console cursor in step.

// cellWidth returns the number of console cells r occupies.
// Zero width runes still count as one cell so that every rune in the edit
// buffer maps to a distinct cursor position.
func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 1 {
		return w
	}
	return 1
}

// stepForward returns the position n cells after (col, row), wrapping at
// width. The row is clamped to the last row of the window.
func stepForward(col, row, n, width, height int) (int, int) {
	if width <= 0 || n <= 0 {
		return col, row
	}
	total := col + n
	row += total / width
	col = total % width
	if height > 0 && row > height-1 {
		row = height - 1
	}
	return col, row
}

// stepBackward returns the position n cells before (col, row), wrapping at
// width. The row is clamped to 0: text that has scrolled above the window can
// no longer be reached, the cursor stops on the first row instead.
func stepBackward(col, row, n, width, height int) (int, int) {
	if width <= 0 || n <= 0 {
		return col, row
	}
	total := row*width + col - n
	if total < 0 {
		// Scrolled off the top. Keep the column the wrap arithmetic would
		// give and pin the row.
		col = ((total % width) + width) % width
		return col, 0
	}
	row = total / width
	col = total % width
	if height > 0 && row > height-1 {
		row = height - 1
	}
	return col, row
}

// advanceText returns the cursor position after writing text at (col, row)
// and the number of lines the window scrolled. '\n' moves to the start of the
// next line and '\r' to the start of the current one.
func advanceText(col, row, width, height int, text string) (newCol, newRow, scrolled int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	newLine := func() {
		col = 0
		if row == height-1 {
			scrolled++
			return
		}
		row++
	}
	for _, r := range text {
		switch r {
		case '\n':
			newLine()
			continue
		case '\r':
			col = 0
			continue
		}
		w := cellWidth(r)
		if col+w > width {
			newLine()
		}
		col += w
		if col >= width {
			newLine()
		}
	}
	return col, row, scrolled
}

// textEnd returns where text written from column origin of row 0 ends.
// Rows are not clamped to a window.
func textEnd(origin, width int, text []rune) (col, row int) {
	col, row, _ = advanceText(origin, 0, width, 2*len(text)+2, string(text))
	return col, row
}

// span returns the number of cells between rune offsets from and to of text
// laid out from column origin. A wide rune that does not fit before the right
// edge starts the next row, and the cell it skips counts too.
func span(text []rune, origin, width, from, to int) int {
	if width <= 0 {
		width = 1
	}
	fromCol, fromRow := textEnd(origin, width, text[:from])
	toCol, toRow := textEnd(origin, width, text[:to])
	return (toRow-fromRow)*width + toCol - fromCol
}

// fillGaps returns text with a space in every cell skipped by a wide rune
// that does not fit before the right edge, so rewriting text in place also
// overwrites those cells. col is the column text starts at.
func fillGaps(text []rune, col, width int) string {
	var sb strings.Builder
	for _, r := range text {
		w := cellWidth(r)
		if col > 0 && col+w > width {
			sb.WriteString(strings.Repeat(" ", width-col))
			col = 0
		}
		sb.WriteRune(r)
		col += w
		if col >= width {
			col = 0
		}
	}
	return sb.String()
}
