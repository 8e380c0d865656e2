package consolekit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Rect is a rectangular screen area.
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Empty reports whether the area has no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the part of r inside o.
func (r Rect) Intersect(o Rect) Rect {
	left := max(r.Col, o.Col)
	top := max(r.Row, o.Row)
	right := min(r.Col+r.Width, o.Col+o.Width)
	bottom := min(r.Row+r.Height, o.Row+o.Height)
	if right <= left || bottom <= top {
		return Rect{Col: left, Row: top}
	}
	return Rect{Col: left, Row: top, Width: right - left, Height: bottom - top}
}

// Inset returns r shrunk by n cells on every side.
func (r Rect) Inset(n int) Rect {
	out := Rect{Col: r.Col + n, Row: r.Row + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
	out.Width = max(out.Width, 0)
	out.Height = max(out.Height, 0)
	return out
}

// Painter draws into an area of a Screen. Painters must stay inside the
// area they are given.
type Painter interface {
	Paint(s *Screen, area Rect)
}

// PainterFunc adapts an ordinary function to a Painter.
type PainterFunc func(s *Screen, area Rect)

// Paint calls f(s, area).
func (f PainterFunc) Paint(s *Screen, area Rect) {
	f(s, area)
}

// Alignment is the horizontal placement of text in its area.
type Alignment int

// Alignments
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Text paints lines of text, one per row, truncated to the area width.
// Truncation never splits a grapheme cluster.
type Text struct {
	Lines    []string
	Category OutputCategory
	Align    Alignment
}

// NewText creates a left-aligned Text painter from newline separated text.
func NewText(text string, category OutputCategory) *Text {
	return &Text{Lines: strings.Split(text, "\n"), Category: category}
}

// Paint implements Painter.
func (t *Text) Paint(s *Screen, area Rect) {
	for i, line := range t.Lines {
		if i >= area.Height {
			return
		}
		line = truncate(line, area.Width)
		col := area.Col
		switch t.Align {
		case AlignCenter:
			col += (area.Width - uniseg.StringWidth(line)) / 2
		case AlignRight:
			col += area.Width - uniseg.StringWidth(line)
		}
		s.WriteString(col, area.Row+i, area.Col+area.Width-col, line, t.Category)
	}
}

// truncate cuts s to at most width cells on a grapheme cluster boundary.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String()
}

// Frame draws a box border with an optional title and paints Content inside it.
type Frame struct {
	Title   string
	Content Painter
}

// Paint implements Painter.
func (f *Frame) Paint(s *Screen, area Rect) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	right := area.Col + area.Width - 1
	bottom := area.Row + area.Height - 1
	for x := area.Col + 1; x < right; x++ {
		s.put(x, area.Row, '─', CategoryBorder)
		s.put(x, bottom, '─', CategoryBorder)
	}
	for y := area.Row + 1; y < bottom; y++ {
		s.put(area.Col, y, '│', CategoryBorder)
		s.put(right, y, '│', CategoryBorder)
	}
	s.put(area.Col, area.Row, '┌', CategoryBorder)
	s.put(right, area.Row, '┐', CategoryBorder)
	s.put(area.Col, bottom, '└', CategoryBorder)
	s.put(right, bottom, '┘', CategoryBorder)

	if f.Title != "" && area.Width > 4 {
		title := " " + truncate(f.Title, area.Width-4) + " "
		s.WriteString(area.Col+1, area.Row, area.Width-2, title, CategoryTitle)
	}
	if f.Content != nil {
		if inner := area.Inset(1); !inner.Empty() {
			f.Content.Paint(s, inner)
		}
	}
}

// Slot is one entry of a stack layout. A Size of 0 shares the space left
// over by the fixed-size slots equally with the other flexible slots.
type Slot struct {
	Size    int
	Painter Painter
}

// VStack lays its slots out top to bottom.
type VStack []Slot

// Paint implements Painter.
func (v VStack) Paint(s *Screen, area Rect) {
	sizes := distribute([]Slot(v), area.Height)
	row := area.Row
	for i, slot := range v {
		if sizes[i] > 0 && slot.Painter != nil {
			slot.Painter.Paint(s, Rect{Col: area.Col, Row: row, Width: area.Width, Height: sizes[i]})
		}
		row += sizes[i]
	}
}

// HStack lays its slots out left to right.
type HStack []Slot

// Paint implements Painter.
func (h HStack) Paint(s *Screen, area Rect) {
	sizes := distribute([]Slot(h), area.Width)
	col := area.Col
	for i, slot := range h {
		if sizes[i] > 0 && slot.Painter != nil {
			slot.Painter.Paint(s, Rect{Col: col, Row: area.Row, Width: sizes[i], Height: area.Height})
		}
		col += sizes[i]
	}
}

// distribute assigns each slot its size within total. Fixed slots are served
// first in order and cut when space runs out; flexible slots split the rest,
// the first ones taking the remainder of the division.
func distribute(slots []Slot, total int) []int {
	sizes := make([]int, len(slots))
	remaining := max(total, 0)
	flexible := 0
	for i, slot := range slots {
		if slot.Size <= 0 {
			flexible++
			continue
		}
		sizes[i] = min(slot.Size, remaining)
		remaining -= sizes[i]
	}
	if flexible == 0 {
		return sizes
	}
	share, extra := remaining/flexible, remaining%flexible
	for i, slot := range slots {
		if slot.Size > 0 {
			continue
		}
		sizes[i] = share
		if extra > 0 {
			sizes[i]++
			extra--
		}
	}
	return sizes
}
