// Package main demonstrates full-screen output with the screen buffer on tcell.
package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/nao1215/consolekit"
)

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	console, err := consolekit.NewTcellConsole(screen)
	if err != nil {
		log.Fatal(err)
	}
	defer console.Close()

	buf := consolekit.NewScreen(console)
	presses := 0
	last := "none"

	draw := func() {
		status := consolekit.NewText(fmt.Sprintf("keys pressed: %d\nlast key: %s", presses, last), consolekit.CategoryHighlight)
		help := &consolekit.Text{Lines: []string{"press Escape to quit"}, Category: consolekit.CategorySuggestion, Align: consolekit.AlignCenter}
		layout := consolekit.VStack{
			{Painter: &consolekit.Frame{Title: "Dashboard", Content: consolekit.HStack{
				{Painter: &consolekit.Frame{Title: "Status", Content: status}},
				{Painter: &consolekit.Frame{Title: "About", Content: consolekit.NewText("consolekit screen demo\nresize the window to redraw", consolekit.CategoryDefault)}},
			}}},
			{Size: 1, Painter: help},
		}
		if err := buf.Paint(layout); err != nil {
			log.Fatal(err)
		}
	}
	console.OnResize(func(int, int) {
		buf.Resize()
		draw()
	})

	for {
		draw()

		ev, err := console.ReadKey()
		if err != nil {
			log.Fatal(err)
		}
		if ev.Key == consolekit.KeyEscape {
			return
		}
		presses++
		last = ev.Key.String()
		if ev.Key == consolekit.KeyRune {
			last = fmt.Sprintf("%q", ev.Rune)
		}
	}
}
