// Package consolekit provides building blocks for interactive console
// applications: an autocomplete line editor, yes/no and path prompters, a
// simple command menu and a full-screen screen buffer with painters.
//
// Everything is written against the Console interface, with three
// implementations included:
//
//   - Terminal: the controlling terminal in raw mode (go-tty, x/term, ANSI)
//   - TcellConsole: a full-screen tcell screen
//   - ScriptedConsole: an in-memory console fed with a fixed key sequence,
//     for tests
//
// Quick Start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"github.com/nao1215/consolekit"
//	)
//
//	func main() {
//		term, err := consolekit.OpenTerminal()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer term.Close()
//
//		ed := consolekit.NewEditor(term)
//		drink, err := ed.ReadLine([]string{"coffee", "tea", "water"}, "Drink? ")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("You chose %s\n", drink)
//	}
//
// Autocompletion:
//
// ReadLine takes the list of suggestions for one read. The first Tab replaces
// the input with the suggestion the editor's Matcher picks for the text typed
// so far; every further Tab (Shift+Tab) replaces it with the next (previous)
// suggestion, wrapping around the list. Typing or deleting starts over.
//
// Two matchers are included:
//
//   - PrefixMatcher: first suggestion starting with the input; when none
//     does, the last typed character is dropped and the search repeated
//   - SubstringMatcher: first suggestion containing the input
//
// Both take a Comparison deciding how case is treated.
//
// Key Bindings:
//
// Keys are dispatched through a KeyMapping. The default mapping binds:
//
//   - Enter: Finish the line
//   - Left/Right: Move cursor
//   - Home/End: Move to beginning/end of line
//   - Backspace: Delete character backwards
//   - Delete: Delete character forwards
//   - Tab / Shift+Tab: Complete and cycle suggestions
//   - Ctrl+V: Paste from the system clipboard
//
// Any other key inserts its character when it has a printable one. Bind
// your own KeyPressHandler to change or extend this.
//
// Error Handling:
//
//   - ErrOutOfRange: a cursor, buffer or screen coordinate outside its range
//   - ErrInterrupted: Ctrl+C on a Terminal
//   - ErrNoMoreKeys: a ScriptedConsole ran out of keys (wraps io.EOF)
//
// Thread Safety:
//
// Editors, consoles and screens are not safe for concurrent use. ReadLine
// blocks the calling goroutine until Enter is pressed and cannot be
// cancelled.
package consolekit
