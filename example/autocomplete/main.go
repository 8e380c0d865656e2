// Package main demonstrates tab completion with the line editor.
package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/nao1215/consolekit"
)

func main() {
	term, err := consolekit.OpenTerminal()
	if err != nil {
		log.Fatal(err)
	}
	defer term.Close()

	// Set CONSOLEKIT_DEBUG to trace key dispatch on stderr
	logger := slog.New(slog.DiscardHandler)
	if os.Getenv("CONSOLEKIT_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ed := consolekit.NewEditor(term, consolekit.WithLogger(logger))
	drinks := []string{"coffee", "tea", "water", "orange juice", "oolong tea"}

	term.Write("Autocomplete Example\n", consolekit.CategoryTitle)
	term.Write("Press Tab to complete, Shift+Tab to go back, Ctrl+C to quit\n\n", consolekit.CategoryDefault)

	for {
		drink, err := ed.ReadLine(drinks, "Drink? ")
		if err != nil {
			if errors.Is(err, consolekit.ErrInterrupted) {
				term.Write("\nGoodbye!\n", consolekit.CategoryDefault)
				return
			}
			term.Close()
			log.Fatal(err)
		}
		if drink == "" {
			continue
		}
		term.Write(fmt.Sprintf("You chose %s\n", drink), consolekit.CategoryHighlight)
	}
}
