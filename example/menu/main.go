// Package main demonstrates the menu and the path and yes/no prompters.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/nao1215/consolekit"
)

func main() {
	term, err := consolekit.OpenTerminal()
	if err != nil {
		log.Fatal(err)
	}
	defer term.Close()

	ed := consolekit.NewEditor(term, consolekit.WithMatcher(consolekit.NewSubstringMatcher(consolekit.CompareIgnoreCase)))
	prompter := consolekit.NewPrompter(ed)

	menu := consolekit.NewMenu(ed, "File tools").
		Add("size", "Show the size of a file", func() error {
			path, err := prompter.File("File: ", true)
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			return term.Write(fmt.Sprintf("%s: %d bytes\n", path, info.Size()), consolekit.CategoryHighlight)
		}).
		Add("list", "List a directory", func() error {
			dir, err := prompter.Directory("Directory: ", true)
			if err != nil {
				return err
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				if err := term.Write("  "+entry.Name()+"\n", consolekit.CategoryDefault); err != nil {
					return err
				}
			}
			return nil
		}).
		Add("quit", "Leave the program", func() error {
			ok, err := prompter.Confirm("Really quit?", true)
			if err != nil {
				return err
			}
			if ok {
				return consolekit.ErrExitMenu
			}
			return nil
		})

	if err := menu.Run(); err != nil && !errors.Is(err, consolekit.ErrInterrupted) {
		term.Close()
		log.Fatal(err)
	}
}
