package consolekit

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ErrExitMenu is returned by a menu action to leave Menu.Run.
var ErrExitMenu = errors.New("exit menu")

// MenuItem is one choice of a Menu.
type MenuItem struct {
	Name        string
	Description string
	Action      func() error
}

// Menu shows a numbered list of commands and runs the one the user picks.
// Item names are offered as suggestions, so Tab completes them.
type Menu struct {
	Title  string
	Prompt string
	Logger *slog.Logger

	editor *Editor
	items  []MenuItem
}

// NewMenu creates an empty menu reading choices through ed.
//
// Example:
//
//	menu := consolekit.NewMenu(ed, "Main menu").
//		Add("status", "Show status", showStatus).
//		Add("quit", "Leave the program", func() error { return consolekit.ErrExitMenu })
//	if err := menu.Run(); err != nil {
//		log.Fatal(err)
//	}
func NewMenu(ed *Editor, title string) *Menu {
	return &Menu{
		Title:  title,
		Prompt: "> ",
		Logger: slog.New(slog.DiscardHandler),
		editor: ed,
	}
}

// Add appends an item and returns the menu for chaining.
func (m *Menu) Add(name, description string, action func() error) *Menu {
	m.items = append(m.items, MenuItem{Name: name, Description: description, Action: action})
	return m
}

// Items returns a copy of the menu items.
func (m *Menu) Items() []MenuItem {
	return append([]MenuItem{}, m.items...)
}

// Show displays the menu, reads a choice and runs its action.
//
// The choice is either the item number or its name (case-insensitive).
// Unknown choices are reported and asked again. Show returns the error of
// the action.
func (m *Menu) Show() error {
	if len(m.items) == 0 {
		return errors.New("menu has no items")
	}
	if err := m.render(); err != nil {
		return err
	}

	names := make([]string, len(m.items))
	for i, item := range m.items {
		names[i] = item.Name
	}

	console := m.editor.Console()
	for {
		answer, err := m.editor.ReadLine(names, m.Prompt)
		if err != nil {
			return err
		}
		item, ok := m.find(strings.TrimSpace(answer))
		if !ok {
			if err := console.Write(fmt.Sprintf("Unknown choice %q.\n", answer), CategoryError); err != nil {
				return err
			}
			continue
		}
		m.Logger.Debug("menu item chosen", "menu", m.Title, "item", item.Name)
		if item.Action == nil {
			return nil
		}
		return item.Action()
	}
}

// Run shows the menu repeatedly until an action returns ErrExitMenu, which
// ends Run with a nil error, or any other error, which Run returns.
func (m *Menu) Run() error {
	for {
		err := m.Show()
		if errors.Is(err, ErrExitMenu) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) render() error {
	console := m.editor.Console()
	if m.Title != "" {
		if err := console.Write(m.Title+"\n", CategoryTitle); err != nil {
			return err
		}
	}
	for i, item := range m.items {
		line := fmt.Sprintf("  %d. %s", i+1, item.Name)
		if err := console.Write(line, CategoryMenuItem); err != nil {
			return err
		}
		if item.Description != "" {
			if err := console.Write(" - "+item.Description, CategorySuggestion); err != nil {
				return err
			}
		}
		if err := console.Write("\n", CategoryDefault); err != nil {
			return err
		}
	}
	return nil
}

// find resolves a choice by number or case-insensitive name.
func (m *Menu) find(choice string) (MenuItem, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(m.items) {
			return m.items[n-1], true
		}
		return MenuItem{}, false
	}
	for _, item := range m.items {
		if strings.EqualFold(item.Name, choice) {
			return item, true
		}
	}
	return MenuItem{}, false
}
