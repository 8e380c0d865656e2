package consolekit

import "github.com/fatih/color"

// OutputCategory tags console output with its meaning. Consoles map the
// category to a colour; callers never depend on the actual colour.
type OutputCategory int

// Output categories
const (
	CategoryDefault    OutputCategory = iota // Plain text
	CategoryPrompt                           // Prompt text written before input
	CategoryInput                            // Text typed by the user
	CategorySuggestion                       // Suggestion lists
	CategoryTitle                            // Menu and frame titles
	CategoryMenuItem                         // Menu entries
	CategoryError                            // Validation and error messages
	CategoryBorder                           // Frame borders
	CategoryHighlight                        // Emphasised text
)

var categoryNames = map[OutputCategory]string{
	CategoryDefault:    "default",
	CategoryPrompt:     "prompt",
	CategoryInput:      "input",
	CategorySuggestion: "suggestion",
	CategoryTitle:      "title",
	CategoryMenuItem:   "menu-item",
	CategoryError:      "error",
	CategoryBorder:     "border",
	CategoryHighlight:  "highlight",
}

// String returns the name of the category.
func (c OutputCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Palette maps output categories to colours for ANSI consoles.
// Categories without an entry are written uncoloured.
type Palette map[OutputCategory]*color.Color

// DefaultPalette returns the built-in palette: green prompt, white input,
// cyan titles and red errors.
func DefaultPalette() Palette {
	return Palette{
		CategoryPrompt:     color.New(color.FgGreen, color.Bold),
		CategoryInput:      color.New(color.FgHiWhite),
		CategorySuggestion: color.New(color.FgHiBlack),
		CategoryTitle:      color.New(color.FgCyan, color.Bold),
		CategoryMenuItem:   color.New(color.FgWhite),
		CategoryError:      color.New(color.FgRed, color.Bold),
		CategoryBorder:     color.New(color.FgBlue),
		CategoryHighlight:  color.New(color.FgYellow, color.Bold),
	}
}

// Sprint returns text wrapped in the colour sequence of the category.
// It returns text unchanged when colour output is disabled (NO_COLOR, not a
// terminal) or the category has no colour.
func (p Palette) Sprint(category OutputCategory, text string) string {
	c, ok := p[category]
	if !ok || c == nil || text == "" {
		return text
	}
	return c.Sprint(text)
}
