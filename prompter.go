package consolekit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prompter asks typed questions on top of an Editor: yes/no confirmations
// and file or directory paths, re-asking until the answer is valid.
type Prompter struct {
	editor  *Editor
	baseDir string
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithBaseDir sets the directory relative paths are resolved against and
// whose entries are offered as suggestions. The default is the working
// directory.
func WithBaseDir(dir string) PrompterOption {
	return func(p *Prompter) {
		p.baseDir = dir
	}
}

// NewPrompter creates a prompter reading through ed.
func NewPrompter(ed *Editor, opts ...PrompterOption) *Prompter {
	p := &Prompter{editor: ed}
	for _, opt := range opts {
		opt(p)
	}
	if p.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			p.baseDir = wd
		} else {
			p.baseDir = "."
		}
	}
	return p
}

// Confirm asks a yes/no question. An empty answer returns def.
//
// Example:
//
//	ok, err := p.Confirm("Overwrite existing file?", false)
//	// Overwrite existing file? [y/N]
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	prompt := fmt.Sprintf("%s %s ", question, hint)

	for {
		answer, err := p.editor.ReadLine([]string{"yes", "no"}, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		if err := p.complain("Please answer yes or no."); err != nil {
			return false, err
		}
	}
}

// File asks for the path of a file and returns it as an absolute path.
// With mustExist the path has to name an existing regular file.
func (p *Prompter) File(prompt string, mustExist bool) (string, error) {
	return p.askPath(prompt, func(path string) error {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if mustExist {
				return fmt.Errorf("%s does not exist", path)
			}
			return nil
		case err != nil:
			return err
		case info.IsDir():
			return fmt.Errorf("%s is a directory", path)
		}
		return nil
	}, false)
}

// Directory asks for the path of a directory and returns it as an absolute path.
// With mustExist the path has to name an existing directory.
func (p *Prompter) Directory(prompt string, mustExist bool) (string, error) {
	return p.askPath(prompt, func(path string) error {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			if mustExist {
				return fmt.Errorf("%s does not exist", path)
			}
			return nil
		case err != nil:
			return err
		case !info.IsDir():
			return fmt.Errorf("%s is not a directory", path)
		}
		return nil
	}, true)
}

func (p *Prompter) askPath(prompt string, validate func(string) error, dirsOnly bool) (string, error) {
	suggestions := listEntries(p.baseDir, dirsOnly)
	for {
		answer, err := p.editor.ReadLine(suggestions, prompt)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if err := p.complain("Please enter a path."); err != nil {
				return "", err
			}
			continue
		}

		path, err := p.resolve(answer)
		if err == nil {
			err = validate(path)
		}
		if err == nil {
			return path, nil
		}
		if err := p.complain(err.Error()); err != nil {
			return "", err
		}
	}
}

// resolve expands ~ and makes path absolute relative to the base directory.
func (p *Prompter) resolve(path string) (string, error) {
	path, err := expandHome(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return abs, nil
}

func (p *Prompter) complain(message string) error {
	return p.editor.Console().Write(message+"\n", CategoryError)
}

// expandHome expands a leading ~ to the user's home directory.
// Supports:
// - Home directory: ~
// - Paths below it: ~/projects or ~\projects
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// listEntries returns the names in dir as path suggestions, directories
// first and with a trailing separator. Hidden entries are skipped.
func listEntries(dir string, dirsOnly bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs, files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, name+string(filepath.Separator))
			continue
		}
		if !dirsOnly {
			files = append(files, name)
		}
	}
	return append(dirs, files...)
}
