package consolekit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorMessages returns the text of all writes in the error category.
func errorMessages(con *ScriptedConsole) []string {
	var msgs []string
	for _, w := range con.Writes() {
		if w.Category == CategoryError {
			msgs = append(msgs, w.Text)
		}
	}
	return msgs
}

func newTestPrompter(t *testing.T, keys string) (*Prompter, *ScriptedConsole, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("secret"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))

	con := NewScriptedConsole(120, 24, Keys(keys)...)
	return NewPrompter(NewEditor(con), WithBaseDir(dir)), con, dir
}

func TestPrompterConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		keys       string
		def        bool
		want       bool
		complaints int
	}{
		{"yes", "y\r", false, true, 0},
		{"full word", "yes\r", false, true, 0},
		{"no", "n\r", true, false, 0},
		{"upper case", "NO\r", true, false, 0},
		{"true", "true\r", false, true, 0},
		{"empty takes default yes", "\r", true, true, 0},
		{"empty takes default no", "\r", false, false, 0},
		{"completed with tab", "n\t\r", true, false, 0},
		{"asks again until valid", "maybe\rsure\ry\r", false, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, con, _ := newTestPrompter(t, tt.keys)
			got, err := p.Confirm("Overwrite?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, errorMessages(con), tt.complaints)
			assert.Zero(t, con.Remaining())
		})
	}
}

func TestPrompterConfirmPrompt(t *testing.T) {
	t.Parallel()

	p, con, _ := newTestPrompter(t, "\r")
	_, err := p.Confirm("Overwrite?", false)
	require.NoError(t, err)
	assert.Equal(t, "Overwrite? [y/N]", con.Line(0))

	p, con, _ = newTestPrompter(t, "x\r\r")
	_, err = p.Confirm("Continue?", true)
	require.NoError(t, err)
	assert.Equal(t, "Continue? [Y/n] x", con.Line(0))
	assert.Equal(t, "Please answer yes or no.", con.Line(1))
	assert.Equal(t, "Continue? [Y/n]", con.Line(2))
}

func TestPrompterConfirmError(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPrompter(t, "y")
	_, err := p.Confirm("Overwrite?", false)
	assert.ErrorIs(t, err, ErrNoMoreKeys)
}

func TestPrompterFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      string
		mustExist bool
		want      string
		errors    []string
	}{
		{
			name:      "existing file",
			keys:      "notes.txt\r",
			mustExist: true,
			want:      "notes.txt",
		},
		{
			name:      "completed with tab",
			keys:      "no\t\r",
			mustExist: true,
			want:      "notes.txt",
		},
		{
			name:      "new file allowed",
			keys:      "new.txt\r",
			mustExist: false,
			want:      "new.txt",
		},
		{
			name:      "missing file asks again",
			keys:      "missing.txt\rnotes.txt\r",
			mustExist: true,
			want:      "notes.txt",
			errors:    []string{"missing.txt does not exist"},
		},
		{
			name:      "directory rejected",
			keys:      "sub\rnotes.txt\r",
			mustExist: false,
			want:      "notes.txt",
			errors:    []string{"sub is a directory"},
		},
		{
			name:      "empty answer asks again",
			keys:      "\rnotes.txt\r",
			mustExist: true,
			want:      "notes.txt",
			errors:    []string{"Please enter a path."},
		},
		{
			name:      "relative path below a directory",
			keys:      "sub/../notes.txt\r",
			mustExist: true,
			want:      "notes.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, con, dir := newTestPrompter(t, tt.keys)
			got, err := p.File("File: ", tt.mustExist)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)

			msgs := errorMessages(con)
			require.Len(t, msgs, len(tt.errors))
			for i, want := range tt.errors {
				assert.Contains(t, msgs[i], want)
			}
		})
	}
}

func TestPrompterDirectory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      string
		mustExist bool
		want      string
		errors    []string
	}{
		{
			name:      "existing directory",
			keys:      "sub\r",
			mustExist: true,
			want:      "sub",
		},
		{
			name:      "completed with tab",
			keys:      "\t\r",
			mustExist: true,
			want:      "sub",
		},
		{
			name:      "file rejected",
			keys:      "notes.txt\rsub\r",
			mustExist: true,
			want:      "sub",
			errors:    []string{"notes.txt is not a directory"},
		},
		{
			name:      "missing directory asks again",
			keys:      "nowhere\rsub\r",
			mustExist: true,
			want:      "sub",
			errors:    []string{"nowhere does not exist"},
		},
		{
			name:      "new directory allowed",
			keys:      "nowhere\r",
			mustExist: false,
			want:      "nowhere",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, con, dir := newTestPrompter(t, tt.keys)
			got, err := p.Directory("Directory: ", tt.mustExist)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)

			msgs := errorMessages(con)
			require.Len(t, msgs, len(tt.errors))
			for i, want := range tt.errors {
				assert.Contains(t, msgs[i], want)
			}
		})
	}
}

func TestPrompterAbsolutePath(t *testing.T) {
	t.Parallel()

	other := t.TempDir()
	p, _, _ := newTestPrompter(t, other+"\r")
	got, err := p.Directory("Directory: ", true)
	require.NoError(t, err)
	assert.Equal(t, other, got)
}

func TestListEntries(t *testing.T) {
	t.Parallel()

	_, _, dir := newTestPrompter(t, "")
	sep := string(filepath.Separator)

	assert.Equal(t, []string{"sub" + sep, "notes.txt"}, listEntries(dir, false))
	assert.Equal(t, []string{"sub" + sep}, listEntries(dir, true))
	assert.Empty(t, listEntries(filepath.Join(dir, "missing"), false))
}

func TestExpandHome(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/projects", filepath.Join(home, "projects")},
		{"/tmp/file", "/tmp/file"},
		{"relative/~", "relative/~"},
		{"~user", "~user"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := expandHome(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPrompterDefaultsToWorkingDirectory(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	p := NewPrompter(NewEditor(NewScriptedConsole(80, 24)))
	assert.Equal(t, wd, p.baseDir)
}
