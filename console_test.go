package consolekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Enter", KeyEnter.String())
	assert.Equal(t, "Rune", KeyRune.String())
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Unknown", Key(-1).String())
}

func TestModMask(t *testing.T) {
	t.Parallel()

	m := ModShift | ModCtrl
	assert.True(t, m.Has(ModShift))
	assert.True(t, m.Has(ModCtrl))
	assert.True(t, m.Has(ModShift|ModCtrl))
	assert.False(t, m.Has(ModAlt))
	assert.False(t, m.Has(ModCtrl|ModAlt))
	assert.True(t, ModNone.Has(ModNone))
	assert.False(t, ModNone.Has(ModShift))
}

func TestKeyEventCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   KeyEvent
		want KeyCode
	}{
		{"rune", RuneEvent('a'), KeyCode{Key: KeyRune, Rune: 'a'}},
		{"upper case rune", KeyEvent{Key: KeyRune, Rune: 'A', Mod: ModShift}, KeyCode{Key: KeyRune, Rune: 'a'}},
		{"ctrl", CtrlEvent('A'), KeyCode{Key: KeyRune, Rune: 'a'}},
		{"special", SpecialEvent(KeyTab), KeyCode{Key: KeyTab}},
		{"special with modifier", KeyEvent{Key: KeyTab, Mod: ModShift}, KeyCode{Key: KeyTab}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.ev.Code())
		})
	}
}

func TestKeyEventPrintable(t *testing.T) {
	t.Parallel()

	assert.True(t, RuneEvent('a').printable())
	assert.True(t, RuneEvent('あ').printable())
	assert.True(t, KeyEvent{Key: KeyRune, Rune: 'A', Mod: ModShift}.printable())
	assert.False(t, CtrlEvent('a').printable())
	assert.False(t, KeyEvent{Key: KeyRune, Rune: 'a', Mod: ModAlt}.printable())
	assert.False(t, SpecialEvent(KeyEnter).printable())
	assert.False(t, RuneEvent('\t').printable())
}
