package consolekit

// KeyMapping binds key identities to key press handlers.
//
// Keys without a binding go to the fallback handler, so an unmapped key is
// never an error. A mapping is built once and handed to the editor; it must
// not be changed while a ReadLine call is running.
type KeyMapping struct {
	bindings map[KeyCode]KeyPressHandler
	fallback KeyPressHandler
}

// NewKeyMapping creates an empty mapping that sends every key to fallback.
// A nil fallback ignores unmapped keys.
func NewKeyMapping(fallback KeyPressHandler) *KeyMapping {
	if fallback == nil {
		fallback = KeyPressHandlerFunc(func(KeyEvent, *Editor) error { return nil })
	}
	return &KeyMapping{
		bindings: make(map[KeyCode]KeyPressHandler),
		fallback: fallback,
	}
}

// NewDefaultKeyMapping creates the default key bindings for the editor.
//
// Default key bindings:
//   - Left/Right: Move cursor
//   - Backspace: Delete character backwards
//   - Delete: Delete character forwards
//   - Home/End: Move to beginning/end of line
//   - Tab / Shift+Tab: Complete and cycle suggestions forwards/backwards
//   - Ctrl+V: Paste from the system clipboard
//   - Anything else: Insert the typed character, if printable
//
// Enter is not bound: it always ends ReadLine.
//
// Example:
//
//	km := consolekit.NewDefaultKeyMapping()
//	// Escape clears the line
//	km.Bind(consolekit.SpecialCode(consolekit.KeyEscape), consolekit.KeyPressHandlerFunc(
//		func(_ consolekit.KeyEvent, ed *consolekit.Editor) error {
//			return ed.ReplaceText("")
//		}))
//	ed := consolekit.NewEditor(console, consolekit.WithKeyMapping(km))
func NewDefaultKeyMapping() *KeyMapping {
	km := NewKeyMapping(LiteralHandler{})

	km.Bind(SpecialCode(KeyLeft), ArrowHandler{})
	km.Bind(SpecialCode(KeyRight), ArrowHandler{})
	km.Bind(SpecialCode(KeyBackspace), BackspaceHandler{})
	km.Bind(SpecialCode(KeyDelete), DeleteHandler{})
	km.Bind(SpecialCode(KeyHome), HomeEndHandler{})
	km.Bind(SpecialCode(KeyEnd), HomeEndHandler{})
	km.Bind(SpecialCode(KeyTab), TabHandler{})
	km.Bind(RuneCode('v'), NewPasteHandler(SystemClipboard()))

	return km
}

// Bind adds or replaces the handler for a key.
func (km *KeyMapping) Bind(code KeyCode, handler KeyPressHandler) {
	km.bindings[code] = handler
}

// Unbind removes the binding of a key so it goes to the fallback handler.
func (km *KeyMapping) Unbind(code KeyCode) {
	delete(km.bindings, code)
}

// Fallback returns the handler for unmapped keys.
func (km *KeyMapping) Fallback() KeyPressHandler {
	return km.fallback
}

// Lookup returns the handler bound to the key of ev, or the fallback handler.
func (km *KeyMapping) Lookup(ev KeyEvent) KeyPressHandler {
	if h, ok := km.bindings[ev.Code()]; ok {
		return h
	}
	return km.fallback
}
