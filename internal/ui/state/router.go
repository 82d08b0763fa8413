package state

import (
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/ui/action"
)

// Router turns a key press into at most one action. Modal input capture
// takes precedence over the focused panel, which takes precedence over the
// global section.
type Router struct {
	keys *keymap.Keymap
}

func NewRouter(keys *keymap.Keymap) Router {
	if keys == nil {
		keys = keymap.Default()
	}
	return Router{keys: keys}
}

// Keys exposes the key map the router resolves against.
func (r Router) Keys() *keymap.Keymap {
	return r.keys
}

// Route resolves key for machine and reports the section that matched.
func (r Router) Route(m Machine, key string) (action.Action, keymap.Section, bool) {
	switch m.Modal {
	case ModalHelp:
		if a, ok := r.keys.Lookup(keymap.Help, key); ok && acceptedByHelp(a) {
			return a, keymap.Help, true
		}
		return nil, "", false
	case ModalPicker:
		if a, ok := r.keys.Lookup(keymap.Picker, key); ok && acceptedByPicker(a) {
			return a, keymap.Picker, true
		}
		return nil, "", false
	}

	if a, ok := r.keys.Lookup(keymap.Global, key); ok {
		if _, toggle := a.(action.ToggleHelp); toggle {
			return a, keymap.Global, true
		}
	}
	section := PanelSection(m.Focus)
	if a, ok := r.keys.Lookup(section, key); ok {
		return a, section, true
	}
	if a, ok := r.keys.Lookup(keymap.Global, key); ok {
		return a, keymap.Global, true
	}
	return nil, "", false
}

// PanelSection returns the key map section for a focused panel.
func PanelSection(f Focus) keymap.Section {
	switch f {
	case FocusEmulators:
		return keymap.Emulators
	case FocusContent:
		return keymap.Content
	default:
		return keymap.Devices
	}
}

func acceptedByHelp(a action.Action) bool {
	switch a.(type) {
	case action.CloseModal, action.ToggleHelp:
		return true
	}
	return false
}

func acceptedByPicker(a action.Action) bool {
	switch a.(type) {
	case action.PickerUp, action.PickerDown, action.PickerSelect, action.PickerKill, action.CloseModal:
		return true
	}
	return false
}
