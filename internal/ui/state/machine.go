// Package state holds the focus and modal state that decides which panel
// receives keyboard input.
package state

import "github.com/atomicstack/lazyadb/internal/ui/action"

// Focus is the panel that owns keyboard input when no modal is open.
type Focus int

const (
	FocusDevices Focus = iota
	FocusEmulators
	FocusContent
	focusCount
)

func (f Focus) String() string {
	switch f {
	case FocusDevices:
		return "devices"
	case FocusEmulators:
		return "emulators"
	case FocusContent:
		return "content"
	default:
		return "unknown"
	}
}

// Modal is the overlay capturing all input, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalHelp
	ModalPicker
)

func (m Modal) String() string {
	switch m {
	case ModalHelp:
		return "help"
	case ModalPicker:
		return "picker"
	default:
		return "none"
	}
}

// Machine is the focus/modal pair. The zero value is the initial state.
type Machine struct {
	Focus Focus
	Modal Modal
}

// Apply performs the transition for a global action and reports whether the
// state changed. Actions with no global meaning leave the state alone.
func (m *Machine) Apply(a action.Action) bool {
	switch a.(type) {
	case action.CycleFocus:
		return m.cycle(1)
	case action.CycleFocusBack:
		return m.cycle(-1)
	case action.ToggleHelp:
		switch m.Modal {
		case ModalNone:
			m.Modal = ModalHelp
			return true
		case ModalHelp:
			m.Modal = ModalNone
			return true
		}
	case action.CloseModal:
		return m.CloseModal()
	}
	return false
}

func (m *Machine) cycle(step int) bool {
	if m.Modal != ModalNone {
		return false
	}
	m.Focus = Focus((int(m.Focus) + step + int(focusCount)) % int(focusCount))
	return true
}

// SetFocus moves focus directly; ignored while a modal is open.
func (m *Machine) SetFocus(f Focus) bool {
	if m.Modal != ModalNone || f == m.Focus || f < 0 || f >= focusCount {
		return false
	}
	m.Focus = f
	return true
}

// OpenPicker opens the emulator picker when no other modal is open.
func (m *Machine) OpenPicker() bool {
	if m.Modal != ModalNone {
		return false
	}
	m.Modal = ModalPicker
	return true
}

// CloseModal closes any open modal.
func (m *Machine) CloseModal() bool {
	if m.Modal == ModalNone {
		return false
	}
	m.Modal = ModalNone
	return true
}
