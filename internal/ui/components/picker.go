package components

import (
	"github.com/atomicstack/lazyadb/internal/roster"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

// PickerModal is a modal emulator chooser with its own cursor over the
// shared image list.
type PickerModal struct {
	images   state.EmulatorStore
	cursor   int
	selected string
	viewport uistate.Viewport
}

func NewPickerModal(images state.EmulatorStore) *PickerModal {
	m := &PickerModal{images: images, cursor: images.Index()}
	m.selected = roster.KeyAt(images.Entries(), m.cursor, roster.ImageKey)
	return m
}

func (m *PickerModal) Kind() Kind { return KindPicker }

// Cursor returns the highlighted row.
func (m *PickerModal) Cursor() int { return m.cursor }

func (m *PickerModal) Update(a action.Action) []command.Command {
	switch a.(type) {
	case action.EmulatorsUpdated:
		entries := m.images.Entries()
		m.cursor, _ = roster.Reconcile(entries, m.cursor, m.selected, roster.ImageKey)
		m.selected = roster.KeyAt(entries, m.cursor, roster.ImageKey)
	case action.PickerUp:
		m.move(-1)
	case action.PickerDown:
		m.move(1)
	case action.PickerSelect:
		entries := m.images.Entries()
		if m.cursor >= len(entries) {
			return nil
		}
		return activateImage(entries[m.cursor], true)
	case action.PickerKill:
		entries := m.images.Entries()
		if m.cursor >= len(entries) || !entries[m.cursor].Running() {
			return nil
		}
		return []command.Command{command.KillEmulator{Serial: entries[m.cursor].RunningSerial}}
	}
	return nil
}

func (m *PickerModal) move(delta int) {
	entries := m.images.Entries()
	if len(entries) == 0 {
		m.cursor = 0
		m.selected = ""
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(entries)-1)
	m.selected = entries[m.cursor].Name
}

func (m *PickerModal) Draw(ctx DrawContext) string {
	styles := ctx.styles()
	entries := m.images.Entries()
	title := styles.ModalTitle.Render("Emulators")
	var rows []string
	if len(entries) == 0 {
		rows = []string{styles.Placeholder.Render(noImages)}
	} else {
		visible := max(ctx.Height-styles.Modal.GetVerticalFrameSize()-1, 1)
		rows = listRows(styles, &m.viewport, imageLabels(styles, entries), m.cursor, true, visible)
	}
	height := min(len(rows)+1+styles.Modal.GetVerticalFrameSize(), max(ctx.Height, 3))
	return box(*styles.Modal, title, rows, ctx.Width, height)
}
