package ui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/ui/components"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
	"github.com/charmbracelet/x/ansi"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	minListWidth   = 28
	maxModalWidth  = 64
)

// View renders the dashboard.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.SetContent(m.Render())
	return v
}

// Render returns the current frame, redrawing only when something visible
// changed since the last call.
func (m *Model) Render() string {
	if !m.dirty && m.frame != "" {
		return m.frame
	}
	m.frame = m.draw()
	m.dirty = false
	return m.frame
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

func (m *Model) drawContext(width, height int) components.DrawContext {
	return components.DrawContext{
		Focus:  m.machine.Focus,
		Config: m.config,
		Width:  width,
		Height: height,
	}
}

func (m *Model) draw() string {
	width, height := m.size()

	header := m.headerView(width)
	footer := ""
	bodyHeight := height - lipgloss.Height(header)
	if m.showFooter {
		footer = m.footerView(width)
		bodyHeight -= lipgloss.Height(footer)
	}
	bodyHeight = max(bodyHeight, 2)

	leftWidth := min(max(width*2/5, minListWidth), width)
	rightWidth := max(width-leftWidth, 1)
	devicesHeight := max(bodyHeight/2, 1)
	emulatorsHeight := max(bodyHeight-devicesHeight, 1)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.panes[components.KindDevices].Draw(m.drawContext(leftWidth, devicesHeight)),
		m.panes[components.KindEmulators].Draw(m.drawContext(leftWidth, emulatorsHeight)),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		left,
		m.panes[components.KindContent].Draw(m.drawContext(rightWidth, bodyHeight)),
	)

	if m.modal != nil {
		modalWidth := min(width-4, maxModalWidth)
		overlay := m.modal.Draw(m.drawContext(max(modalWidth, 10), max(bodyHeight-2, 3)))
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, overlay)
	}

	if footer == "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) headerView(width int) string {
	running := 0
	for _, img := range m.images.Entries() {
		if img.Running() {
			running++
		}
	}
	line := fmt.Sprintf("lazyadb  %d devices  %d emulators (%d running)", m.devices.Len(), m.images.Len(), running)
	return m.config.Styles.Header.Render(ansi.Truncate(line, width, "…"))
}

// footerView shows the bindings for the section receiving input.
func (m *Model) footerView(width int) string {
	keys := m.router.Keys()
	var bindings []key.Binding
	switch m.machine.Modal {
	case uistate.ModalHelp:
		bindings = keys.Bindings(keymap.Help)
	case uistate.ModalPicker:
		bindings = keys.Bindings(keymap.Picker)
	default:
		bindings = append(keys.Bindings(uistate.PanelSection(m.machine.Focus)), keys.Bindings(keymap.Global)...)
	}
	line := ansi.Truncate(m.help.ShortHelpView(bindings), width, "…")
	return m.config.Styles.Footer.Render(line)
}
