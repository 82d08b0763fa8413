package ui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/lazyadb/internal/backend"
	"github.com/atomicstack/lazyadb/internal/logging"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/ui/action"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return tea.Batch(cmd, waitForBackendEvent(m.backend))
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent turns a device change into a roster refresh. A closed
// feed leaves the periodic refresh in charge.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	switch evt.Kind {
	case backend.KindDeviceChange:
		change := evt.Change
		events.Device.Changed(change.Serial, change.OldState.String(), change.NewState.String(), evt.Batched)
		return m.apply(action.RefreshDevices{})
	case backend.KindFeedClosed:
		if evt.Err != nil {
			logging.Error(evt.Err)
		}
		m.backend = nil
	}
	return nil
}
