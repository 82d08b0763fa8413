package ui

import (
	"reflect"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/backend"
	"github.com/atomicstack/lazyadb/internal/data/dispatcher"
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	"github.com/atomicstack/lazyadb/internal/ui/components"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

const (
	defaultRefreshInterval = 2 * time.Second
	defaultTickInterval    = 250 * time.Millisecond
	forceQuitKey           = "ctrl+c"
)

type msgHandler func(tea.Msg) tea.Cmd

// tickMsg drives the fixed-interval redraw.
type tickMsg struct {
	at time.Time
}

// announceMsg carries an action enqueued by a component for a later update.
type announceMsg struct {
	action action.Action
}

// Options configures a Model.
type Options struct {
	Bridge          adb.Bridge
	Watcher         *backend.Watcher
	Keys            *keymap.Keymap
	Styles          *theme.Styles
	RefreshInterval time.Duration
	TickInterval    time.Duration
	Width           int
	Height          int
	ShowFooter      bool
}

// Model implements the Bubble Tea model for the device dashboard.
type Model struct {
	machine uistate.Machine
	router  uistate.Router
	config  components.Config
	panes   [3]components.Component
	modal   components.Component
	help    help.Model

	devices    state.DeviceStore
	images     state.EmulatorStore
	telemetry  state.TelemetryStore
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	backend    *backend.Watcher

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	tickInterval time.Duration

	dirty bool
	frame string

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the stores, components and command bus around bridge.
func NewModel(opts Options) *Model {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.Default()
	}
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}

	devices := state.NewDeviceStore()
	images := state.NewEmulatorStore()
	telemetry := state.NewTelemetryStore()
	m := &Model{
		router:       uistate.NewRouter(keys),
		config:       components.Config{Styles: styles, Keys: keys},
		help:         help.New(),
		devices:      devices,
		images:       images,
		telemetry:    telemetry,
		dispatcher:   dispatcher.New(devices, images),
		bus:          command.New(opts.Bridge),
		backend:      opts.Watcher,
		showFooter:   opts.ShowFooter,
		tickInterval: tick,
		dirty:        true,
	}
	m.panes = [3]components.Component{
		components.NewDevicesPane(devices, refresh),
		components.NewEmulatorsPane(images, devices),
		components.NewContentPane(devices, telemetry),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.bus.Execute(command.RefreshDevices{}), m.scheduleTick()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyPressMsg{}):   m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(announceMsg{}):       m.handleAnnounceMsg,
		reflect.TypeOf(command.Result{}):    m.handleResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	name := keyMsg.String()
	if name == forceQuitKey {
		events.UI.Route(name, "loop", action.Quit{}.Name())
		return tea.Quit
	}
	act, section, ok := m.router.Route(m.machine, name)
	if !ok {
		events.UI.Drop(name, m.machine.Modal.String())
		return nil
	}
	events.UI.Route(name, string(section), act.Name())
	return m.apply(act)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	return m.apply(action.Resize{Width: size.Width, Height: size.Height})
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	return tea.Batch(m.apply(action.Tick{At: tick.at}), m.scheduleTick())
}

func (m *Model) handleAnnounceMsg(msg tea.Msg) tea.Cmd {
	ann, ok := msg.(announceMsg)
	if !ok || ann.action == nil {
		return nil
	}
	return m.apply(ann.action)
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.bus.Done(res.Key)
	if res.Action == nil {
		return nil
	}
	return m.apply(res.Action)
}

// apply runs one action through the state machine, the dispatcher and every
// live component, then executes the commands they produced.
func (m *Model) apply(act action.Action) tea.Cmd {
	events.Action.Dispatch(act.Name())
	if _, ok := act.(action.Quit); ok {
		return tea.Quit
	}
	if resize, ok := act.(action.Resize); ok {
		m.resize(resize.Width, resize.Height)
	}

	prevFocus, prevModal := m.machine.Focus, m.machine.Modal
	m.machine.Apply(act)
	m.syncMachine(prevFocus, prevModal)

	var cmds []tea.Cmd
	res := m.dispatcher.Handle(act)
	if res.DeviceSelectionChanged {
		cmds = append(cmds, announce(action.DeviceSelected{Device: res.Selected}))
	}

	var produced []command.Command
	for _, pane := range m.panes {
		produced = append(produced, pane.Update(act)...)
	}
	if m.modal != nil {
		produced = append(produced, m.modal.Update(act)...)
	}
	cmds = append(cmds, m.run(produced)...)

	m.dirty = true
	return batch(cmds)
}

// run applies local commands in order and hands bridged ones to the bus.
func (m *Model) run(cmds []command.Command) []tea.Cmd {
	var out []tea.Cmd
	for _, c := range cmds {
		prevFocus, prevModal := m.machine.Focus, m.machine.Modal
		switch c := c.(type) {
		case command.Focus:
			m.machine.SetFocus(focusFor(c.Target))
		case command.CloseModal:
			m.machine.CloseModal()
		case command.OpenPicker:
			m.machine.OpenPicker()
		case command.Announce:
			out = append(out, announce(c.Action))
		case command.Bridged:
			if cmd := m.bus.Execute(c); cmd != nil {
				out = append(out, cmd)
			}
		}
		m.syncMachine(prevFocus, prevModal)
	}
	return out
}

// syncMachine traces focus and modal transitions and keeps the live modal
// component matching the machine.
func (m *Model) syncMachine(prevFocus uistate.Focus, prevModal uistate.Modal) {
	if m.machine.Focus != prevFocus {
		events.UI.Focus(prevFocus.String(), m.machine.Focus.String())
	}
	if m.machine.Modal == prevModal {
		return
	}
	events.UI.Modal(prevModal.String(), m.machine.Modal.String())
	switch m.machine.Modal {
	case uistate.ModalHelp:
		m.modal = components.NewHelpModal()
	case uistate.ModalPicker:
		m.modal = components.NewPickerModal(m.images)
	default:
		m.modal = nil
	}
}

func focusFor(t command.Target) uistate.Focus {
	switch t {
	case command.TargetEmulators:
		return uistate.FocusEmulators
	case command.TargetContent:
		return uistate.FocusContent
	default:
		return uistate.FocusDevices
	}
}

func (m *Model) resize(width, height int) {
	events.UI.Resize(width, height)
	if !m.fixedWidth {
		m.width = width
	}
	if !m.fixedHeight {
		m.height = height
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func announce(a action.Action) tea.Cmd {
	return func() tea.Msg {
		return announceMsg{action: a}
	}
}

func batch(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// Focus reports the focused panel.
func (m *Model) Focus() uistate.Focus { return m.machine.Focus }

// Modal reports the open modal, if any.
func (m *Model) Modal() uistate.Modal { return m.machine.Modal }

// Devices exposes the device roster.
func (m *Model) Devices() state.DeviceStore { return m.devices }

// Emulators exposes the emulator image list.
func (m *Model) Emulators() state.EmulatorStore { return m.images }

// Telemetry exposes the selected device's diagnostics.
func (m *Model) Telemetry() state.TelemetryStore { return m.telemetry }
