// Package ui contains the Bubble Tea program that powers the device
// dashboard. Model is the single consumer of every event and the only writer
// of dashboard state.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. A typed handler
//     registry maps each tea.Msg to a focused function: key presses, window
//     resizes, redraw ticks, command results and device-change events.
//   - Key presses go through the state.Router, which resolves at most one
//     action for the current focus and modal. ctrl+c always quits.
//   - Every action passes through apply: the focus/modal machine first, then
//     the dispatcher (roster replacement and selection reconciliation), then
//     every pane and the open modal. Components answer with commands.
//   - Local commands (focus, close modal, open picker, announce) are applied
//     immediately. Bridge commands go to the command.Bus, which runs them off
//     the loop and delivers a command.Result carrying the follow-up action.
//
// State ownership:
//   - Device and emulator rosters live in internal/state stores written only
//     by the dispatcher. Telemetry for the selected device is owned by the
//     content pane through its store.
//   - Components read the stores during Draw; frames are cached until an
//     action marks the model dirty.
//
// Backend interactions:
//   - A backend.Watcher streams bridge device changes; each one becomes a
//     RefreshDevices action. When the feed closes the periodic refresh driven
//     by redraw ticks keeps the roster current.
package ui
