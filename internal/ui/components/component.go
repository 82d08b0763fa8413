// Package components implements the dashboard panels and modals. Each one
// reacts to actions through Update and renders itself through Draw; none of
// them own roster data, they read the shared stores.
package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
	"github.com/charmbracelet/x/ansi"
)

// Kind identifies a component variant.
type Kind int

const (
	KindDevices Kind = iota
	KindEmulators
	KindContent
	KindHelp
	KindPicker
)

func (k Kind) String() string {
	switch k {
	case KindDevices:
		return "devices"
	case KindEmulators:
		return "emulators"
	case KindContent:
		return "content"
	case KindHelp:
		return "help"
	case KindPicker:
		return "picker"
	default:
		return "unknown"
	}
}

// Component is implemented by every panel and modal. Update ignores actions
// it does not handle and never blocks; Draw has no side effects.
type Component interface {
	Kind() Kind
	Update(action.Action) []command.Command
	Draw(DrawContext) string
}

// Config is the static configuration shared with Draw.
type Config struct {
	Styles *theme.Styles
	Keys   *keymap.Keymap
}

// DrawContext is the read-only view handed to Draw.
type DrawContext struct {
	Focus  uistate.Focus
	Config Config
	Width  int
	Height int
}

func (c DrawContext) styles() *theme.Styles {
	if c.Config.Styles == nil {
		return theme.Default()
	}
	return c.Config.Styles
}

func (c DrawContext) keys() *keymap.Keymap {
	if c.Config.Keys == nil {
		return keymap.Default()
	}
	return c.Config.Keys
}

// box renders lines inside a bordered frame exactly width x height cells.
func box(style lipgloss.Style, title string, lines []string, width, height int) string {
	innerW := max(width-style.GetHorizontalFrameSize(), 1)
	innerH := max(height-style.GetVerticalFrameSize(), 1)
	body := make([]string, 0, innerH)
	if title != "" {
		body = append(body, title)
	}
	body = append(body, lines...)
	if len(body) > innerH {
		body = body[:innerH]
	}
	for len(body) < innerH {
		body = append(body, "")
	}
	for i, line := range body {
		body[i] = fit(line, innerW)
	}
	return style.Render(strings.Join(body, "\n"))
}

// fit truncates or pads line to exactly width cells.
func fit(line string, width int) string {
	line = ansi.Truncate(line, width, "…")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

// listRows renders labels with the cursor row highlighted, scrolled so the
// cursor stays in view.
func listRows(styles *theme.Styles, vp *uistate.Viewport, labels []string, cursor int, focused bool, visible int) []string {
	start, end := vp.Follow(cursor, len(labels), visible)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := labels[i]
		switch {
		case i == cursor && focused:
			rows = append(rows, styles.ActiveItem.Render("› "+label))
		case i == cursor:
			rows = append(rows, styles.SelectedItem.Render("› "+label))
		default:
			rows = append(rows, styles.Item.Render("  "+label))
		}
	}
	return rows
}

func panelStyle(styles *theme.Styles, focused bool) lipgloss.Style {
	if focused {
		return *styles.PanelFocused
	}
	return *styles.Panel
}

func titleFor(styles *theme.Styles, title string, focused bool) string {
	if focused {
		return styles.TitleFocused.Render(title)
	}
	return styles.Title.Render(title)
}

// visibleRows is the list height left inside a panel after frame and title.
func visibleRows(style lipgloss.Style, height int) int {
	return max(height-style.GetVerticalFrameSize()-1, 1)
}
