package components

import (
	"github.com/atomicstack/lazyadb/internal/format/table"
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
)

// HelpModal lists the active key bindings by section.
type HelpModal struct{}

func NewHelpModal() *HelpModal { return &HelpModal{} }

func (m *HelpModal) Kind() Kind { return KindHelp }

func (m *HelpModal) Update(action.Action) []command.Command { return nil }

func (m *HelpModal) Draw(ctx DrawContext) string {
	styles := ctx.styles()
	lines := HelpLines(styles, ctx.keys())
	height := min(len(lines)+1+styles.Modal.GetVerticalFrameSize(), max(ctx.Height, 3))
	return box(*styles.Modal, styles.ModalTitle.Render("Keys"), lines, ctx.Width, height)
}

// HelpLines renders every section of keys as aligned key/description rows.
func HelpLines(styles *theme.Styles, keys *keymap.Keymap) []string {
	var lines []string
	for _, section := range keymap.Sections {
		bindings := keys.Bindings(section)
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.Label.Render(string(section)))
		rows := make([][]string, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			rows = append(rows, []string{"  " + h.Key, h.Desc})
		}
		lines = append(lines, table.Format(rows, nil)...)
	}
	return lines
}
