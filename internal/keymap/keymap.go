// Package keymap maps key strings to action names per input section.
package keymap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"
)

// Section groups bindings that apply in one input context.
type Section string

const (
	Global    Section = "global"
	Devices   Section = "devices"
	Emulators Section = "emulators"
	Content   Section = "content"
	Help      Section = "help"
	Picker    Section = "picker"
)

// Sections lists every section in display order.
var Sections = []Section{Global, Devices, Emulators, Content, Help, Picker}

// unbind removes a default binding when used as an override value.
const unbind = "none"

// Keymap is a per-section key -> action-name table.
type Keymap struct {
	sections map[Section]map[string]string
}

var defaults = map[Section]map[string]string{
	Global: {
		"q":         "Quit",
		"tab":       "CycleFocus",
		"shift+tab": "CycleFocusBack",
		"?":         "ToggleHelp",
		"esc":       "CloseModal",
	},
	Devices: {
		"up":   "DeviceListUp",
		"k":    "DeviceListUp",
		"down": "DeviceListDown",
		"j":    "DeviceListDown",
		"r":    "RefreshDevices",
		"d":    "DisconnectDevice",
		"e":    "OpenEmulators",
	},
	Emulators: {
		"up":    "EmulatorListUp",
		"k":     "EmulatorListUp",
		"down":  "EmulatorListDown",
		"j":     "EmulatorListDown",
		"enter": "EmulatorSelect",
		"x":     "KillEmulator",
		"r":     "RefreshEmulators",
	},
	Content: {
		"r": "RefreshTelemetry",
	},
	Help: {
		"esc": "CloseModal",
		"q":   "CloseModal",
		"?":   "ToggleHelp",
	},
	Picker: {
		"up":    "PickerUp",
		"k":     "PickerUp",
		"down":  "PickerDown",
		"j":     "PickerDown",
		"enter": "PickerSelect",
		"x":     "PickerKill",
		"esc":   "CloseModal",
		"q":     "CloseModal",
	},
}

// Default returns the built-in key map.
func Default() *Keymap {
	km := &Keymap{sections: make(map[Section]map[string]string, len(defaults))}
	for section, bindings := range defaults {
		dup := make(map[string]string, len(bindings))
		for k, v := range bindings {
			dup[k] = v
		}
		km.sections[section] = dup
	}
	return km
}

// Load returns the defaults merged with the overrides in path. An empty path
// returns the defaults.
func Load(path string) (*Keymap, error) {
	km := Default()
	if strings.TrimSpace(path) == "" {
		return km, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key map: %w", err)
	}
	if err := km.Merge(data); err != nil {
		return nil, fmt.Errorf("key map %s: %w", path, err)
	}
	return km, nil
}

// Merge applies YAML overrides of the form `section: {key: ActionName}`.
// The value "none" removes a binding.
func (k *Keymap) Merge(data []byte) error {
	var overrides map[string]map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	for name, bindings := range overrides {
		section := Section(name)
		if _, ok := k.sections[section]; !ok {
			return fmt.Errorf("unknown section %q%s", name, suggest(name, sectionNames()))
		}
		for keyName, actionName := range bindings {
			keyName = strings.TrimSpace(keyName)
			if keyName == "" {
				return fmt.Errorf("%s: empty key", name)
			}
			if actionName == unbind {
				delete(k.sections[section], keyName)
				continue
			}
			if _, ok := action.ByName(actionName); !ok {
				return fmt.Errorf("%s.%s: unknown action %q%s", name, keyName, actionName, suggest(actionName, action.Names()))
			}
			k.sections[section][keyName] = actionName
		}
	}
	return nil
}

// Lookup resolves key in section to an action.
func (k *Keymap) Lookup(section Section, keyName string) (action.Action, bool) {
	name, ok := k.sections[section][keyName]
	if !ok {
		return nil, false
	}
	return action.ByName(name)
}

// Bindings returns one key binding per action bound in section, ordered by
// action name.
func (k *Keymap) Bindings(section Section) []key.Binding {
	byAction := map[string][]string{}
	for keyName, actionName := range k.sections[section] {
		byAction[actionName] = append(byAction[actionName], keyName)
	}
	names := make([]string, 0, len(byAction))
	for name := range byAction {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]key.Binding, 0, len(names))
	for _, name := range names {
		keys := byAction[name]
		sort.Strings(keys)
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), action.Describe(name)),
		))
	}
	return out
}

func sectionNames() []string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = string(s)
	}
	return names
}

func suggest(input string, candidates []string) string {
	ranks := fuzzy.RankFindNormalizedFold(input, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return fmt.Sprintf(" (did you mean %q?)", ranks[0].Target)
}
