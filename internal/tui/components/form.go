package components

import (
	"strings"

	"fileparse/internal/tui/common"
	"fileparse/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form holds the API key and file path inputs.
type Form struct {
	inputs [2]textinput.Model
	focus  common.Focus
	labels [2]string
	hint   string
}

func NewForm() *Form {
	key := textinput.New()
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.Width = 48

	file := textinput.New()
	file.Width = 48

	f := &Form{inputs: [2]textinput.Model{key, file}}
	f.inputs[common.FocusKey].Focus()
	return f
}

// SetLabels sets the label and placeholder text of both inputs.
func (f *Form) SetLabels(keyLabel, keyPlaceholder, fileLabel, filePlaceholder string) {
	f.labels = [2]string{keyLabel, fileLabel}
	f.inputs[common.FocusKey].Placeholder = keyPlaceholder
	f.inputs[common.FocusFile].Placeholder = filePlaceholder
}

// SetHint sets the line shown under the file input.
func (f *Form) SetHint(hint string) {
	f.hint = hint
}

// SetKey fills the API key input.
func (f *Form) SetKey(key string) {
	f.inputs[common.FocusKey].SetValue(key)
}

// SetFile fills the file path input.
func (f *Form) SetFile(path string) {
	f.inputs[common.FocusFile].SetValue(path)
}

func (f *Form) Key() string {
	return f.inputs[common.FocusKey].Value()
}

func (f *Form) File() string {
	return strings.TrimSpace(f.inputs[common.FocusFile].Value())
}

func (f *Form) Focus() common.Focus {
	return f.focus
}

// FocusNext moves focus to the other input.
func (f *Form) FocusNext() tea.Cmd {
	f.focus = f.focus.Next()
	for i := range f.inputs {
		if common.Focus(i) == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return textinput.Blink
}

// Update forwards msg to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) View() string {
	var s strings.Builder
	for i := range f.inputs {
		label := styles.Theme.Unselected.Render(f.labels[i])
		if common.Focus(i) == f.focus {
			label = styles.Theme.Selected.Render(f.labels[i])
		}
		s.WriteString(label + "\n")
		s.WriteString(f.inputs[i].View() + "\n")
	}
	if f.hint != "" {
		s.WriteString(styles.Theme.Help.Render(f.hint) + "\n")
	}
	return s.String()
}
