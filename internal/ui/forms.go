package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs with one focused at a time.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) form {
	f := form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l
		in.CharLimit = 2000
		in.Width = 50
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f form) last() bool { return f.focus == len(f.inputs)-1 }

func (f form) value(i int) string { return f.inputs[i].Value() }

func (f *form) setValues(values ...string) {
	for i, v := range values {
		if i < len(f.inputs) {
			f.inputs[i].SetValue(v)
		}
	}
}

func (f *form) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.setFocus(0)
}

// mask hides the input at i, for passwords.
func (f *form) mask(i int) {
	f.inputs[i].EchoMode = textinput.EchoPassword
	f.inputs[i].EchoCharacter = '•'
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(styles.label.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	return b.String()
}
