// ABOUTME: Text form component built on bubbles textinput
// ABOUTME: Tracks focus, masks secrets and reports edits, blurs and submits

package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/careervista/careervista-cli/internal/tui/icons"
	"github.com/careervista/careervista-cli/internal/tui/styles"
	"github.com/careervista/careervista-cli/internal/validate"
)

// Field describes one input.
type Field struct {
	Key         validate.Field
	Label       string
	Placeholder string
	Secret      bool
	CharLimit   int
}

// Event is what a key press did to the form.
type Event struct {
	Changed bool
	Field   validate.Field
	Value   string

	// Blurred is set when focus left a field.
	Blurred validate.Field
	Submit  bool
}

// Form is an ordered set of text inputs with one focused at a time.
type Form struct {
	fields []Field
	inputs []textinput.Model
	focus  int
	width  int
}

// New builds a form with the first field focused.
func New(fields ...Field) *Form {
	f := &Form{fields: fields, inputs: make([]textinput.Model, len(fields))}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fd.Placeholder
		ti.CharLimit = 256
		if fd.CharLimit > 0 {
			ti.CharLimit = fd.CharLimit
		}
		ti.Width = 40
		if fd.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// Init starts the cursor blinking.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Focused is the key of the field with focus.
func (f *Form) Focused() validate.Field {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].Key
}

// FocusedSecret reports whether the focused field masks its input.
func (f *Form) FocusedSecret() bool {
	return len(f.fields) > 0 && f.fields[f.focus].Secret
}

func (f *Form) index(key validate.Field) int {
	for i, fd := range f.fields {
		if fd.Key == key {
			return i
		}
	}
	return -1
}

// Value returns the text in key's input.
func (f *Form) Value(key validate.Field) string {
	if i := f.index(key); i >= 0 {
		return f.inputs[i].Value()
	}
	return ""
}

// SetValue replaces the text in key's input.
func (f *Form) SetValue(key validate.Field, value string) {
	if i := f.index(key); i >= 0 {
		f.inputs[i].SetValue(value)
	}
}

// Secrets lists the masked fields in form order.
func (f *Form) Secrets() []validate.Field {
	var out []validate.Field
	for _, fd := range f.fields {
		if fd.Secret {
			out = append(out, fd.Key)
		}
	}
	return out
}

// SetVisible switches a secret field between masked and plain text.
func (f *Form) SetVisible(key validate.Field, visible bool) {
	i := f.index(key)
	if i < 0 || !f.fields[i].Secret {
		return
	}
	if visible {
		f.inputs[i].EchoMode = textinput.EchoNormal
	} else {
		f.inputs[i].EchoMode = textinput.EchoPassword
	}
}

// SetWidth sizes every input.
func (f *Form) SetWidth(width int) {
	f.width = width
	w := width - 6
	if w < 20 {
		w = 20
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *Form) move(delta int) Event {
	if len(f.inputs) == 0 {
		return Event{}
	}
	left := f.fields[f.focus].Key
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return Event{Blurred: left}
}

// Update handles one key. Enter on the last field submits; elsewhere it
// moves on like tab.
func (f *Form) Update(msg tea.KeyMsg) (Event, tea.Cmd) {
	if len(f.inputs) == 0 {
		return Event{}, nil
	}
	switch msg.String() {
	case "tab", "down":
		return f.move(1), nil
	case "shift+tab", "up":
		return f.move(-1), nil
	case "enter":
		if f.focus == len(f.inputs)-1 {
			return Event{Blurred: f.fields[f.focus].Key, Submit: true}, nil
		}
		return f.move(1), nil
	}

	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	after := f.inputs[f.focus].Value()
	if after == before {
		return Event{}, cmd
	}
	return Event{Changed: true, Field: f.fields[f.focus].Key, Value: after}, cmd
}

// Forward passes non-key messages, such as cursor blinks, to the focused
// input.
func (f *Form) Forward(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders labels, inputs and each field's error underneath.
func (f *Form) View(errs validate.Errors, st styles.Styles) string {
	var b strings.Builder
	for i, fd := range f.fields {
		label := fd.Label
		if fd.Secret {
			eye := icons.EyeOff.String()
			if f.inputs[i].EchoMode == textinput.EchoNormal {
				eye = icons.Eye.String()
			}
			label += " " + eye
		}
		if i == f.focus {
			b.WriteString(st.Selected.Render(label))
		} else {
			b.WriteString(st.Label.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
		if msg := errs[fd.Key]; msg != "" {
			b.WriteString(st.Error.Render("  " + msg))
			b.WriteString("\n")
		}
		if i < len(f.fields)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
