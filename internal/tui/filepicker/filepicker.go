// ABOUTME: File picker TUI component for choosing a resume to upload
// ABOUTME: Shows recent resumes and a path input, then reads the chosen file

package filepicker

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/careervista/careervista-cli/internal/tui/icons"
	"github.com/careervista/careervista-cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
)

// FileSelectedMsg is sent when a file has been read
type FileSelectedMsg struct {
	Path string
	Data []byte
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// FilePicker is the resume selection component
type FilePicker struct {
	recentFiles []string
	cursor      int
	state       state
	textInput   textinput.Model
	err         string
	width       int
	height      int
	styles      styles.Styles
}

// New creates a picker listing recentFiles
func New(recentFiles []string, st styles.Styles) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/Documents/resume.pdf"
	ti.CharLimit = 512
	ti.Width = 60

	return &FilePicker{
		recentFiles: recentFiles,
		state:       stateList,
		textInput:   ti,
		styles:      st,
	}
}

// Init implements tea.Model
func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width = msg.Width
		fp.height = msg.Height
		return fp, nil

	case tea.KeyMsg:
		fp.err = ""
		if fp.state == stateInput {
			return fp.updateInput(msg)
		}
		return fp.updateList(msg)
	}
	return fp, nil
}

func (fp *FilePicker) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxItems := len(fp.recentFiles) + 1 // +1 for "Enter path..."

	switch msg.String() {
	case "up", "k":
		if fp.cursor > 0 {
			fp.cursor--
		}
	case "down", "j":
		if fp.cursor < maxItems-1 {
			fp.cursor++
		}
	case "enter":
		if fp.cursor < len(fp.recentFiles) {
			return fp.loadFile(fp.recentFiles[fp.cursor])
		}
		fp.state = stateInput
		fp.textInput.Focus()
		return fp, textinput.Blink
	case "esc", "b":
		return fp, func() tea.Msg { return CancelledMsg{} }
	}
	return fp, nil
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		fp.state = stateList
		fp.textInput.SetValue("")
		return fp, nil
	case "enter":
		path := strings.TrimSpace(fp.textInput.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.loadFile(path)
	}

	var cmd tea.Cmd
	fp.textInput, cmd = fp.textInput.Update(msg)
	return fp, cmd
}

// loadFile reads path. Type and size checks happen in the profile editor.
func (fp *FilePicker) loadFile(path string) (tea.Model, tea.Cmd) {
	expandedPath := expandPath(path)

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			fp.err = "File not found: " + path
		case os.IsPermission(err):
			fp.err = "Cannot read file: permission denied"
		default:
			fp.err = "Error reading file: " + err.Error()
		}
		return fp, nil
	}

	return fp, func() tea.Msg {
		return FileSelectedMsg{Path: expandedPath, Data: data}
	}
}

// expandPath expands ~ to the home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

// View implements tea.Model
func (fp *FilePicker) View() string {
	if fp.state == stateInput {
		return fp.viewInput()
	}
	return fp.viewList()
}

func (fp *FilePicker) item(b *strings.Builder, idx int, text string) {
	if idx == fp.cursor {
		b.WriteString("> " + fp.styles.Selected.Render(text) + "\n")
		return
	}
	b.WriteString("  " + fp.styles.Value.UnsetBold().Render(text) + "\n")
}

func (fp *FilePicker) viewList() string {
	var b strings.Builder

	b.WriteString(fp.styles.Title.Render(icons.Resume.String() + " Choose a resume (PDF, 10MB max)"))
	b.WriteString("\n")

	if len(fp.recentFiles) > 0 {
		b.WriteString(fp.styles.Label.Render("Recent files:"))
		b.WriteString("\n")
		for i, path := range fp.recentFiles {
			display := filepath.Base(path) + "  " + path
			if len(display) > fp.width-10 && fp.width > 20 {
				display = "..." + display[len(display)-(fp.width-13):]
			}
			fp.item(&b, i, display)
		}
		dividerWidth := min(40, fp.width-4)
		if dividerWidth < 1 {
			dividerWidth = 40
		}
		b.WriteString(fp.styles.Border.Render(strings.Repeat("─", dividerWidth)))
		b.WriteString("\n")
	}

	fp.item(&b, len(fp.recentFiles), "Enter path...")

	if fp.err != "" {
		b.WriteString("\n")
		b.WriteString(fp.styles.Error.Render("Error: " + fp.err))
	}
	return b.String()
}

func (fp *FilePicker) viewInput() string {
	var b strings.Builder

	b.WriteString(fp.styles.Title.Render("Enter resume path"))
	b.WriteString("\n")
	b.WriteString(fp.textInput.View())

	if fp.err != "" {
		b.WriteString("\n\n")
		b.WriteString(fp.styles.Error.Render("Error: " + fp.err))
	}
	return b.String()
}
