package editor

import (
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Editor struct {
	Editing   bool   // Is the editor open
	EditorCmd string // Command to open the editor on shell
}

// EditingFinished is sent once the editor exits. The notes snapshot may
// have changed and should be loaded again.
type EditingFinished struct {
	Err error
}

// this opens up an external editor.
func openEditor(app string, args ...string) tea.Cmd {
	fields := strings.Fields(app)
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	cmd := exec.Command(fields[0], append(fields[1:], args...)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return EditingFinished{Err: err}
	})
}

// EditFile opens path in the configured editor.
func (m *Editor) EditFile(path string) tea.Cmd {
	m.Editing = true
	return openEditor(m.EditorCmd, path)
}

func (m Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	switch msg.(type) {
	case EditingFinished:
		m.Editing = false
	}
	return m, nil
}

// Doesnt render anything
func (m Editor) View() string {
	return ""
}
