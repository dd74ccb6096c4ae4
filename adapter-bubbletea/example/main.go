package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	editor "github.com/dropterm/multicaret/adapter-bubbletea"
)

type Model struct {
	editor editor.Model
	file   string
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			if err := os.WriteFile(m.file, []byte(m.editor.Content()), 0644); err != nil {
				return m, m.editor.DispatchError(err)
			}
			return m, m.editor.DispatchMessage("saved " + m.file)
		}

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

func main() {
	file := "example.go"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	textEditor := editor.New(80, 20)
	textEditor.Focus()
	textEditor.SetLanguage("go", "catppuccin-mocha")

	if content, err := os.ReadFile(file); err == nil {
		textEditor.SetContent(string(content))
	} else {
		log.Warn("starting with an empty buffer", "file", file, "err", err)
	}

	m := Model{
		editor: textEditor,
		file:   file,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal("error running program", "err", err)
	}
}
