package bubble_adapter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dropterm/multicaret/adapter-bubbletea/highlighter"
	editor "github.com/dropterm/multicaret/core"
)

type Theme struct {
	SelectionStyle          lipgloss.Style
	SecondarySelectionStyle lipgloss.Style
	CursorStyle             lipgloss.Style
	MatchStyle              lipgloss.Style
	StatusLineStyle         lipgloss.Style
	CursorCountStyle        lipgloss.Style
	MessageStyle            lipgloss.Style
	ErrorStyle              lipgloss.Style
	LineNumberStyle         lipgloss.Style
	CurrentLineNumberStyle  lipgloss.Style
}

var DefaultTheme = Theme{
	SelectionStyle:          lipgloss.NewStyle().Background(lipgloss.Color("237")),
	SecondarySelectionStyle: lipgloss.NewStyle().Background(lipgloss.Color("24")),
	CursorStyle:             lipgloss.NewStyle().Reverse(true),
	MatchStyle:              lipgloss.NewStyle().Background(lipgloss.Color("58")),
	StatusLineStyle:         lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	CursorCountStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	MessageStyle:            lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:              lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumberStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
}

// Model renders a multi-caret editor inside a bubbletea program.
type Model struct {
	editor   *editor.Editor
	viewport viewport.Model
	hl       *highlighter.Highlighter

	width           int
	height          int
	showLineNumbers bool
	showStatusLine  bool
	theme           Theme
	StatusLineFunc  func() string

	err       error
	message   string
	isFocused bool

	canUndo bool
	canRedo bool
}

type errMsg error

type messageMsg string

type clearMsg struct{}

// QuitMsg is emitted when the host should close the editor.
type QuitMsg struct{}

type editorSignalMsg struct {
	signal editor.Signal
}

func (m *Model) dispatchClearMsg() tea.Cmd {
	return tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
		return clearMsg{}
	})
}

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

func New(width, height int) Model {
	ed := editor.New("", &atottoClipboard{})
	vp := viewport.New(width, height-2)

	m := Model{
		editor:          ed,
		viewport:        vp,
		showLineNumbers: true,
		showStatusLine:  true,
		theme:           DefaultTheme,
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.editor.SetPageSize(m.viewport.Height)
}

// SetContent replaces the editor content. The existing undo history and any
// secondary cursors do not survive the swap.
func (m *Model) SetContent(content string) {
	m.editor = editor.New(content, &atottoClipboard{})
	m.editor.SetPageSize(m.viewport.Height)
	if m.hl != nil {
		m.hl.Invalidate()
	}
}

// Content returns the current editor content.
func (m *Model) Content() string {
	return m.editor.Document().String()
}

// GetEditor returns the underlying editor instance.
func (m *Model) GetEditor() *editor.Editor {
	return m.editor
}

// SetLanguage enables syntax highlighting with the given chroma lexer and
// style names.
func (m *Model) SetLanguage(language, theme string) {
	m.hl = highlighter.New(language, theme)
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// HideStatusLine controls whether to show the status line at the bottom of
// the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		switch msg.Type {
		case tea.KeyBackspace:
			m.editor.DeleteBackward()
			if m.hl != nil {
				m.hl.Invalidate()
			}
		case tea.KeyDelete:
			m.editor.DeleteForward()
			if m.hl != nil {
				m.hl.Invalidate()
			}
		default:
			if cmd, ok := commandForKey(msg); ok {
				m.editor.Do(cmd)
				if m.hl != nil && isEditingCommand(cmd) {
					m.hl.Invalidate()
				}
			} else if text, ok := insertionForKey(msg); ok {
				m.editor.InsertText(text)
				if m.hl != nil {
					m.hl.Invalidate()
				}
			}
		}

		m.scrollCaretIntoView()

	case editorSignalMsg:
		switch signal := msg.signal.(type) {
		case editor.ErrorSignal:
			_, err := signal.Value()
			m.message = ""
			m.err = err
			cmds = append(cmds, m.dispatchClearMsg())

		case editor.ScrollToSignal:
			m.scrollOffsetIntoView(signal.Value())

		case editor.UndoStateSignal:
			m.canUndo, m.canRedo = signal.Value()

		case editor.EditedSignal:
			if m.hl != nil {
				m.hl.Invalidate()
			}
		}
		cmds = append(cmds, m.listenForEditorUpdate())

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		cmds = append(cmds, m.dispatchClearMsg())

	case errMsg:
		m.message = ""
		m.err = msg
		cmds = append(cmds, m.dispatchClearMsg())

	case clearMsg:
		m.message = ""
		m.err = nil

	case QuitMsg:
		return m, tea.Quit
	}

	var viewportCmd tea.Cmd
	m.viewport, viewportCmd = m.viewport.Update(msg)
	cmds = append(cmds, viewportCmd)

	m.viewport.SetContent(m.renderContent())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	content := m.viewport.View()

	var commandLine string
	if m.message != "" {
		commandLine = m.theme.MessageStyle.Render(m.message)
	}
	if m.err != nil {
		commandLine = m.theme.ErrorStyle.Render(m.err.Error())
	}

	statusLine := m.getStatusLine()

	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	paddingWidth = m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += strings.Repeat(" ", paddingWidth)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	if !m.showStatusLine {
		return ""
	}

	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	var statusLine string
	if count := m.editor.Cursors().Count(); count > 0 {
		statusLine = m.theme.CursorCountStyle.Render(fmt.Sprintf(" %d cursors ", count+1))
	}

	var history string
	if m.canUndo {
		history += "u"
	}
	if m.canRedo {
		history += "r"
	}
	if history != "" {
		history = " [" + history + "]"
	}

	doc := m.editor.Document()
	start, _ := m.editor.Caret().Bounds()
	line := doc.LineOfOffset(start)
	col := start - doc.LineStart(line)
	cursorInfo := fmt.Sprintf("%s %d:%d ", history, line+1, col+1)

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(gap + cursorInfo)

	return statusLine
}

// scrollCaretIntoView keeps the primary caret's line inside the viewport.
func (m *Model) scrollCaretIntoView() {
	start, _ := m.editor.Caret().Bounds()
	m.scrollOffsetIntoView(start)
}

func (m *Model) scrollOffsetIntoView(offset int) {
	line := m.editor.Document().LineOfOffset(offset)
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// DispatchMessage shows a transient message in the command line.
func (m *Model) DispatchMessage(message string) tea.Cmd {
	return func() tea.Msg {
		return messageMsg(message)
	}
}

// DispatchError shows a transient error in the command line.
func (m *Model) DispatchError(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg(err)
	}
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		return editorSignalMsg{signal: <-m.editor.GetUpdateSignalChan()}
	}
}

func (m *Model) lineNumberWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	maxLineNum := m.editor.Document().LineCount()
	maxWidth := len(strconv.Itoa(max(1, maxLineNum)))
	return min(max(4, maxWidth)+1, 10)
}
