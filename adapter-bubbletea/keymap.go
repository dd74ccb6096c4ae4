package bubble_adapter

import (
	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/dropterm/multicaret/core"
)

// keyCommands maps key chords to editor commands. Hosts that need different
// bindings can bypass Update and drive the editor through GetEditor().Do.
var keyCommands = map[string]editor.Command{
	"ctrl+d":   editor.CmdSelectNextOccurrence,
	"alt+d":    editor.CmdFuzzySelectNextOccurrence,
	"ctrl+u":   editor.CmdDeselectLast,
	"alt+up":   editor.CmdColumnSelectUp,
	"alt+down": editor.CmdColumnSelectDown,
	"esc":      editor.CmdClearCursors,

	"ctrl+z": editor.CmdUndo,
	"ctrl+y": editor.CmdRedo,

	"ctrl+c": editor.CmdCopy,
	"ctrl+x": editor.CmdCut,
	"ctrl+v": editor.CmdPaste,

	"left":       editor.CmdMoveLeft,
	"right":      editor.CmdMoveRight,
	"up":         editor.CmdMoveUp,
	"down":       editor.CmdMoveDown,
	"ctrl+left":  editor.CmdMoveWordLeft,
	"ctrl+right": editor.CmdMoveWordRight,
	"home":       editor.CmdMoveLineStart,
	"end":        editor.CmdMoveLineEnd,
	"ctrl+home":  editor.CmdMoveBufferStart,
	"ctrl+end":   editor.CmdMoveBufferEnd,
	"pgup":       editor.CmdPageUp,
	"pgdown":     editor.CmdPageDown,

	"shift+left":       editor.CmdSelectLeft,
	"shift+right":      editor.CmdSelectRight,
	"shift+up":         editor.CmdSelectUp,
	"shift+down":       editor.CmdSelectDown,
	"ctrl+shift+left":  editor.CmdSelectWordLeft,
	"ctrl+shift+right": editor.CmdSelectWordRight,
	"shift+home":       editor.CmdSelectLineStart,
	"shift+end":        editor.CmdSelectLineEnd,
}

// commandForKey resolves a bubbletea key message to a bound command.
func commandForKey(msg tea.KeyMsg) (editor.Command, bool) {
	cmd, ok := keyCommands[msg.String()]
	return cmd, ok
}

// insertionForKey resolves a key message to the text it types, if any.
// Backspace and delete are handled here too so every editing key funnels
// through one place.
func insertionForKey(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return "\n", true
	case tea.KeyTab:
		return "\t", true
	case tea.KeySpace:
		return " ", true
	case tea.KeyRunes:
		if msg.Alt {
			return "", false
		}
		return string(msg.Runes), true
	}
	return "", false
}

// isEditingCommand reports whether a command can mutate the document and so
// invalidates the syntax highlight cache.
func isEditingCommand(cmd editor.Command) bool {
	switch cmd {
	case editor.CmdUndo, editor.CmdRedo, editor.CmdCut, editor.CmdPaste:
		return true
	}
	return false
}
