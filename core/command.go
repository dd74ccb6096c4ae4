package core

// Command identifies a bound editor operation. The host maps key chords to
// commands however it likes; the engine resolves each command to its handler
// once, at construction, rather than parsing binding strings at runtime.
type Command int

const (
	CmdNone Command = iota

	// Multi-cursor
	CmdSelectNextOccurrence
	CmdFuzzySelectNextOccurrence
	CmdDeselectLast
	CmdColumnSelectUp
	CmdColumnSelectDown
	CmdClearCursors

	// History
	CmdUndo
	CmdRedo

	// Clipboard
	CmdCopy
	CmdCut
	CmdPaste

	// Caret motion, broadcast to all cursors
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveWordLeft
	CmdMoveWordRight
	CmdMoveLineStart
	CmdMoveLineEnd
	CmdMoveBufferStart
	CmdMoveBufferEnd
	CmdPageUp
	CmdPageDown

	// Selection-extending motion
	CmdSelectLeft
	CmdSelectRight
	CmdSelectUp
	CmdSelectDown
	CmdSelectWordLeft
	CmdSelectWordRight
	CmdSelectLineStart
	CmdSelectLineEnd
)

// Do executes a bound command. Returns false for unbound commands and for
// operations that turned out to be no-ops (nothing to match, empty undo
// stack, ...).
func (e *Editor) Do(cmd Command) bool {
	if fn, ok := e.dispatch[cmd]; ok {
		return fn()
	}
	return false
}

// bindCommands builds the static dispatch table.
func (e *Editor) bindCommands() {
	e.dispatch = map[Command]func() bool{
		CmdSelectNextOccurrence:      func() bool { return e.cursors.MatchCursor(false) },
		CmdFuzzySelectNextOccurrence: func() bool { return e.cursors.MatchCursor(true) },
		CmdDeselectLast:              func() bool { return e.cursors.UnmatchCursor() },
		CmdColumnSelectUp:            func() bool { return e.cursors.ColumnSelect(-1) },
		CmdColumnSelectDown:          func() bool { return e.cursors.ColumnSelect(1) },
		CmdClearCursors: func() bool {
			e.cursors.ClearCursors()
			return true
		},

		CmdUndo: func() bool { return e.Undo() },
		CmdRedo: func() bool { return e.Redo() },

		CmdCopy: func() bool {
			if err := e.Copy(); err != nil {
				e.DispatchError(ErrCopyFailedId, err)
				return false
			}
			return true
		},
		CmdCut: func() bool {
			if err := e.Cut(); err != nil {
				e.DispatchError(ErrCutFailedId, err)
				return false
			}
			return true
		},
		CmdPaste: func() bool {
			if err := e.Paste(); err != nil {
				e.DispatchError(ErrPasteFailedId, err)
				return false
			}
			return true
		},

		CmdMoveLeft:        e.motion(StepChar, -1, false),
		CmdMoveRight:       e.motion(StepChar, 1, false),
		CmdMoveUp:          e.motion(StepLine, -1, false),
		CmdMoveDown:        e.motion(StepLine, 1, false),
		CmdMoveWordLeft:    e.motion(StepWord, -1, false),
		CmdMoveWordRight:   e.motion(StepWord, 1, false),
		CmdMoveLineStart:   e.motion(StepLineEnd, -1, false),
		CmdMoveLineEnd:     e.motion(StepLineEnd, 1, false),
		CmdMoveBufferStart: e.motion(StepBufferEdge, -1, false),
		CmdMoveBufferEnd:   e.motion(StepBufferEdge, 1, false),
		CmdPageUp: func() bool {
			e.cursors.MoveCaret(StepPage, -e.pageSize, false)
			return true
		},
		CmdPageDown: func() bool {
			e.cursors.MoveCaret(StepPage, e.pageSize, false)
			return true
		},

		CmdSelectLeft:      e.motion(StepChar, -1, true),
		CmdSelectRight:     e.motion(StepChar, 1, true),
		CmdSelectUp:        e.motion(StepLine, -1, true),
		CmdSelectDown:      e.motion(StepLine, 1, true),
		CmdSelectWordLeft:  e.motion(StepWord, -1, true),
		CmdSelectWordRight: e.motion(StepWord, 1, true),
		CmdSelectLineStart: e.motion(StepLineEnd, -1, true),
		CmdSelectLineEnd:   e.motion(StepLineEnd, 1, true),
	}
}

func (e *Editor) motion(step Step, count int, extend bool) func() bool {
	return func() bool {
		e.cursors.MoveCaret(step, count, extend)
		return true
	}
}
