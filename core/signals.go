package core

type Signal any

// CursorsChangedSignal fires when a secondary cursor is added or removed.
type CursorsChangedSignal struct {
	count int
}

func (s CursorsChangedSignal) Value() int {
	return s.count
}

// HighlightsChangedSignal fires when secondary selections, carets or match
// highlights need re-rendering.
type HighlightsChangedSignal struct{}

// ScrollToSignal asks the view to bring an offset into view.
type ScrollToSignal struct {
	offset int
}

func (s ScrollToSignal) Value() int {
	return s.offset
}

// UndoStateSignal reports the undo/redo affordances after a transaction,
// undo or redo.
type UndoStateSignal struct {
	canUndo bool
	canRedo bool
}

func (s UndoStateSignal) Value() (canUndo, canRedo bool) {
	canUndo = s.canUndo
	canRedo = s.canRedo

	return canUndo, canRedo
}

// EditedSignal fires after a user transaction mutated the document.
type EditedSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *Editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}
