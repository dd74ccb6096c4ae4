package core

import "fmt"

// Clipboard abstracts the system clipboard so the engine stays testable
// without one.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Editor wires a Document, its primary Caret, the CursorManager and the
// UndoManager together and exposes the command surface the host binds keys
// to. Everything runs synchronously inside the caller's event loop; the
// update channel only carries refresh hints back to the view.
type Editor struct {
	doc     *Document
	caret   *Caret
	cursors *CursorManager
	undo    *UndoManager

	clipboard Clipboard
	pageSize  int

	dispatch     map[Command]func() bool
	updateSignal chan Signal
}

// New creates an editor over the given initial text.
func New(text string, clipboard Clipboard) *Editor {
	e := &Editor{
		clipboard:    clipboard,
		pageSize:     24,
		updateSignal: make(chan Signal, 100),
	}
	e.doc = NewDocument(text)
	e.caret = NewCaret(e.doc)
	e.cursors = NewCursorManager(e.doc, e.caret, e.DispatchSignal)
	// The undo manager registers its transaction hooks before the cursor
	// manager ever activates, so end-of-transaction ordering lets the
	// cursor replay finish before the action group is finalized.
	e.undo = NewUndoManager(e.doc, e.cursors, e.DispatchSignal)
	e.bindCommands()
	return e
}

// Document returns the underlying document.
func (e *Editor) Document() *Document { return e.doc }

// Caret returns the primary caret.
func (e *Editor) Caret() *Caret { return e.caret }

// Cursors returns the secondary-cursor manager.
func (e *Editor) Cursors() *CursorManager { return e.cursors }

// GetUpdateSignalChan returns the channel carrying view refresh hints.
func (e *Editor) GetUpdateSignalChan() <-chan Signal { return e.updateSignal }

// SetPageSize sets the line count of a page movement.
func (e *Editor) SetPageSize(lines int) {
	if lines > 0 {
		e.pageSize = lines
	}
}

// InsertText types text at the primary caret as one user action: the
// selection (if any) is replaced and the edit is mirrored onto every
// secondary cursor.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	e.doc.BeginUserAction()
	e.caret.ReplaceSelection(text)
	e.doc.EndUserAction()
	e.DispatchSignal(EditedSignal{})
}

// DeleteBackward performs a backspace at the primary caret, mirrored onto
// every secondary cursor.
func (e *Editor) DeleteBackward() {
	e.doc.BeginUserAction()
	e.caret.DeleteBackward()
	e.doc.EndUserAction()
	e.DispatchSignal(EditedSignal{})
}

// DeleteForward performs a forward delete at the primary caret, mirrored
// onto every secondary cursor.
func (e *Editor) DeleteForward() {
	e.doc.BeginUserAction()
	e.caret.DeleteForward()
	e.doc.EndUserAction()
	e.DispatchSignal(EditedSignal{})
}

// Copy captures each cursor's own selected text, then writes the primary
// selection to the system clipboard.
func (e *Editor) Copy() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	e.cursors.SaveClipboards()
	text := e.caret.SelectedText()
	if text == "" {
		return nil
	}
	if err := e.clipboard.Write(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardWrite, err)
	}
	return nil
}

// Cut copies, then deletes every selection as one user action.
func (e *Editor) Cut() error {
	if err := e.Copy(); err != nil {
		return err
	}
	start, end := e.caret.Bounds()
	if start == end && !e.cursors.Active() {
		return nil
	}
	e.doc.BeginUserAction()
	if start != end {
		e.doc.Delete(start, end)
	}
	e.doc.EndUserAction()
	e.DispatchSignal(EditedSignal{})
	return nil
}

// Paste inserts the clipboard content at the primary caret. When the pasted
// text matches the last copied primary selection, each secondary cursor
// replays its own previously captured text instead.
func (e *Editor) Paste() error {
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	content, err := e.clipboard.Read()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardRead, err)
	}
	if content == "" {
		return nil
	}
	e.InsertText(content)
	return nil
}

// Undo reverts the latest transaction, restoring document content and
// cursor geometry. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool { return e.undo.Undo() }

// Redo replays the latest undone transaction. Returns false when there is
// nothing to redo.
func (e *Editor) Redo() bool { return e.undo.Redo() }

// CanUndo reports whether an undo is available.
func (e *Editor) CanUndo() bool { return e.undo.CanUndo() }

// CanRedo reports whether a redo is available.
func (e *Editor) CanRedo() bool { return e.undo.CanRedo() }
