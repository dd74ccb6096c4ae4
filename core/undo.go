package core

// undoAction is an atomic, invertible edit record. Actions are immutable
// once created; an insertion is undone by deleting the same span, a deletion
// by reinserting its saved text at the same offset.
type undoAction interface {
	undo(doc *Document)
	redo(doc *Document)
}

type insertAction struct {
	offset int
	text   string
}

func (a insertAction) undo(doc *Document) {
	doc.Delete(a.offset, a.offset+len([]rune(a.text)))
}

func (a insertAction) redo(doc *Document) {
	doc.Insert(a.offset, a.text)
}

type deleteAction struct {
	offset int
	text   string
}

func (a deleteAction) undo(doc *Document) {
	doc.Insert(a.offset, a.text)
}

func (a deleteAction) redo(doc *Document) {
	doc.Delete(a.offset, a.offset+len([]rune(a.text)))
}

// actionGroup is one undo-granularity unit: the primitive actions recorded
// during a single user transaction, plus — when multi-cursor mode was active
// — before/after snapshots of the primary caret's and every cursor's
// offsets. Offsets rather than live marks, because a cursor may be destroyed
// before undo occurs.
type actionGroup struct {
	actions []undoAction
	multi   bool
	before  geometry
	after   geometry
}

func (g *actionGroup) undo(doc *Document) {
	for i := len(g.actions) - 1; i >= 0; i-- {
		g.actions[i].undo(doc)
	}
}

func (g *actionGroup) redo(doc *Document) {
	for _, a := range g.actions {
		a.redo(doc)
	}
}

// recordState tracks whether a user transaction is currently open.
type recordState int

const (
	undoIdle recordState = iota
	undoRecording
)

// applyState is the re-entrancy guard: primitive edits observed while the
// manager itself replays an undo or redo must not be recorded again.
type applyState int

const (
	applyIdle applyState = iota
	applyReplaying
)

// UndoManager records document transactions as invertible action groups and
// replays them on demand, restoring cursor geometry alongside text.
type UndoManager struct {
	doc     *Document
	cursors *CursorManager // may be nil when undo runs without multi-cursor

	recording recordState
	applying  applyState
	open      *actionGroup

	undoStack []*actionGroup
	redoStack []*actionGroup

	removeHooks []func()
	notify      func(Signal)
}

// NewUndoManager creates an undo manager observing the document's mutation
// and transaction hooks. cursors and notify may be nil.
func NewUndoManager(doc *Document, cursors *CursorManager, notify func(Signal)) *UndoManager {
	if notify == nil {
		notify = func(Signal) {}
	}
	u := &UndoManager{
		doc:     doc,
		cursors: cursors,
		notify:  notify,
	}
	u.removeHooks = []func(){
		doc.OnTransactionBegin(u.onTxBegin),
		doc.OnTransactionEnd(u.onTxEnd),
		doc.OnInsert(u.onInsert),
		doc.OnDelete(u.onDelete),
	}
	return u
}

// Detach unregisters the manager's document hooks.
func (u *UndoManager) Detach() {
	for _, remove := range u.removeHooks {
		remove()
	}
	u.removeHooks = nil
}

// CanUndo reports whether the undo stack is non-empty.
func (u *UndoManager) CanUndo() bool { return len(u.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (u *UndoManager) CanRedo() bool { return len(u.redoStack) > 0 }

func (u *UndoManager) onTxBegin() {
	if u.applying == applyReplaying {
		return
	}
	u.open = &actionGroup{}
	if u.cursors != nil && u.cursors.Active() {
		u.open.multi = true
		u.open.before = u.cursors.snapshotGeometry()
	}
	u.recording = undoRecording
}

func (u *UndoManager) onInsert(offset int, text string) {
	if u.applying == applyReplaying || u.recording != undoRecording {
		return
	}
	u.open.actions = append(u.open.actions, insertAction{offset: offset, text: text})
}

func (u *UndoManager) onDelete(start, end int, text string) {
	if u.applying == applyReplaying || u.recording != undoRecording {
		return
	}
	u.open.actions = append(u.open.actions, deleteAction{offset: start, text: text})
}

func (u *UndoManager) onTxEnd() {
	if u.applying == applyReplaying || u.recording != undoRecording {
		return
	}
	u.recording = undoIdle
	group := u.open
	u.open = nil
	if group == nil || len(group.actions) == 0 {
		return
	}
	if group.multi {
		group.after = u.cursors.snapshotGeometry()
	}
	u.undoStack = append(u.undoStack, group)
	// A fresh edit always invalidates the redo history.
	u.redoStack = nil
	u.notifyState()
}

// Undo pops the latest action group, inverts its actions in reverse order
// and restores the pre-transaction cursor geometry. Returns false when the
// undo stack is empty.
func (u *UndoManager) Undo() bool {
	if len(u.undoStack) == 0 {
		return false
	}
	group := u.undoStack[len(u.undoStack)-1]
	u.undoStack = u.undoStack[:len(u.undoStack)-1]

	u.applying = applyReplaying
	group.undo(u.doc)
	u.applying = applyIdle

	if group.multi && u.cursors != nil {
		u.cursors.restoreGeometry(group.before)
	}

	u.redoStack = append(u.redoStack, group)
	u.notifyState()
	return true
}

// Redo replays the latest undone group forward in original order and
// restores the post-transaction cursor geometry. Returns false when the redo
// stack is empty.
func (u *UndoManager) Redo() bool {
	if len(u.redoStack) == 0 {
		return false
	}
	group := u.redoStack[len(u.redoStack)-1]
	u.redoStack = u.redoStack[:len(u.redoStack)-1]

	u.applying = applyReplaying
	group.redo(u.doc)
	u.applying = applyIdle

	if group.multi && u.cursors != nil {
		u.cursors.restoreGeometry(group.after)
	}

	u.undoStack = append(u.undoStack, group)
	u.notifyState()
	return true
}

func (u *UndoManager) notifyState() {
	u.notify(UndoStateSignal{canUndo: u.CanUndo(), canRedo: u.CanRedo()})
}
