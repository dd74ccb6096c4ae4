package core

import "unicode"

// Gravity controls which side of an insertion a mark attaches to when text
// arrives exactly at its offset. A left-gravity mark stays before the new
// text (its range grows to capture it); a right-gravity mark moves past it.
type Gravity int

const (
	GravityLeft Gravity = iota
	GravityRight
)

// Mark is a stable handle to a position in a Document. The position shifts
// automatically as surrounding text is inserted or deleted, so a mark stays
// attached to the characters around it rather than to a fixed offset.
type Mark struct {
	doc *Document
	id  int
}

type anchor struct {
	offset  int
	gravity Gravity
}

// Offset resolves the mark's current position. Returns 0 for a deleted mark.
func (m *Mark) Offset() int {
	if a, ok := m.doc.anchors[m.id]; ok {
		return a.offset
	}
	return 0
}

// MoveTo re-points the mark at the given offset, clamped to the document.
func (m *Mark) MoveTo(offset int) {
	a, ok := m.doc.anchors[m.id]
	if !ok {
		return
	}
	a.offset = m.doc.clamp(offset)
	m.doc.anchors[m.id] = a
}

// SetGravity changes how the mark reacts to insertions at its own offset.
func (m *Mark) SetGravity(g Gravity) {
	a, ok := m.doc.anchors[m.id]
	if !ok {
		return
	}
	a.gravity = g
	m.doc.anchors[m.id] = a
}

// Delete removes the mark from the document's anchor table.
func (m *Mark) Delete() {
	delete(m.doc.anchors, m.id)
}

// Document is an ordered sequence of runes with stable offset addressing.
// It carries the anchor side-table for marks, fires synchronous hooks on
// every mutation, and brackets user edits in begin/end transaction pairs.
// All access is single-threaded; hooks run to completion inside the mutating
// call.
type Document struct {
	runes   []rune
	anchors map[int]anchor
	nextID  int

	txDepth     int
	insertHooks []hookEntry[func(offset int, text string)]
	deleteHooks []hookEntry[func(start, end int, text string)]
	beginHooks  []hookEntry[func()]
	endHooks    []hookEntry[func()]
	nextHookID  int
}

type hookEntry[T any] struct {
	id int
	fn T
}

// NewDocument creates a document holding the given text.
func NewDocument(text string) *Document {
	return &Document{
		runes:   []rune(text),
		anchors: make(map[int]anchor),
	}
}

// Len returns the document length in runes.
func (d *Document) Len() int { return len(d.runes) }

// String returns the entire document content.
func (d *Document) String() string { return string(d.runes) }

// Text reads the substring between two offsets, clamped to the document.
func (d *Document) Text(start, end int) string {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}
	return string(d.runes[start:end])
}

func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.runes) {
		return len(d.runes)
	}
	return offset
}

// CreateMark adds an anchor at the given offset and returns its handle.
func (d *Document) CreateMark(offset int, gravity Gravity) *Mark {
	d.nextID++
	d.anchors[d.nextID] = anchor{offset: d.clamp(offset), gravity: gravity}
	return &Mark{doc: d, id: d.nextID}
}

// Insert inserts text at the given offset, shifting anchors per their
// gravity, and fires the insert hooks.
func (d *Document) Insert(offset int, text string) {
	if text == "" {
		return
	}
	offset = d.clamp(offset)
	ins := []rune(text)

	d.runes = append(d.runes[:offset], append(append([]rune{}, ins...), d.runes[offset:]...)...)

	for id, a := range d.anchors {
		if a.offset > offset || (a.offset == offset && a.gravity == GravityRight) {
			a.offset += len(ins)
			d.anchors[id] = a
		}
	}

	for _, h := range d.insertHooks {
		h.fn(offset, text)
	}
}

// Delete removes the range [start, end), clamping anchors inside it to its
// start, and fires the delete hooks with the removed text.
func (d *Document) Delete(start, end int) {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}
	if start == end {
		return
	}
	removed := string(d.runes[start:end])
	d.runes = append(d.runes[:start], d.runes[end:]...)

	n := end - start
	for id, a := range d.anchors {
		switch {
		case a.offset >= end:
			a.offset -= n
		case a.offset > start:
			a.offset = start
		default:
			continue
		}
		d.anchors[id] = a
	}

	for _, h := range d.deleteHooks {
		h.fn(start, end, removed)
	}
}

// --- Transactions ---

// BeginUserAction opens a user-level edit transaction. Pairs nest; only the
// outermost pair fires the transaction hooks.
func (d *Document) BeginUserAction() {
	d.txDepth++
	if d.txDepth == 1 {
		hooks := append([]hookEntry[func()]{}, d.beginHooks...)
		for _, h := range hooks {
			h.fn()
		}
	}
}

// EndUserAction closes a user-level edit transaction. End hooks fire in
// reverse registration order: a late-registered interceptor finishes its
// replay before an early-registered observer sees the transaction close.
func (d *Document) EndUserAction() {
	if d.txDepth == 0 {
		return
	}
	d.txDepth--
	if d.txDepth == 0 {
		// Snapshot: a hook may deactivate an interceptor mid-fire.
		hooks := append([]hookEntry[func()]{}, d.endHooks...)
		for i := len(hooks) - 1; i >= 0; i-- {
			hooks[i].fn()
		}
	}
}

// InUserAction reports whether a transaction is currently open.
func (d *Document) InUserAction() bool { return d.txDepth > 0 }

// --- Hooks ---

func addHook[T any](hooks *[]hookEntry[T], id int, fn T) {
	*hooks = append(*hooks, hookEntry[T]{id: id, fn: fn})
}

func removeHook[T any](hooks *[]hookEntry[T], id int) {
	for i, h := range *hooks {
		if h.id == id {
			*hooks = append((*hooks)[:i], (*hooks)[i+1:]...)
			return
		}
	}
}

// OnInsert registers a hook fired after every insertion. The returned
// function unregisters it.
func (d *Document) OnInsert(fn func(offset int, text string)) func() {
	d.nextHookID++
	id := d.nextHookID
	addHook(&d.insertHooks, id, fn)
	return func() { removeHook(&d.insertHooks, id) }
}

// OnDelete registers a hook fired after every deletion.
func (d *Document) OnDelete(fn func(start, end int, text string)) func() {
	d.nextHookID++
	id := d.nextHookID
	addHook(&d.deleteHooks, id, fn)
	return func() { removeHook(&d.deleteHooks, id) }
}

// OnTransactionBegin registers a hook fired when the outermost user action
// opens.
func (d *Document) OnTransactionBegin(fn func()) func() {
	d.nextHookID++
	id := d.nextHookID
	addHook(&d.beginHooks, id, fn)
	return func() { removeHook(&d.beginHooks, id) }
}

// OnTransactionEnd registers a hook fired when the outermost user action
// closes.
func (d *Document) OnTransactionEnd(fn func()) func() {
	d.nextHookID++
	id := d.nextHookID
	addHook(&d.endHooks, id, fn)
	return func() { removeHook(&d.endHooks, id) }
}

// --- Line helpers ---

// LineCount returns the number of lines (newline-separated).
func (d *Document) LineCount() int {
	count := 1
	for _, r := range d.runes {
		if r == '\n' {
			count++
		}
	}
	return count
}

// LineOfOffset returns the 0-indexed line containing the given offset.
func (d *Document) LineOfOffset(offset int) int {
	offset = d.clamp(offset)
	line := 0
	for _, r := range d.runes[:offset] {
		if r == '\n' {
			line++
		}
	}
	return line
}

// LineStart returns the offset of the first rune of the given line.
func (d *Document) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	seen := 0
	for i, r := range d.runes {
		if r == '\n' {
			seen++
			if seen == line {
				return i + 1
			}
		}
	}
	return len(d.runes)
}

// LineLen returns the length of the given line, excluding its newline.
func (d *Document) LineLen(line int) int {
	start := d.LineStart(line)
	for i := start; i < len(d.runes); i++ {
		if d.runes[i] == '\n' {
			return i - start
		}
	}
	return len(d.runes) - start
}

// --- Search ---

// FindForward searches for needle in [from, bound). A negative bound means
// the end of the document. Returns the match range and whether one was found.
func (d *Document) FindForward(needle string, from, bound int, fold bool) (start, end int, ok bool) {
	n := []rune(needle)
	if len(n) == 0 {
		return 0, 0, false
	}
	from = d.clamp(from)
	limit := len(d.runes)
	if bound >= 0 {
		limit = d.clamp(bound)
	}
	for i := from; i+len(n) <= limit; i++ {
		if d.matchAt(i, n, fold) {
			return i, i + len(n), true
		}
	}
	return 0, 0, false
}

// FindBackward searches for the last occurrence of needle ending at or
// before the given offset.
func (d *Document) FindBackward(needle string, before int, fold bool) (start, end int, ok bool) {
	n := []rune(needle)
	if len(n) == 0 {
		return 0, 0, false
	}
	before = d.clamp(before)
	for i := before - len(n); i >= 0; i-- {
		if d.matchAt(i, n, fold) {
			return i, i + len(n), true
		}
	}
	return 0, 0, false
}

func (d *Document) matchAt(offset int, needle []rune, fold bool) bool {
	for k, r := range needle {
		dr := d.runes[offset+k]
		if fold {
			if unicode.ToLower(dr) != unicode.ToLower(r) {
				return false
			}
		} else if dr != r {
			return false
		}
	}
	return true
}

// WordBoundsAt returns the bounds of the identifier-like word around the
// given offset, or an empty range when the offset touches no word.
func (d *Document) WordBoundsAt(offset int) (start, end int) {
	offset = d.clamp(offset)
	start, end = offset, offset
	for start > 0 && isWordRune(d.runes[start-1]) {
		start--
	}
	for end < len(d.runes) && isWordRune(d.runes[end]) {
		end++
	}
	return start, end
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}
