package core

// Step is the granularity of a directional motion.
type Step int

const (
	StepChar     Step = iota // one character
	StepWord                 // one word (identifier/punctuation/space runs)
	StepLine                 // one display line, keeping the preferred column
	StepLineEnd              // to the start (-) or end (+) of the line
	StepBufferEdge           // to the start (-) or end (+) of the document
	StepPage                 // vertical page jump; collapses multi-cursor mode
)

// span is a selection in motion: ordered offsets, the anchor of an active
// extension (-1 when unset) and the sticky column remembered across repeated
// vertical moves (-1 when unset).
type span struct {
	start, end int
	anchor     int
	pref       int
}

// moveSpan applies a directional motion to a selection. count carries the
// direction in its sign. Non-extending motion over a non-empty selection
// first collapses to the directional edge, then applies the full step count.
// Extending motion keeps one end anchored and moves the head, so reversing
// direction shrinks the selection back toward the anchor; the anchor is
// picked on the first extending step and kept until the selection resets.
func moveSpan(doc *Document, s span, step Step, count int, extend bool) span {
	if count == 0 {
		return s
	}

	if !extend {
		if s.start != s.end {
			if count < 0 {
				s.end = s.start
			} else {
				s.start = s.end
			}
		}
		head := movePoint(doc, s.start, step, count, &s.pref)
		return span{start: head, end: head, anchor: -1, pref: s.pref}
	}

	if s.anchor != s.start && s.anchor != s.end {
		if count > 0 {
			s.anchor = s.start
		} else {
			s.anchor = s.end
		}
	}
	head := s.end
	if s.anchor == s.end && s.anchor != s.start {
		head = s.start
	}
	head = movePoint(doc, head, step, count, &s.pref)

	s.start, s.end = s.anchor, head
	if s.start > s.end {
		s.start, s.end = s.end, s.start
	}
	return s
}

func movePoint(doc *Document, offset int, step Step, count int, pref *int) int {
	switch step {
	case StepChar:
		*pref = -1
		return doc.clamp(offset + count)

	case StepWord:
		*pref = -1
		for ; count > 0; count-- {
			offset = wordForward(doc, offset)
		}
		for ; count < 0; count++ {
			offset = wordBackward(doc, offset)
		}
		return offset

	case StepLine, StepPage:
		line := doc.LineOfOffset(offset)
		col := offset - doc.LineStart(line)
		if *pref >= 0 {
			col = *pref
		} else {
			*pref = col
		}
		target := line + count
		if target < 0 {
			target = 0
		}
		if last := doc.LineCount() - 1; target > last {
			target = last
		}
		if tl := doc.LineLen(target); col > tl {
			// Clamp to the shorter line without forgetting the column.
			return doc.LineStart(target) + tl
		}
		return doc.LineStart(target) + col

	case StepLineEnd:
		*pref = -1
		line := doc.LineOfOffset(offset)
		if count < 0 {
			return doc.LineStart(line)
		}
		return doc.LineStart(line) + doc.LineLen(line)

	case StepBufferEdge:
		*pref = -1
		if count < 0 {
			return 0
		}
		return doc.Len()
	}
	return offset
}

// wordForward advances one word: to the end of the current run of word or
// punctuation characters, then past any whitespace.
func wordForward(doc *Document, offset int) int {
	n := doc.Len()
	if offset >= n {
		return n
	}
	r := doc.runes[offset]
	switch {
	case isWordRune(r):
		for offset < n && isWordRune(doc.runes[offset]) {
			offset++
		}
	case isMotionSpace(r):
		// Run of whitespace only; skipped below.
	default:
		for offset < n && !isWordRune(doc.runes[offset]) && !isMotionSpace(doc.runes[offset]) {
			offset++
		}
	}
	for offset < n && isMotionSpace(doc.runes[offset]) {
		offset++
	}
	return offset
}

// wordBackward retreats to the start of the previous word or punctuation
// run.
func wordBackward(doc *Document, offset int) int {
	if offset <= 0 {
		return 0
	}
	offset--
	for offset > 0 && isMotionSpace(doc.runes[offset]) {
		offset--
	}
	if isWordRune(doc.runes[offset]) {
		for offset > 0 && isWordRune(doc.runes[offset-1]) {
			offset--
		}
	} else if !isMotionSpace(doc.runes[offset]) {
		for offset > 0 && !isWordRune(doc.runes[offset-1]) && !isMotionSpace(doc.runes[offset-1]) {
			offset--
		}
	}
	return offset
}

func isMotionSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
