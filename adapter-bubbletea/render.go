package bubble_adapter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/dropterm/multicaret/adapter-bubbletea/highlighter"
)

// cellLayer ranks the overlays competing for a cell. Higher wins.
type cellLayer int

const (
	layerNone cellLayer = iota
	layerMatch
	layerSecondarySelection
	layerPrimarySelection
	layerCaret
)

// buildOverlay paints every highlight layer into one per-offset array. The
// extra trailing cell lets a caret sit past the last character.
func (m *Model) buildOverlay() []cellLayer {
	doc := m.editor.Document()
	overlay := make([]cellLayer, doc.Len()+1)

	paint := func(start, end int, layer cellLayer) {
		for i := start; i < end && i < len(overlay); i++ {
			overlay[i] = layer
		}
	}

	for _, r := range m.editor.Cursors().MatchHighlights() {
		paint(r.Start, r.End, layerMatch)
	}

	for _, c := range m.editor.Cursors().Cursors() {
		if c.IsEmpty() {
			overlay[c.Start()] = layerCaret
		} else {
			paint(c.Start(), c.End(), layerSecondarySelection)
		}
	}

	pStart, pEnd := m.editor.Caret().Bounds()
	if pStart == pEnd {
		overlay[pStart] = layerCaret
	} else {
		paint(pStart, pEnd, layerPrimarySelection)
	}

	return overlay
}

func (m *Model) renderContent() string {
	doc := m.editor.Document()
	lines := strings.Split(doc.String(), "\n")
	overlay := m.buildOverlay()

	pStart, _ := m.editor.Caret().Bounds()
	caretLine := doc.LineOfOffset(pStart)
	gutterWidth := m.lineNumberWidth()

	var b strings.Builder
	offset := 0
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if gutterWidth > 0 {
			b.WriteString(m.renderLineNumber(i, i == caretLine, gutterWidth))
		}
		b.WriteString(m.renderLine(i, offset, line, lines, overlay))
		offset += len([]rune(line)) + 1
	}
	return b.String()
}

func (m *Model) renderLineNumber(lineNum int, current bool, width int) string {
	style := m.theme.LineNumberStyle
	if current {
		style = m.theme.CurrentLineNumberStyle
	}
	return style.Width(width-1).Render(strconv.Itoa(lineNum+1)) + " "
}

func (m *Model) renderLine(lineNum, lineStart int, line string, lines []string, overlay []cellLayer) string {
	runes := []rune(line)
	avail := m.viewport.Width - m.lineNumberWidth()
	if avail <= 0 {
		avail = 1
	}

	var positions []highlighter.TokenPosition
	if m.hl != nil {
		positions = highlighter.TokenPositions(m.hl.TokensForLine(lineNum, lines))
	}

	var b strings.Builder
	width := 0
	for col, r := range runes {
		cell := string(r)
		if r == '\t' {
			cell = "    "
		}
		w := uniseg.StringWidth(cell)
		if width+w > avail {
			break
		}
		width += w

		style, ok := m.cellStyle(overlay, lineStart+col, positions, col)
		if ok {
			b.WriteString(style.Render(cell))
		} else {
			b.WriteString(cell)
		}
	}

	// A caret parked on the newline (or at the end of the document) still
	// needs a visible cell.
	if width < avail && overlayAt(overlay, lineStart+len(runes)) == layerCaret {
		b.WriteString(m.theme.CursorStyle.Render(" "))
	}

	return b.String()
}

// cellStyle resolves the style of one cell: highlight overlays first, syntax
// colors underneath.
func (m *Model) cellStyle(overlay []cellLayer, offset int, positions []highlighter.TokenPosition, col int) (lipgloss.Style, bool) {
	switch overlayAt(overlay, offset) {
	case layerCaret:
		return m.theme.CursorStyle, true
	case layerPrimarySelection:
		return m.theme.SelectionStyle, true
	case layerSecondarySelection:
		return m.theme.SecondarySelectionStyle, true
	case layerMatch:
		return m.theme.MatchStyle, true
	}

	if m.hl != nil {
		if token, ok := highlighter.TokenAt(positions, col); ok {
			return m.hl.StyleFor(token.Type), true
		}
	}

	return lipgloss.Style{}, false
}

func overlayAt(overlay []cellLayer, offset int) cellLayer {
	if offset < 0 || offset >= len(overlay) {
		return layerNone
	}
	return overlay[offset]
}
