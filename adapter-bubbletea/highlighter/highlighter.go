package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenizes document content with chroma and maps token types to
// lipgloss styles. Tokens are cached per line until the content changes.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	cache      map[int][]chroma.Token
	styleCache map[chroma.TokenType]lipgloss.Style
	mu         sync.RWMutex
}

// TokenPosition locates a token's column span within its line.
type TokenPosition struct {
	Token    chroma.Token
	StartCol int
	EndCol   int
}

// New creates a highlighter for the given chroma lexer and style names.
// Unknown names fall back to plain text and the default style.
func New(language, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		cache:      make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Invalidate clears the token cache. Call after any document mutation.
func (h *Highlighter) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache = make(map[int][]chroma.Token)
}

// TokensForLine returns the syntax tokens of one line, tokenizing the whole
// document on a cache miss. Whole-document tokenization keeps multi-line
// constructs (strings, comments) correct.
func (h *Highlighter) TokensForLine(lineNum int, lines []string) []chroma.Token {
	h.mu.RLock()
	_, cached := h.cache[0]
	h.mu.RUnlock()

	if !cached {
		h.tokenize(lines)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cache[lineNum]
}

func (h *Highlighter) tokenize(lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache = make(map[int][]chroma.Token)

	content := strings.Join(lines, "\n")
	if content == "" {
		// Seed the cache so an empty document still counts as tokenized.
		h.cache[0] = []chroma.Token{}
		return
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		// Cache empty token lists so a broken input is not re-tokenized on
		// every render.
		for i := range lines {
			h.cache[i] = []chroma.Token{}
		}
		return
	}

	lineNum := 0
	h.cache[lineNum] = []chroma.Token{}
	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				h.cache[lineNum] = append(h.cache[lineNum], chroma.Token{Type: token.Type, Value: before})
			}
			lineNum++
			h.cache[lineNum] = []chroma.Token{}
			value = after
		}
		if value != "" {
			h.cache[lineNum] = append(h.cache[lineNum], chroma.Token{Type: token.Type, Value: value})
		}
	}
}

// StyleFor converts a chroma token type to a lipgloss style.
func (h *Highlighter) StyleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.RLock()
	if style, ok := h.styleCache[tokenType]; ok {
		h.mu.RUnlock()
		return style
	}
	h.mu.RUnlock()

	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.mu.Lock()
	h.styleCache[tokenType] = style
	h.mu.Unlock()

	return style
}

// TokenPositions lays tokens out as column spans in their logical line.
func TokenPositions(tokens []chroma.Token) []TokenPosition {
	positions := make([]TokenPosition, 0, len(tokens))
	col := 0
	for _, token := range tokens {
		n := len([]rune(token.Value))
		positions = append(positions, TokenPosition{
			Token:    token,
			StartCol: col,
			EndCol:   col + n,
		})
		col += n
	}
	return positions
}

// TokenAt finds the token covering the given column.
func TokenAt(positions []TokenPosition, col int) (chroma.Token, bool) {
	for _, pos := range positions {
		if col >= pos.StartCol && col < pos.EndCol {
			return pos.Token, true
		}
	}
	return chroma.Token{}, false
}
