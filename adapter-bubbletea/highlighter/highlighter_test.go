package highlighter

import "testing"

func TestTokensForLine(t *testing.T) {
	h := New("go", "catppuccin-mocha")
	lines := []string{"package main", "", "var x = 1"}

	tokens := h.TokensForLine(0, lines)
	if len(tokens) == 0 {
		t.Fatal("no tokens for a non-empty line")
	}

	joined := ""
	for _, tok := range tokens {
		joined += tok.Value
	}
	if joined != "package main" {
		t.Errorf("line 0 tokens reassemble to %q", joined)
	}

	if tokens := h.TokensForLine(1, lines); len(tokens) != 0 {
		t.Errorf("blank line produced %d tokens", len(tokens))
	}
}

func TestEmptyContentTokenizedOnce(t *testing.T) {
	h := New("go", "catppuccin-mocha")
	lines := []string{""}

	h.TokensForLine(0, lines)

	// An empty document must still mark the cache as populated, or every
	// rendered line re-tokenizes the whole buffer.
	h.mu.RLock()
	_, cached := h.cache[0]
	h.mu.RUnlock()
	if !cached {
		t.Error("empty content left the token cache unseeded")
	}
}

func TestInvalidate(t *testing.T) {
	h := New("go", "catppuccin-mocha")
	lines := []string{"package main"}
	h.TokensForLine(0, lines)

	h.Invalidate()

	h.mu.RLock()
	_, cached := h.cache[0]
	h.mu.RUnlock()
	if cached {
		t.Error("Invalidate kept cached tokens")
	}
}

func TestTokenPositions(t *testing.T) {
	h := New("go", "catppuccin-mocha")
	lines := []string{"var x = 1"}
	positions := TokenPositions(h.TokensForLine(0, lines))

	if len(positions) == 0 {
		t.Fatal("no token positions")
	}
	if positions[0].StartCol != 0 {
		t.Errorf("first token starts at %d", positions[0].StartCol)
	}
	last := positions[len(positions)-1]
	if last.EndCol != len("var x = 1") {
		t.Errorf("last token ends at %d, want %d", last.EndCol, len("var x = 1"))
	}

	if _, ok := TokenAt(positions, 0); !ok {
		t.Error("no token covering column 0")
	}
	if _, ok := TokenAt(positions, 99); ok {
		t.Error("token found past the end of the line")
	}
}
