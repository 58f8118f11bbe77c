package parser

import "testing"

func TestTokenizeBasic(t *testing.T) {
	tokens := Tokenize("[SubsPlease] Jujutsu Kaisen - 24 (1080p)")
	if len(tokens) == 0 {
		t.Fatal("no tokens")
	}
	if tokens[0].Text != "subsplease" {
		t.Errorf("tokens[0].Text = %q, want subsplease", tokens[0].Text)
	}
	if tokens[0].Start != 1 || tokens[0].End != 11 {
		t.Errorf("tokens[0] span = [%d,%d), want [1,11)", tokens[0].Start, tokens[0].End)
	}
}

func TestTokenizeDotSeparated(t *testing.T) {
	tokens := Tokenize("One.Piece.1084.VOSTFR.1080p")
	if len(tokens) < 5 {
		t.Fatalf("got %d tokens, want >= 5", len(tokens))
	}
	want := []string{"one", "piece", "1084"}
	for i, w := range want {
		if tokens[i].Text != w {
			t.Errorf("tokens[%d].Text = %q, want %q", i, tokens[i].Text, w)
		}
	}
}

func TestTokenizeUnderscores(t *testing.T) {
	tokens := Tokenize("[Judas]_Golden_Kamuy_S3_01")
	texts := make(map[string]bool)
	for _, tok := range tokens {
		texts[tok.Text] = true
	}
	for _, w := range []string{"judas", "golden", "kamuy"} {
		if !texts[w] {
			t.Errorf("missing token %q in %v", w, tokens)
		}
	}
}

func TestTokenizeEmptyAndDelimitersOnly(t *testing.T) {
	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Errorf("empty input: got %d tokens", len(tokens))
	}
	if tokens := Tokenize("[[[]]]()..--__"); len(tokens) != 0 {
		t.Errorf("delimiters only: got %d tokens", len(tokens))
	}
}

func TestTokenizeOffsetsMonotonic(t *testing.T) {
	tokens := Tokenize("[Erai-raws] Shingeki no Kyojin - 28v2 [1080p][HEVC].mkv")
	prevEnd := -1
	for i, tok := range tokens {
		if tok.Index != i {
			t.Errorf("tokens[%d].Index = %d", i, tok.Index)
		}
		if tok.Start <= prevEnd-1 && i > 0 {
			t.Errorf("tokens[%d] span [%d,%d) overlaps previous end %d", i, tok.Start, tok.End, prevEnd)
		}
		if tok.Start >= tok.End {
			t.Errorf("tokens[%d] degenerate span [%d,%d)", i, tok.Start, tok.End)
		}
		if tok.Start < prevEnd {
			t.Errorf("tokens[%d] not strictly increasing: start %d < prev end %d", i, tok.Start, prevEnd)
		}
		prevEnd = tok.End
	}
}

func TestTokenizeNormalization(t *testing.T) {
	tokens := Tokenize("Shingeki☆no☆Kyojin")
	// Non-ASCII is stripped from the normalized text but the spans still
	// index the raw string.
	for _, tok := range tokens {
		for _, c := range tok.Text {
			ok := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == ' '
			if !ok {
				t.Errorf("token %q contains non-normalized rune %q", tok.Text, c)
			}
		}
	}
}

func TestTokenSpan(t *testing.T) {
	tokens := Tokenize("[SubsPlease] Jujutsu Kaisen - 24")
	start, end, ok := TokenSpan(tokens, 1, 3)
	if !ok {
		t.Fatal("TokenSpan(1, 3) not ok")
	}
	if start >= end {
		t.Errorf("span [%d,%d) degenerate", start, end)
	}
	if _, _, ok := TokenSpan(tokens, 3, 1); ok {
		t.Error("reversed range should not be ok")
	}
	if _, _, ok := TokenSpan(tokens, 0, len(tokens)+1); ok {
		t.Error("out-of-range end should not be ok")
	}
}
