package parser

import "strings"

// Token is one delimiter-separated fragment of a filename, with its byte
// span in the original string. Tokens are produced fresh per call and
// never mutated.
type Token struct {
	// Text is the normalized token content: lower-cased, ASCII
	// alphanumerics and spaces only.
	Text string
	// Start and End are the [start, end) byte offsets of the raw
	// fragment in the original string.
	Start int
	End   int
	// Index is the token's 0-based position in the sequence.
	Index int
}

// tokenDelimiters is the fixed split set for release names.
const tokenDelimiters = "[]()_.- "

// Tokenize splits input on the delimiter set, dropping empty fragments.
// Tokens come out in left-to-right order with strictly increasing,
// non-overlapping offset ranges. Pure; no state between calls.
func Tokenize(input string) []Token {
	var tokens []Token
	start := 0
	for i, c := range input {
		if !strings.ContainsRune(tokenDelimiters, c) {
			continue
		}
		if i > start {
			tokens = appendToken(tokens, input, start, i)
		}
		start = i + len(string(c))
	}
	if start < len(input) {
		tokens = appendToken(tokens, input, start, len(input))
	}
	return tokens
}

func appendToken(tokens []Token, input string, start, end int) []Token {
	text := normalizeToken(input[start:end])
	return append(tokens, Token{
		Text:  text,
		Start: start,
		End:   end,
		Index: len(tokens),
	})
}

// normalizeToken lower-cases and strips everything except ASCII
// alphanumerics and spaces, then trims.
func normalizeToken(text string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(text) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == ' ' {
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// TokenSpan returns the original-string byte span covered by tokens
// [startIdx, endIdx). Returns false for out-of-range or empty ranges.
func TokenSpan(tokens []Token, startIdx, endIdx int) (int, int, bool) {
	if startIdx >= len(tokens) || endIdx > len(tokens) || startIdx >= endIdx {
		return 0, 0, false
	}
	return tokens[startIdx].Start, tokens[endIdx-1].End, true
}
