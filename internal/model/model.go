// Package model is the boundary to the external statistical model that
// powers the full parsing engine.
//
// The core engine only needs one operation: given a raw release name,
// return per-token emission scores over the tag vocabulary, a pairwise
// transition-score matrix, and the byte span of each model-input token in
// the original string. How those scores are produced (here: a wordpiece
// tokenizer plus an ONNX transformer session) is an implementation
// detail behind the Scorer interface; tests substitute a fake.
package model

import "errors"

// ErrNotLoaded is returned when scoring is attempted before the model
// and tokenizer have been initialized, or after initialization failed.
var ErrNotLoaded = errors.New("model not loaded")

// TokenSpan is the [start, end) byte span of one model-input token in
// the original string. Special tokens (sequence markers) carry (0, 0).
type TokenSpan struct {
	Start int
	End   int
}

// Scores is the raw output of one scoring call.
type Scores struct {
	// Emissions is [sequence length][tag count]: per-token compatibility
	// with each tag, before sequential context.
	Emissions [][]float32
	// Transitions is [tag count][tag count]: learned pairwise tag
	// compatibility. Callers must not trust it to respect the BIO
	// grammar; the decoder enforces the grammar itself.
	Transitions [][]float32
	// Offsets maps each emission row to its span in the original string.
	Offsets []TokenSpan
}

// Scorer produces emission and transition scores for a raw input string.
// Implementations must be safe for concurrent use or document otherwise;
// the core treats every call as a pure function.
type Scorer interface {
	Score(input string) (*Scores, error)
}
