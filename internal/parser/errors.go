package parser

import "errors"

// ErrEmptyInput is returned when the input is empty or whitespace-only.
var ErrEmptyInput = errors.New("input is empty or whitespace-only")

// ErrParseFailed is returned when an engine produced no usable signal,
// e.g. the tokenizer emitted zero tokens.
var ErrParseFailed = errors.New("failed to extract metadata from input")

// ErrModelUnavailable is returned when the statistical path cannot run
// (no model loaded, tokenizer missing, or matrix dimensions incompatible
// with the tag vocabulary). The dispatcher treats it as recoverable and
// falls back to the heuristic engine.
var ErrModelUnavailable = errors.New("statistical model unavailable")
