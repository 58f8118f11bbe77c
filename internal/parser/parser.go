package parser

import (
	"errors"

	"github.com/zantetsu/zantetsu/internal/model"
	"github.com/zantetsu/zantetsu/internal/types"
)

// DefaultConfidenceThreshold is the auto-mode cutoff below which the
// statistical result is challenged by the heuristic engine.
const DefaultConfidenceThreshold = 0.6

// Config controls engine selection and fallback behavior.
type Config struct {
	// Mode selects the engine: light, full or auto.
	Mode types.ParseMode
	// ConfidenceThreshold is the auto-mode cutoff for accepting a
	// statistical result without consulting the heuristic.
	ConfidenceThreshold float64
	// EnableStatistical gates the statistical engine entirely.
	EnableStatistical bool
}

// DefaultConfig returns the production defaults: auto mode, 0.6
// threshold, statistical engine enabled.
func DefaultConfig() Config {
	return Config{
		Mode:                types.ModeAuto,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		EnableStatistical:   true,
	}
}

// WithMode returns a copy of c with the parse mode set.
func (c Config) WithMode(mode types.ParseMode) Config {
	c.Mode = mode
	return c
}

// WithConfidenceThreshold returns a copy of c with the threshold set,
// clamped to [0, 1].
func (c Config) WithConfidenceThreshold(threshold float64) Config {
	if threshold < 0 {
		threshold = 0
	} else if threshold > 1 {
		threshold = 1
	}
	c.ConfidenceThreshold = threshold
	return c
}

// WithStatistical returns a copy of c with the statistical engine
// enabled or disabled.
func (c Config) WithStatistical(enabled bool) Config {
	c.EnableStatistical = enabled
	return c
}

// Parser is the unified front door: it owns both engines and
// dispatches per the configured mode, falling back from the
// statistical engine to the heuristic when the model is unavailable or
// its result is weak.
type Parser struct {
	cfg         Config
	heuristic   *HeuristicParser
	statistical *StatisticalParser
}

// New creates a parser. scorer may be nil, in which case the
// statistical engine is unavailable and every mode degrades to the
// heuristic.
func New(cfg Config, scorer model.Scorer) *Parser {
	p := &Parser{
		cfg:       cfg,
		heuristic: NewHeuristicParser(),
	}
	if cfg.EnableStatistical && scorer != nil {
		p.statistical = NewStatisticalParser(scorer)
	}
	return p
}

// NewDefault creates a parser with default configuration and no
// statistical scorer.
func NewDefault() *Parser {
	return New(DefaultConfig(), nil)
}

// HasStatistical reports whether the statistical engine is configured.
func (p *Parser) HasStatistical() bool {
	return p.statistical != nil
}

// Config returns the parser's configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse extracts metadata from input using the configured mode.
func (p *Parser) Parse(input string) (*types.ParseResult, error) {
	return p.ParseMode(input, p.cfg.Mode)
}

// ParseMode parses with an explicit mode, overriding the configured one
// for this call while keeping the parser's engines.
func (p *Parser) ParseMode(input string, mode types.ParseMode) (*types.ParseResult, error) {
	switch mode {
	case types.ModeFull:
		return p.parseFull(input)
	case types.ModeLight:
		return p.heuristic.Parse(input)
	default:
		return p.parseAuto(input)
	}
}

// parseFull prefers the statistical engine; when it is missing or its
// model cannot load, the heuristic result is returned relabeled as
// light so callers see which engine actually ran.
func (p *Parser) parseFull(input string) (*types.ParseResult, error) {
	if p.statistical != nil {
		result, err := p.statistical.Parse(input)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrModelUnavailable) {
			return nil, err
		}
	}
	result, err := p.heuristic.Parse(input)
	if err != nil {
		return nil, err
	}
	result.Mode = types.ModeLight
	return result, nil
}

// parseAuto tries the statistical engine first and arbitrates against
// the heuristic when the statistical confidence is below threshold.
func (p *Parser) parseAuto(input string) (*types.ParseResult, error) {
	if p.statistical == nil {
		return p.heuristic.Parse(input)
	}

	statistical, statErr := p.statistical.Parse(input)
	if statErr == nil && statistical.Confidence >= p.cfg.ConfidenceThreshold {
		return statistical, nil
	}

	heuristic, heurErr := p.heuristic.Parse(input)
	if statErr != nil {
		// Statistical engine failed outright; the heuristic result (or
		// its error) is all we have.
		return heuristic, heurErr
	}
	if heurErr != nil {
		return statistical, nil
	}
	return arbitrate(statistical, heuristic, p.cfg.ConfidenceThreshold), nil
}

// arbitrate picks between a statistical and a heuristic result. The
// statistical result wins at or above the threshold and on ties;
// otherwise the higher confidence wins, with a heuristic winner
// relabeled as light. Either argument may be nil.
func arbitrate(statistical, heuristic *types.ParseResult, threshold float64) *types.ParseResult {
	if statistical == nil {
		return heuristic
	}
	if heuristic == nil {
		return statistical
	}
	if statistical.Confidence >= threshold {
		return statistical
	}
	if heuristic.Confidence > statistical.Confidence {
		heuristic.Mode = types.ModeLight
		return heuristic
	}
	return statistical
}

// Parse is a convenience wrapper using default configuration and the
// heuristic engine only.
func Parse(input string) (*types.ParseResult, error) {
	return NewDefault().Parse(input)
}

// ParseWithMode parses with a specific mode and default settings.
func ParseWithMode(input string, mode types.ParseMode) (*types.ParseResult, error) {
	return New(DefaultConfig().WithMode(mode), nil).Parse(input)
}
