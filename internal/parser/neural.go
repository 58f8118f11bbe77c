package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zantetsu/zantetsu/internal/model"
	"github.com/zantetsu/zantetsu/internal/types"
)

// StatisticalParser labels every wordpiece of the input with a BIO tag
// and assembles the labeled spans into metadata. Emission and
// transition scores come from an external model behind the
// model.Scorer boundary; this package owns decoding and assembly.
//
// When the scorer cannot load its model the parser degrades with
// ErrModelUnavailable so the dispatcher can fall back to the heuristic
// engine.
type StatisticalParser struct {
	scorer  model.Scorer
	viterbi *ViterbiDecoder
}

// NewStatisticalParser wraps a scorer. The scorer's model may load
// lazily; construction never fails.
func NewStatisticalParser(scorer model.Scorer) *StatisticalParser {
	return &StatisticalParser{
		scorer:  scorer,
		viterbi: NewViterbiDecoder(NumTags),
	}
}

// Parse runs the full statistical pipeline: score, constrained Viterbi
// decode, entity assembly.
func (p *StatisticalParser) Parse(input string) (*types.ParseResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if p.scorer == nil {
		return nil, fmt.Errorf("%w: no scorer configured", ErrModelUnavailable)
	}

	scores, err := p.scorer.Score(input)
	if err != nil {
		if errors.Is(err, model.ErrNotLoaded) {
			return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		return nil, fmt.Errorf("scoring %q: %w", input, err)
	}
	if len(scores.Emissions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, input)
	}
	for i, row := range scores.Emissions {
		if len(row) != NumTags {
			return nil, fmt.Errorf("%w: emission row %d has width %d, want %d",
				ErrModelUnavailable, i, len(row), NumTags)
		}
	}

	tagIndices, err := p.viterbi.DecodeConstrained(scores.Emissions, scores.Transitions)
	if err != nil {
		return nil, err
	}

	entities, err := AssembleEntities(input, scores.Offsets, tagIndices)
	if err != nil {
		return nil, err
	}

	return buildResult(input, entities), nil
}
