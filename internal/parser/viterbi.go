package parser

import (
	"fmt"
	"math"
)

// ViterbiDecoder finds the highest-scoring tag sequence for a token
// sequence given per-position emission scores and a pairwise transition
// matrix, subject to the hard BIO transition grammar.
//
// The grammar is enforced structurally: a forbidden transition is
// excluded from the max, not merely discouraged, so the decoded path
// obeys the grammar even when the supplied transition matrix leaked
// positive score onto a forbidden pair. Complexity is O(len × tags²).
type ViterbiDecoder struct {
	numTags int
}

// NewViterbiDecoder creates a decoder over a vocabulary of numTags tags.
func NewViterbiDecoder(numTags int) *ViterbiDecoder {
	return &ViterbiDecoder{numTags: numTags}
}

// Decode runs the Viterbi dynamic program, checking transition validity
// per cell. Emissions is [seqLen][numTags]; transitions is
// [numTags][numTags]. An empty emission sequence decodes to an empty
// path. Ties break toward the lowest tag index, which makes repeated
// decodes of identical inputs deterministic.
func (d *ViterbiDecoder) Decode(emissions, transitions [][]float32) ([]int, error) {
	seqLen := len(emissions)
	if seqLen == 0 {
		return nil, nil
	}
	if len(emissions[0]) != d.numTags {
		return nil, fmt.Errorf("%w: emission width %d, want %d",
			ErrModelUnavailable, len(emissions[0]), d.numTags)
	}

	negInf := float32(math.Inf(-1))

	dp := make([][]float32, seqLen)
	backptr := make([][]int, seqLen)
	for pos := range dp {
		dp[pos] = make([]float32, d.numTags)
		backptr[pos] = make([]int, d.numTags)
		for tag := range dp[pos] {
			dp[pos][tag] = negInf
			backptr[pos][tag] = -1
		}
	}

	for tag := 0; tag < d.numTags; tag++ {
		dp[0][tag] = emissions[0][tag]
	}

	for pos := 1; pos < seqLen; pos++ {
		for curr := 0; curr < d.numTags; curr++ {
			currTag, ok := TagFromIndex(curr)
			if !ok {
				return nil, fmt.Errorf("invalid tag index %d", curr)
			}
			best := negInf
			bestPrev := -1
			for prev := 0; prev < d.numTags; prev++ {
				prevTag, ok := TagFromIndex(prev)
				if !ok {
					return nil, fmt.Errorf("invalid tag index %d", prev)
				}
				if !ValidTransition(prevTag, currTag) {
					continue
				}
				score := dp[pos-1][prev] + transitions[prev][curr] + emissions[pos][curr]
				if score > best {
					best = score
					bestPrev = prev
				}
			}
			dp[pos][curr] = best
			backptr[pos][curr] = bestPrev
		}
	}

	return backtrack(dp, backptr, seqLen, d.numTags), nil
}

// DecodeConstrained is the production variant: it precomputes the
// validity mask once per call instead of consulting the grammar per
// cell. Identical output to Decode.
func (d *ViterbiDecoder) DecodeConstrained(emissions, transitions [][]float32) ([]int, error) {
	valid := make([][]bool, d.numTags)
	for prev := 0; prev < d.numTags; prev++ {
		valid[prev] = make([]bool, d.numTags)
		prevTag, ok := TagFromIndex(prev)
		if !ok {
			continue
		}
		for curr := 0; curr < d.numTags; curr++ {
			if currTag, ok := TagFromIndex(curr); ok {
				valid[prev][curr] = ValidTransition(prevTag, currTag)
			}
		}
	}

	seqLen := len(emissions)
	if seqLen == 0 {
		return nil, nil
	}
	if len(emissions[0]) != d.numTags {
		return nil, fmt.Errorf("%w: emission width %d, want %d",
			ErrModelUnavailable, len(emissions[0]), d.numTags)
	}

	negInf := float32(math.Inf(-1))

	dp := make([][]float32, seqLen)
	backptr := make([][]int, seqLen)
	for pos := range dp {
		dp[pos] = make([]float32, d.numTags)
		backptr[pos] = make([]int, d.numTags)
		for tag := range dp[pos] {
			dp[pos][tag] = negInf
			backptr[pos][tag] = -1
		}
	}

	for tag := 0; tag < d.numTags; tag++ {
		dp[0][tag] = emissions[0][tag]
	}

	for pos := 1; pos < seqLen; pos++ {
		for curr := 0; curr < d.numTags; curr++ {
			best := negInf
			bestPrev := -1
			for prev := 0; prev < d.numTags; prev++ {
				if !valid[prev][curr] {
					continue
				}
				score := dp[pos-1][prev] + transitions[prev][curr] + emissions[pos][curr]
				if score > best {
					best = score
					bestPrev = prev
				}
			}
			dp[pos][curr] = best
			backptr[pos][curr] = bestPrev
		}
	}

	return backtrack(dp, backptr, seqLen, d.numTags), nil
}

// backtrack reconstructs the optimal path from the best final tag.
// Final-tag ties break toward the lowest index.
func backtrack(dp [][]float32, backptr [][]int, seqLen, numTags int) []int {
	bestFinal := 0
	bestScore := float32(math.Inf(-1))
	for tag := 0; tag < numTags; tag++ {
		if dp[seqLen-1][tag] > bestScore {
			bestScore = dp[seqLen-1][tag]
			bestFinal = tag
		}
	}

	path := make([]int, seqLen)
	path[seqLen-1] = bestFinal
	curr := bestFinal
	for pos := seqLen - 1; pos > 0; pos-- {
		prev := backptr[pos][curr]
		if prev < 0 {
			prev = 0
		}
		path[pos-1] = prev
		curr = prev
	}
	return path
}
