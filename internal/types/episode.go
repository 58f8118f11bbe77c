package types

import (
	"fmt"
	"strings"
)

// EpisodeKind discriminates the active shape of an EpisodeSpec.
type EpisodeKind string

const (
	// EpisodeSingle is a single episode number: "01", "1084".
	EpisodeSingle EpisodeKind = "single"
	// EpisodeRange is an inclusive numeric range: "01-12", "01~12".
	EpisodeRange EpisodeKind = "range"
	// EpisodeMulti is an explicit list of discrete episodes: "01, 03, 05".
	EpisodeMulti EpisodeKind = "multi"
	// EpisodeVersion is a revision release: "12v2".
	EpisodeVersion EpisodeKind = "version"
)

// EpisodeSpec describes episode numbering for a release. Exactly one shape
// is active, selected by Kind; the other fields are zero.
type EpisodeSpec struct {
	Kind EpisodeKind `json:"kind"`

	// Episode is the number for single and version shapes.
	Episode int `json:"episode,omitempty"`
	// Start and End bound an inclusive range (Start < End).
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`
	// Episodes lists discrete episode numbers for the multi shape.
	Episodes []int `json:"episodes,omitempty"`
	// Version is the revision number for the version shape (v2 = 2).
	Version int `json:"version,omitempty"`
}

// SingleEpisode returns a single-episode spec.
func SingleEpisode(ep int) *EpisodeSpec {
	return &EpisodeSpec{Kind: EpisodeSingle, Episode: ep}
}

// RangeEpisode returns an inclusive range spec. Start must be strictly
// less than end; degenerate or reversed ranges are rejected.
func RangeEpisode(start, end int) (*EpisodeSpec, error) {
	if start >= end {
		return nil, fmt.Errorf("invalid episode range %d-%d: start must be less than end", start, end)
	}
	return &EpisodeSpec{Kind: EpisodeRange, Start: start, End: end}, nil
}

// MultiEpisode returns a discrete-list spec.
func MultiEpisode(eps []int) *EpisodeSpec {
	return &EpisodeSpec{Kind: EpisodeMulti, Episodes: eps}
}

// VersionedEpisode returns an (episode, version) revision spec.
func VersionedEpisode(ep, version int) *EpisodeSpec {
	return &EpisodeSpec{Kind: EpisodeVersion, Episode: ep, Version: version}
}

// Equal reports whether two specs describe the same episodes.
func (e *EpisodeSpec) Equal(other *EpisodeSpec) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind || e.Episode != other.Episode ||
		e.Start != other.Start || e.End != other.End || e.Version != other.Version {
		return false
	}
	if len(e.Episodes) != len(other.Episodes) {
		return false
	}
	for i := range e.Episodes {
		if e.Episodes[i] != other.Episodes[i] {
			return false
		}
	}
	return true
}

func (e *EpisodeSpec) String() string {
	switch e.Kind {
	case EpisodeSingle:
		return fmt.Sprintf("%02d", e.Episode)
	case EpisodeRange:
		return fmt.Sprintf("%02d-%02d", e.Start, e.End)
	case EpisodeMulti:
		parts := make([]string, len(e.Episodes))
		for i, ep := range e.Episodes {
			parts[i] = fmt.Sprintf("%02d", ep)
		}
		return strings.Join(parts, ", ")
	case EpisodeVersion:
		return fmt.Sprintf("%02dv%d", e.Episode, e.Version)
	}
	return ""
}
