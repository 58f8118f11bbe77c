package types

import (
	"fmt"
	"strings"
)

// ParseResult is the primary output of the parsing engine: all metadata
// extracted from an anime torrent/file name plus confidence and
// provenance. Optional fields are pointers so absence survives
// serialization round-trips.
//
// A result is populated by exactly one engine and treated as immutable
// afterwards; the only post-construction mutation is the dispatcher
// relabeling Mode when a fallback engine produced the result.
type ParseResult struct {
	// Input is the original string the result was parsed from.
	Input string `json:"input"`

	// Title is the extracted anime title, normalized.
	Title *string `json:"title,omitempty"`
	// Group is the release group name (e.g. "SubsPlease").
	Group *string `json:"group,omitempty"`
	// Episode is the episode specification, if any.
	Episode *EpisodeSpec `json:"episode,omitempty"`
	// Season is the season number.
	Season *int `json:"season,omitempty"`
	// Resolution is the video resolution.
	Resolution *Resolution `json:"resolution,omitempty"`
	// VideoCodec is the video codec.
	VideoCodec *VideoCodec `json:"video_codec,omitempty"`
	// AudioCodec is the audio codec.
	AudioCodec *AudioCodec `json:"audio_codec,omitempty"`
	// Source is the origin medium.
	Source *MediaSource `json:"source,omitempty"`
	// Year is the release year.
	Year *int `json:"year,omitempty"`
	// CRC32 is the 8-hex-digit checksum, uppercased.
	CRC32 *string `json:"crc32,omitempty"`
	// Extension is the file extension, lowercased, without the dot.
	Extension *string `json:"extension,omitempty"`
	// ReleaseVersion is the release revision (v2 = 2) when not part of
	// the episode spec.
	ReleaseVersion *int `json:"version,omitempty"`

	// Confidence is the engine's completeness heuristic in [0.0, 1.0].
	Confidence float64 `json:"confidence"`
	// Mode records which engine produced this result.
	Mode ParseMode `json:"parse_mode"`
}

// NewParseResult creates an empty result for the given input and mode.
func NewParseResult(input string, mode ParseMode) *ParseResult {
	return &ParseResult{Input: input, Mode: mode}
}

// HasTitle reports whether a title was extracted.
func (r *ParseResult) HasTitle() bool {
	return r.Title != nil
}

// HasMetadata reports whether any metadata beyond the title was extracted.
func (r *ParseResult) HasMetadata() bool {
	return r.Episode != nil || r.Season != nil || r.Resolution != nil ||
		r.VideoCodec != nil || r.AudioCodec != nil || r.Source != nil
}

// ClampConfidence bounds Confidence to [0.0, 1.0].
func (r *ParseResult) ClampConfidence() {
	if r.Confidence < 0 {
		r.Confidence = 0
	} else if r.Confidence > 1 {
		r.Confidence = 1
	}
}

func (r *ParseResult) String() string {
	var b strings.Builder
	b.WriteString("ParseResult(")
	if r.Title != nil {
		fmt.Fprintf(&b, "title=%q", *r.Title)
	}
	if r.Episode != nil {
		fmt.Fprintf(&b, ", ep=%s", r.Episode)
	}
	if r.Resolution != nil {
		fmt.Fprintf(&b, ", res=%s", r.Resolution)
	}
	fmt.Fprintf(&b, ", conf=%.2f, mode=%s)", r.Confidence, r.Mode)
	return b.String()
}

// Equal reports whether two results carry identical metadata. Used by
// round-trip tests; pointer fields compare by value.
func (r *ParseResult) Equal(other *ParseResult) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Input == other.Input &&
		strPtrEq(r.Title, other.Title) &&
		strPtrEq(r.Group, other.Group) &&
		r.Episode.Equal(other.Episode) &&
		intPtrEq(r.Season, other.Season) &&
		resPtrEq(r.Resolution, other.Resolution) &&
		vcPtrEq(r.VideoCodec, other.VideoCodec) &&
		acPtrEq(r.AudioCodec, other.AudioCodec) &&
		srcPtrEq(r.Source, other.Source) &&
		intPtrEq(r.Year, other.Year) &&
		strPtrEq(r.CRC32, other.CRC32) &&
		strPtrEq(r.Extension, other.Extension) &&
		intPtrEq(r.ReleaseVersion, other.ReleaseVersion) &&
		r.Confidence == other.Confidence &&
		r.Mode == other.Mode
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEq(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func resPtrEq(a, b *Resolution) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func vcPtrEq(a, b *VideoCodec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func acPtrEq(a, b *AudioCodec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func srcPtrEq(a, b *MediaSource) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
