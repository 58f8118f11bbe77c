// Package scoring turns extracted metadata into a single comparable
// quality score, adjusted for the consuming client's device, network
// and decode capabilities.
package scoring

import (
	"math"

	"github.com/zantetsu/zantetsu/internal/types"
)

// Default quality profile weights.
const (
	WeightResolution = 0.35
	WeightVideoCodec = 0.25
	WeightAudioCodec = 0.15
	WeightSource     = 0.15
	WeightGroupTrust = 0.10
)

// weightTolerance is how far the weight sum may drift from 1.0 before
// a profile is considered invalid.
const weightTolerance = 0.01

// QualityProfile defines the relative importance of each quality
// dimension. Weights should sum to 1.0.
type QualityProfile struct {
	ResolutionWeight float64 `json:"resolution_weight" yaml:"resolution_weight"`
	VideoCodecWeight float64 `json:"video_codec_weight" yaml:"video_codec_weight"`
	AudioCodecWeight float64 `json:"audio_codec_weight" yaml:"audio_codec_weight"`
	SourceWeight     float64 `json:"source_weight" yaml:"source_weight"`
	GroupTrustWeight float64 `json:"group_trust_weight" yaml:"group_trust_weight"`
}

// DefaultProfile returns the standard weighting: resolution dominates,
// then video codec, with audio, source and group trust filling out the
// remainder.
func DefaultProfile() QualityProfile {
	return QualityProfile{
		ResolutionWeight: WeightResolution,
		VideoCodecWeight: WeightVideoCodec,
		AudioCodecWeight: WeightAudioCodec,
		SourceWeight:     WeightSource,
		GroupTrustWeight: WeightGroupTrust,
	}
}

// IsValid reports whether the weights sum to approximately 1.0.
func (p QualityProfile) IsValid() bool {
	sum := p.ResolutionWeight + p.VideoCodecWeight + p.AudioCodecWeight +
		p.SourceWeight + p.GroupTrustWeight
	return math.Abs(sum-1.0) < weightTolerance
}

// QualityScores holds per-dimension scores for one file. Dimension
// pointers are nil when the metadata was absent; GroupTrust is always
// present (unknown groups get the neutral 0.5).
type QualityScores struct {
	Resolution *float64 `json:"resolution,omitempty"`
	VideoCodec *float64 `json:"video_codec,omitempty"`
	AudioCodec *float64 `json:"audio_codec,omitempty"`
	Source     *float64 `json:"source,omitempty"`
	GroupTrust float64  `json:"group_trust"`
}

// ScoresFromMetadata builds dimension scores from parsed metadata.
// Absent fields stay absent rather than defaulting, so Compute can
// distinguish "unknown" from "bad".
func ScoresFromMetadata(
	resolution *types.Resolution,
	videoCodec *types.VideoCodec,
	audioCodec *types.AudioCodec,
	source *types.MediaSource,
	groupTrust float64,
) QualityScores {
	s := QualityScores{GroupTrust: groupTrust}
	if resolution != nil {
		v := resolution.Score()
		s.Resolution = &v
	}
	if videoCodec != nil {
		v := videoCodec.Score()
		s.VideoCodec = &v
	}
	if audioCodec != nil {
		v := audioCodec.Score()
		s.AudioCodec = &v
	}
	if source != nil {
		v := source.Score()
		s.Source = &v
	}
	return s
}

// ScoresFromResult builds dimension scores straight from a parse result.
func ScoresFromResult(r *types.ParseResult, groupTrust float64) QualityScores {
	return ScoresFromMetadata(r.Resolution, r.VideoCodec, r.AudioCodec, r.Source, groupTrust)
}

// neutralScore stands in for a missing dimension so absent metadata is
// neither rewarded nor punished.
const neutralScore = 0.5

// Compute returns the weighted quality score. Missing dimensions
// contribute the neutral 0.5.
func (s QualityScores) Compute(profile QualityProfile) float64 {
	return profile.ResolutionWeight*orNeutral(s.Resolution) +
		profile.VideoCodecWeight*orNeutral(s.VideoCodec) +
		profile.AudioCodecWeight*orNeutral(s.AudioCodec) +
		profile.SourceWeight*orNeutral(s.Source) +
		profile.GroupTrustWeight*s.GroupTrust
}

func orNeutral(v *float64) float64 {
	if v == nil {
		return neutralScore
	}
	return *v
}
