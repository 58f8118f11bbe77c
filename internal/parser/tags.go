// Package parser extracts structured metadata from anime release
// filenames and torrent names.
//
// Two engines share one output shape: a fast regex heuristic
// (HeuristicParser) and a statistical sequence-labeling path (Viterbi
// decoding over externally supplied emission/transition scores, assembled
// into entities). The unified Parser arbitrates between them by
// confidence. All engines are pure functions of their input; compiled
// patterns and tag tables are read-only after init and safe to share
// across goroutines.
package parser

// BioTag labels one token in the BIO (Begin-Inside-Outside) sequence
// labeling scheme. Title, group, episode and season entities span
// multiple tokens and carry begin/inside variants; the remaining fields
// are single-token tags. Version stays single-token even though episode
// is begin/inside — version markers never span tokens.
type BioTag int

const (
	TagBeginTitle BioTag = iota
	TagInsideTitle
	TagBeginGroup
	TagInsideGroup
	TagBeginEpisode
	TagInsideEpisode
	TagBeginSeason
	TagInsideSeason
	TagResolution
	TagVCodec
	TagACodec
	TagSource
	TagYear
	TagCRC32
	TagExtension
	TagVersion
	TagOutside
)

// NumTags is the size of the tag vocabulary. Emission vectors and the
// transition matrix are indexed 0..NumTags-1.
const NumTags = 17

// AllTags returns the tag vocabulary in index order.
func AllTags() []BioTag {
	tags := make([]BioTag, NumTags)
	for i := range tags {
		tags[i] = BioTag(i)
	}
	return tags
}

// TagFromIndex converts a matrix index back to a tag. Returns false for
// indices outside the vocabulary.
func TagFromIndex(idx int) (BioTag, bool) {
	if idx < 0 || idx >= NumTags {
		return 0, false
	}
	return BioTag(idx), true
}

// Index returns the tag's matrix index.
func (t BioTag) Index() int { return int(t) }

// IsBegin reports whether t is a "begin" tag.
func (t BioTag) IsBegin() bool {
	switch t {
	case TagBeginTitle, TagBeginGroup, TagBeginEpisode, TagBeginSeason:
		return true
	}
	return false
}

// IsInside reports whether t is an "inside" tag.
func (t BioTag) IsInside() bool {
	switch t {
	case TagInsideTitle, TagInsideGroup, TagInsideEpisode, TagInsideSeason:
		return true
	}
	return false
}

func (t BioTag) String() string {
	switch t {
	case TagBeginTitle:
		return "B-TITLE"
	case TagInsideTitle:
		return "I-TITLE"
	case TagBeginGroup:
		return "B-GROUP"
	case TagInsideGroup:
		return "I-GROUP"
	case TagBeginEpisode:
		return "B-EPISODE"
	case TagInsideEpisode:
		return "I-EPISODE"
	case TagBeginSeason:
		return "B-SEASON"
	case TagInsideSeason:
		return "I-SEASON"
	case TagResolution:
		return "RESOLUTION"
	case TagVCodec:
		return "VCODEC"
	case TagACodec:
		return "ACODEC"
	case TagSource:
		return "SOURCE"
	case TagYear:
		return "YEAR"
	case TagCRC32:
		return "CRC32"
	case TagExtension:
		return "EXTENSION"
	case TagVersion:
		return "VERSION"
	case TagOutside:
		return "O"
	}
	return "INVALID"
}

// EntityType identifies the metadata field an entity belongs to.
type EntityType int

const (
	EntityTitle EntityType = iota
	EntityGroup
	EntityEpisode
	EntitySeason
	EntityResolution
	EntityVCodec
	EntityACodec
	EntitySource
	EntityYear
	EntityCRC32
	EntityExtension
	EntityVersion
)

// EntityType returns the entity family for t, or false for Outside.
func (t BioTag) EntityType() (EntityType, bool) {
	switch t {
	case TagBeginTitle, TagInsideTitle:
		return EntityTitle, true
	case TagBeginGroup, TagInsideGroup:
		return EntityGroup, true
	case TagBeginEpisode, TagInsideEpisode:
		return EntityEpisode, true
	case TagBeginSeason, TagInsideSeason:
		return EntitySeason, true
	case TagResolution:
		return EntityResolution, true
	case TagVCodec:
		return EntityVCodec, true
	case TagACodec:
		return EntityACodec, true
	case TagSource:
		return EntitySource, true
	case TagYear:
		return EntityYear, true
	case TagCRC32:
		return EntityCRC32, true
	case TagExtension:
		return EntityExtension, true
	case TagVersion:
		return EntityVersion, true
	}
	return 0, false
}

// ValidTransition reports whether `to` may immediately follow `from`.
//
// The grammar is structural, not learned:
//   - an inside tag may not follow an inside tag of a different family
//   - an inside tag may not be followed by its own family's begin tag
//     (a new span restarts through outside or another family)
//   - an inside tag may not follow outside without an intervening begin
//
// All other pairs are valid, including begin→inside, inside→inside of the
// same family, any→outside and any→single-token tag.
func ValidTransition(from, to BioTag) bool {
	if from.IsInside() && to.IsBegin() {
		fromFam, _ := from.EntityType()
		toFam, _ := to.EntityType()
		if fromFam == toFam {
			return false
		}
	}
	if from.IsInside() && to.IsInside() {
		fromFam, _ := from.EntityType()
		toFam, _ := to.EntityType()
		if fromFam != toFam {
			return false
		}
	}
	if from == TagOutside && to.IsInside() {
		return false
	}
	return true
}

// Entity is a contiguous token span decoded from the tag sequence,
// produced only by the statistical path's assembler.
type Entity struct {
	Type       EntityType
	StartToken int // inclusive
	EndToken   int // exclusive
	Text       string
}
