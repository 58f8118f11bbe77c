package parser

import (
	"testing"

	"github.com/zantetsu/zantetsu/internal/model"
	"github.com/zantetsu/zantetsu/internal/types"
)

func span(start, end int) model.TokenSpan {
	return model.TokenSpan{Start: start, End: end}
}

func tagIdx(tags ...BioTag) []int {
	out := make([]int, len(tags))
	for i, t := range tags {
		out[i] = t.Index()
	}
	return out
}

func TestAssembleBasicEntities(t *testing.T) {
	input := "[SubsPlease] Jujutsu Kaisen - 24 (1080p).mkv"
	offsets := []model.TokenSpan{
		span(0, 0),   // [CLS]
		span(1, 11),  // SubsPlease
		span(13, 20), // Jujutsu
		span(21, 27), // Kaisen
		span(30, 32), // 24
		span(34, 39), // 1080p
		span(41, 44), // mkv
		span(0, 0),   // [SEP]
	}
	tags := tagIdx(
		TagOutside, TagBeginGroup, TagBeginTitle, TagInsideTitle,
		TagBeginEpisode, TagResolution, TagExtension, TagOutside,
	)

	entities, err := AssembleEntities(input, offsets, tags)
	if err != nil {
		t.Fatalf("AssembleEntities: %v", err)
	}
	if len(entities) != 5 {
		t.Fatalf("got %d entities, want 5: %+v", len(entities), entities)
	}

	want := []struct {
		typ  EntityType
		text string
	}{
		{EntityGroup, "SubsPlease"},
		{EntityTitle, "Jujutsu Kaisen"},
		{EntityEpisode, "24"},
		{EntityResolution, "1080p"},
		{EntityExtension, "mkv"},
	}
	for i, w := range want {
		if entities[i].Type != w.typ || entities[i].Text != w.text {
			t.Errorf("entity %d = (%v, %q), want (%v, %q)",
				i, entities[i].Type, entities[i].Text, w.typ, w.text)
		}
	}
}

func TestAssembleSkipsStructuralTokens(t *testing.T) {
	// CLS/SEP carry (0,0) offsets; even a non-outside tag on them must
	// not produce an entity.
	entities, err := AssembleEntities("abc",
		[]model.TokenSpan{span(0, 0), span(0, 3), span(0, 0)},
		tagIdx(TagBeginTitle, TagBeginGroup, TagResolution))
	if err != nil {
		t.Fatalf("AssembleEntities: %v", err)
	}
	if len(entities) != 1 || entities[0].Type != EntityGroup || entities[0].Text != "abc" {
		t.Fatalf("entities = %+v, want single group \"abc\"", entities)
	}
}

func TestAssembleSingleTokenTagRepetitionExtends(t *testing.T) {
	// Subword tokenizers split "1080p" into "1080"+"p"; a contiguous run
	// of the same single-token tag is one entity.
	input := "1080p"
	entities, err := AssembleEntities(input,
		[]model.TokenSpan{span(0, 4), span(4, 5)},
		tagIdx(TagResolution, TagResolution))
	if err != nil {
		t.Fatalf("AssembleEntities: %v", err)
	}
	if len(entities) != 1 || entities[0].Text != "1080p" {
		t.Fatalf("entities = %+v, want single resolution \"1080p\"", entities)
	}
}

func TestAssembleBeginRestartsSpanningEntity(t *testing.T) {
	// A second begin tag of the same family starts a new entity rather
	// than extending the first.
	input := "aa bb"
	entities, err := AssembleEntities(input,
		[]model.TokenSpan{span(0, 2), span(3, 5)},
		tagIdx(TagBeginTitle, TagBeginTitle))
	if err != nil {
		t.Fatalf("AssembleEntities: %v", err)
	}
	if len(entities) != 2 || entities[0].Text != "aa" || entities[1].Text != "bb" {
		t.Fatalf("entities = %+v, want two title entities", entities)
	}
}

func TestAssembleRejectsBadTagIndex(t *testing.T) {
	if _, err := AssembleEntities("x", []model.TokenSpan{span(0, 1)}, []int{NumTags}); err == nil {
		t.Fatal("expected error for out-of-range tag index")
	}
}

func TestBuildResultLenientMapping(t *testing.T) {
	entities := []Entity{
		{Type: EntityTitle, Text: "Frieren"},
		{Type: EntityResolution, Text: "2160p"},
		{Type: EntityVCodec, Text: "x265"},
		{Type: EntityACodec, Text: "Dolby Digital"},
		{Type: EntitySource, Text: "BDRip"},
		{Type: EntityCRC32, Text: "deadbeef"},
		{Type: EntityExtension, Text: "MKV"},
		{Type: EntityVersion, Text: "v2"},
	}
	r := buildResult("input", entities)

	if r.Resolution == nil || *r.Resolution != types.UHD2160 {
		t.Errorf("resolution = %v, want UHD2160", r.Resolution)
	}
	if r.VideoCodec == nil || *r.VideoCodec != types.HEVC {
		t.Errorf("video codec = %v, want HEVC", r.VideoCodec)
	}
	if r.AudioCodec == nil || *r.AudioCodec != types.AC3 {
		t.Errorf("audio codec = %v, want AC3", r.AudioCodec)
	}
	if r.Source == nil || *r.Source != types.BluRay {
		t.Errorf("source = %v, want BluRay", r.Source)
	}
	wantStr(t, "crc32", r.CRC32, "DEADBEEF")
	wantStr(t, "extension", r.Extension, "mkv")
	if r.ReleaseVersion == nil || *r.ReleaseVersion != 2 {
		t.Errorf("version = %v, want 2", r.ReleaseVersion)
	}
	if r.Mode != types.ModeFull {
		t.Errorf("mode = %s, want full", r.Mode)
	}
}

func TestBuildResultConfidenceIsPopulatedFraction(t *testing.T) {
	r := buildResult("x", []Entity{
		{Type: EntityTitle, Text: "A"},
		{Type: EntityGroup, Text: "B"},
		{Type: EntityEpisode, Text: "3"},
	})
	want := 3.0 / 11.0
	if r.Confidence != want {
		t.Errorf("confidence = %v, want %v", r.Confidence, want)
	}
}

func TestBuildResultDropsUnparseableNumbers(t *testing.T) {
	r := buildResult("x", []Entity{
		{Type: EntityEpisode, Text: "abc"},
		{Type: EntitySeason, Text: "S"},
	})
	if r.Episode != nil || r.Season != nil {
		t.Errorf("non-numeric episode/season should stay absent, got %v / %v", r.Episode, r.Season)
	}
	if r.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", r.Confidence)
	}
}
