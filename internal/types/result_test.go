package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func strp(s string) *string    { return &s }
func intp(i int) *int          { return &i }
func resp(r Resolution) *Resolution  { return &r }
func vcp(v VideoCodec) *VideoCodec   { return &v }
func acp(a AudioCodec) *AudioCodec   { return &a }
func srcp(m MediaSource) *MediaSource { return &m }

func TestNewParseResultIsEmpty(t *testing.T) {
	r := NewParseResult("test input", ModeLight)
	if r.Input != "test input" {
		t.Errorf("Input = %q", r.Input)
	}
	if r.HasTitle() || r.HasMetadata() {
		t.Error("new result should have no fields")
	}
	if r.Confidence != 0 {
		t.Errorf("Confidence = %f, want 0", r.Confidence)
	}
	if r.Mode != ModeLight {
		t.Errorf("Mode = %s, want light", r.Mode)
	}
}

func TestHasTitleAndMetadata(t *testing.T) {
	r := NewParseResult("test", ModeLight)
	r.Title = strp("Jujutsu Kaisen")
	if !r.HasTitle() {
		t.Error("HasTitle() = false")
	}
	if r.HasMetadata() {
		t.Error("HasMetadata() = true with only a title")
	}
	r.Resolution = resp(FHD1080)
	if !r.HasMetadata() {
		t.Error("HasMetadata() = false with resolution set")
	}
}

func TestClampConfidence(t *testing.T) {
	r := NewParseResult("test", ModeLight)
	r.Confidence = 1.7
	r.ClampConfidence()
	if r.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0", r.Confidence)
	}
	r.Confidence = -0.3
	r.ClampConfidence()
	if r.Confidence != 0.0 {
		t.Errorf("Confidence = %f, want 0.0", r.Confidence)
	}
}

func TestParseResultDisplay(t *testing.T) {
	r := NewParseResult("test", ModeLight)
	r.Title = strp("Jujutsu Kaisen")
	r.Episode = SingleEpisode(24)
	r.Resolution = resp(FHD1080)
	r.Confidence = 0.95
	s := r.String()
	for _, want := range []string{"Jujutsu Kaisen", "1080p", "0.95"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestParseResultJSONRoundTrip(t *testing.T) {
	r := NewParseResult("test input", ModeLight)
	r.Title = strp("One Piece")
	r.Group = strp("SubsPlease")
	r.Episode = SingleEpisode(1084)
	r.Season = intp(1)
	r.Resolution = resp(FHD1080)
	r.VideoCodec = vcp(H264)
	r.AudioCodec = acp(AAC)
	r.Source = srcp(WebDL)
	r.Year = intp(2024)
	r.CRC32 = strp("DEADBEEF")
	r.Extension = strp("mkv")
	r.ReleaseVersion = intp(2)
	r.Confidence = 0.9178230411

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ParseResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.Equal(&back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, *r)
	}
}

func TestPartialResultJSONRoundTrip(t *testing.T) {
	// Absent fields must stay absent, not become zero values.
	r := NewParseResult("sparse", ModeFull)
	r.Resolution = resp(UHD2160)
	r.Confidence = 0.09090909090909091

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ParseResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Title != nil || back.Season != nil || back.Episode != nil {
		t.Error("absent fields became present after round trip")
	}
	if back.Confidence != r.Confidence {
		t.Errorf("confidence lost precision: got %v, want %v", back.Confidence, r.Confidence)
	}
	if !r.Equal(&back) {
		t.Error("round trip mismatch")
	}
}
