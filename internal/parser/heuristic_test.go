package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zantetsu/zantetsu/internal/types"
)

func TestHeuristicEmptyInput(t *testing.T) {
	p := NewHeuristicParser()
	for _, input := range []string{"", "   ", "\t\n"} {
		if _, err := p.Parse(input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Parse(%q): err = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestHeuristicSubsPleaseFormat(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("[SubsPlease] Jujutsu Kaisen - 24 (1080p) [A1B2C3D4].mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantStr(t, "title", r.Title, "Jujutsu Kaisen")
	wantStr(t, "group", r.Group, "SubsPlease")
	if r.Episode == nil || !r.Episode.Equal(types.SingleEpisode(24)) {
		t.Errorf("episode = %v, want Single(24)", r.Episode)
	}
	if r.Resolution == nil || *r.Resolution != types.FHD1080 {
		t.Errorf("resolution = %v, want 1080p", r.Resolution)
	}
	wantStr(t, "crc32", r.CRC32, "A1B2C3D4")
	wantStr(t, "extension", r.Extension, "mkv")
	if r.Mode != types.ModeLight {
		t.Errorf("mode = %s, want light", r.Mode)
	}
}

func TestHeuristicVersionedEpisode(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("[Erai-raws] Shingeki no Kyojin - The Final Season - 28v2 [1080p][HEVC].mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantStr(t, "group", r.Group, "Erai-raws")
	if r.Episode == nil || !r.Episode.Equal(types.VersionedEpisode(28, 2)) {
		t.Errorf("episode = %v, want Version(28, 2)", r.Episode)
	}
	if r.Resolution == nil || *r.Resolution != types.FHD1080 {
		t.Errorf("resolution = %v, want 1080p", r.Resolution)
	}
	if r.VideoCodec == nil || *r.VideoCodec != types.HEVC {
		t.Errorf("video codec = %v, want HEVC", r.VideoCodec)
	}
	wantStr(t, "extension", r.Extension, "mkv")
}

func TestHeuristicBatchRange(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("[Judas] Golden Kamuy S3 - 01-12 (1080p) [Batch]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantStr(t, "group", r.Group, "Judas")
	if r.Season == nil || *r.Season != 3 {
		t.Errorf("season = %v, want 3", r.Season)
	}
	want, _ := types.RangeEpisode(1, 12)
	if r.Episode == nil || !r.Episode.Equal(want) {
		t.Errorf("episode = %v, want Range(1, 12)", r.Episode)
	}
	if r.Resolution == nil || *r.Resolution != types.FHD1080 {
		t.Errorf("resolution = %v, want 1080p", r.Resolution)
	}
}

func TestHeuristicDotSeparated(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("One.Piece.1084.VOSTFR.1080p.WEB.x264-AAC.mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantStr(t, "title", r.Title, "One Piece")
	if r.Episode == nil || !r.Episode.Equal(types.SingleEpisode(1084)) {
		t.Errorf("episode = %v, want Single(1084)", r.Episode)
	}
	if r.VideoCodec == nil || *r.VideoCodec != types.H264 {
		t.Errorf("video codec = %v, want H.264", r.VideoCodec)
	}
	if r.AudioCodec == nil || *r.AudioCodec != types.AAC {
		t.Errorf("audio codec = %v, want AAC", r.AudioCodec)
	}
	wantStr(t, "extension", r.Extension, "mkv")
}

func TestHeuristicResolutions(t *testing.T) {
	p := NewHeuristicParser()
	tests := []struct {
		input string
		want  types.Resolution
	}{
		{"[Test] Show - 01 (480p).mkv", types.SD480},
		{"[Test] Show - 01 (720p).mkv", types.HD720},
		{"[Test] Show - 01 (1080p).mkv", types.FHD1080},
		{"[Test] Show - 01 (2160p).mkv", types.UHD2160},
	}
	for _, tt := range tests {
		r, err := p.Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if r.Resolution == nil || *r.Resolution != tt.want {
			t.Errorf("Parse(%q) resolution = %v, want %s", tt.input, r.Resolution, tt.want)
		}
	}
}

func TestHeuristicVideoCodecVariants(t *testing.T) {
	p := NewHeuristicParser()
	tests := []struct {
		token string
		want  types.VideoCodec
	}{
		{"x264", types.H264},
		{"H.264", types.H264},
		{"x265", types.HEVC},
		{"HEVC", types.HEVC},
		{"H.265", types.HEVC},
		{"AV1", types.AV1},
		{"VP9", types.VP9},
	}
	for _, tt := range tests {
		input := fmt.Sprintf("[Group] Title - 01 [%s].mkv", tt.token)
		r, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if r.VideoCodec == nil || *r.VideoCodec != tt.want {
			t.Errorf("token %q: video codec = %v, want %s", tt.token, r.VideoCodec, tt.want)
		}
	}
}

func TestHeuristicAudioCodecVariants(t *testing.T) {
	p := NewHeuristicParser()
	tests := []struct {
		token string
		want  types.AudioCodec
	}{
		{"FLAC", types.FLAC},
		{"AAC", types.AAC},
		{"Opus", types.Opus},
		{"AC3", types.AC3},
		{"DTS", types.DTS},
		{"MP3", types.MP3},
	}
	for _, tt := range tests {
		input := fmt.Sprintf("[Group] Title - 01 [%s].mkv", tt.token)
		r, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if r.AudioCodec == nil || *r.AudioCodec != tt.want {
			t.Errorf("token %q: audio codec = %v, want %s", tt.token, r.AudioCodec, tt.want)
		}
	}
}

func TestHeuristicSources(t *testing.T) {
	p := NewHeuristicParser()
	tests := []struct {
		input string
		want  types.MediaSource
	}{
		{"[Group] Title - 01 Blu-ray 1080p.mkv", types.BluRay},
		{"[Group] Title - 01 WEB-DL 1080p.mkv", types.WebDL},
		{"[Group] Title - 01 HDTV 720p.mkv", types.HDTV},
		{"[Group] Title - 01 Blu-ray Remux 1080p.mkv", types.BluRayRemux},
	}
	for _, tt := range tests {
		r, err := p.Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.input, err)
		}
		if r.Source == nil || *r.Source != tt.want {
			t.Errorf("Parse(%q) source = %v, want %s", tt.input, r.Source, tt.want)
		}
	}
}

func TestHeuristicYearBand(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("[Group] Title (2024) - 01 (1080p).mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Year == nil || *r.Year != 2024 {
		t.Errorf("year = %v, want 2024", r.Year)
	}

	// 4-digit numbers outside the 1980-2030 band are not years.
	r, err = p.Parse("[Group] Title 2077 - 01 (1080p).mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Year != nil {
		t.Errorf("year = %v, want absent for 2077", *r.Year)
	}
}

func TestHeuristicStandaloneVersion(t *testing.T) {
	p := NewHeuristicParser()

	// Bracketed version without an episode-embedded one.
	r, err := p.Parse("[Group] Movie Title [v2] (1080p).mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.ReleaseVersion == nil || *r.ReleaseVersion != 2 {
		t.Errorf("version = %v, want 2", r.ReleaseVersion)
	}

	// Episode-embedded version suppresses the standalone field.
	r, err = p.Parse("[Group] Show - 12v2 (1080p).mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.ReleaseVersion != nil {
		t.Errorf("version = %v, want absent (embedded in episode)", *r.ReleaseVersion)
	}
	if r.Episode == nil || !r.Episode.Equal(types.VersionedEpisode(12, 2)) {
		t.Errorf("episode = %v, want Version(12, 2)", r.Episode)
	}
}

func TestHeuristicConfidenceScalesWithFields(t *testing.T) {
	p := NewHeuristicParser()

	r, err := p.Parse("Some Random Title.mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Confidence >= 0.5 {
		t.Errorf("sparse confidence = %f, want < 0.5", r.Confidence)
	}

	r, err = p.Parse("[SubsPlease] Jujutsu Kaisen - 24 (1080p) [H264] [AAC] [A1B2C3D4].mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Confidence <= 0.7 {
		t.Errorf("rich confidence = %f, want > 0.7", r.Confidence)
	}
}

func TestHeuristicConfidenceAlwaysInRange(t *testing.T) {
	p := NewHeuristicParser()
	inputs := []string{
		"x",
		"[A] B - 01 (1080p) [FLAC] WEB-DL x265 [A1B2C3D4].mkv",
		"no metadata at all",
		"1080p",
		"[OnlyGroup]",
	}
	for _, input := range inputs {
		r, err := p.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("Parse(%q) confidence = %f out of [0,1]", input, r.Confidence)
		}
	}
}

func TestHeuristicNoTitleIsNotError(t *testing.T) {
	p := NewHeuristicParser()
	r, err := p.Parse("[Group] 1080p.mkv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Title != nil {
		t.Errorf("title = %q, want absent", *r.Title)
	}
}

func wantStr(t *testing.T, field string, got *string, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %q", field, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %q, want %q", field, *got, want)
	}
}
