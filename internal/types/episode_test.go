package types

import (
	"encoding/json"
	"testing"
)

func TestEpisodeDisplay(t *testing.T) {
	tests := []struct {
		spec *EpisodeSpec
		want string
	}{
		{SingleEpisode(1), "01"},
		{SingleEpisode(24), "24"},
		{SingleEpisode(1084), "1084"},
		{mustRange(t, 1, 12), "01-12"},
		{mustRange(t, 13, 24), "13-24"},
		{MultiEpisode([]int{1, 3, 5}), "01, 03, 05"},
		{VersionedEpisode(12, 2), "12v2"},
	}
	for _, tt := range tests {
		if got := tt.spec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRangeRejectsDegenerate(t *testing.T) {
	if _, err := RangeEpisode(12, 12); err == nil {
		t.Error("RangeEpisode(12, 12): want error")
	}
	if _, err := RangeEpisode(12, 1); err == nil {
		t.Error("RangeEpisode(12, 1): want error")
	}
	spec, err := RangeEpisode(1, 12)
	if err != nil {
		t.Fatalf("RangeEpisode(1, 12): %v", err)
	}
	if spec.Start >= spec.End {
		t.Errorf("range %d-%d violates start < end", spec.Start, spec.End)
	}
}

func TestEpisodeJSONRoundTrip(t *testing.T) {
	specs := []*EpisodeSpec{
		SingleEpisode(42),
		mustRange(t, 1, 24),
		MultiEpisode([]int{1, 5, 10}),
		VersionedEpisode(7, 3),
	}
	for _, spec := range specs {
		data, err := json.Marshal(spec)
		if err != nil {
			t.Fatalf("marshal %s: %v", spec, err)
		}
		var back EpisodeSpec
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !spec.Equal(&back) {
			t.Errorf("round trip: got %+v, want %+v", back, *spec)
		}
	}
}

func mustRange(t *testing.T, start, end int) *EpisodeSpec {
	t.Helper()
	spec, err := RangeEpisode(start, end)
	if err != nil {
		t.Fatalf("RangeEpisode(%d, %d): %v", start, end, err)
	}
	return spec
}
