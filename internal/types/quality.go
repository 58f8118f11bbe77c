// Package types defines the structured metadata model for the Zantetsu
// parsing engine: the parse result record, episode specifications, and the
// closed quality enumerations (resolution, codecs, source) with their
// hand-curated desirability scores.
//
// The score tables are static domain knowledge, not computed values. They
// are read-only after process start and safe to share across goroutines.
package types

import "fmt"

// Resolution is the video resolution of a release.
type Resolution int

const (
	// SD480 is 480p standard definition.
	SD480 Resolution = iota
	// HD720 is 720p high definition.
	HD720
	// FHD1080 is 1080p full HD.
	FHD1080
	// UHD2160 is 2160p ultra HD / 4K.
	UHD2160
)

// Score returns the normalized quality score in [0.0, 1.0].
func (r Resolution) Score() float64 {
	switch r {
	case SD480:
		return 0.25
	case HD720:
		return 0.50
	case FHD1080:
		return 0.85
	case UHD2160:
		return 1.00
	}
	return 0
}

func (r Resolution) String() string {
	switch r {
	case SD480:
		return "480p"
	case HD720:
		return "720p"
	case FHD1080:
		return "1080p"
	case UHD2160:
		return "2160p"
	}
	return "unknown"
}

// ParseResolution converts a display code back to a Resolution.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "480p":
		return SD480, nil
	case "720p":
		return HD720, nil
	case "1080p":
		return FHD1080, nil
	case "2160p":
		return UHD2160, nil
	}
	return 0, fmt.Errorf("unknown resolution %q", s)
}

// VideoCodec is the video compression codec of a release.
type VideoCodec int

const (
	H264 VideoCodec = iota
	HEVC
	AV1
	VP9
	MPEG4
)

// Score returns the normalized quality score in [0.0, 1.0].
func (v VideoCodec) Score() float64 {
	switch v {
	case AV1:
		return 1.00
	case HEVC:
		return 0.85
	case VP9:
		return 0.70
	case H264:
		return 0.60
	case MPEG4:
		return 0.20
	}
	return 0
}

func (v VideoCodec) String() string {
	switch v {
	case H264:
		return "H.264"
	case HEVC:
		return "HEVC"
	case AV1:
		return "AV1"
	case VP9:
		return "VP9"
	case MPEG4:
		return "MPEG-4"
	}
	return "unknown"
}

// code is the stable serialization token for a VideoCodec. Display strings
// contain punctuation ("H.264") so they are not used on the wire.
func (v VideoCodec) code() string {
	switch v {
	case H264:
		return "H264"
	case HEVC:
		return "HEVC"
	case AV1:
		return "AV1"
	case VP9:
		return "VP9"
	case MPEG4:
		return "MPEG4"
	}
	return "unknown"
}

// ParseVideoCodec converts a serialization code back to a VideoCodec.
func ParseVideoCodec(s string) (VideoCodec, error) {
	switch s {
	case "H264":
		return H264, nil
	case "HEVC":
		return HEVC, nil
	case "AV1":
		return AV1, nil
	case "VP9":
		return VP9, nil
	case "MPEG4":
		return MPEG4, nil
	}
	return 0, fmt.Errorf("unknown video codec %q", s)
}

// AudioCodec is the audio compression codec of a release.
type AudioCodec int

const (
	FLAC AudioCodec = iota
	AAC
	Opus
	AC3
	DTS
	MP3
	Vorbis
	TrueHD
	EAAC
)

// Score returns the normalized quality score in [0.0, 1.0].
func (a AudioCodec) Score() float64 {
	switch a {
	case TrueHD:
		return 1.00
	case FLAC:
		return 0.95
	case DTS:
		return 0.75
	case Opus:
		return 0.70
	case AAC:
		return 0.60
	case EAAC:
		return 0.55
	case AC3:
		return 0.50
	case Vorbis:
		return 0.45
	case MP3:
		return 0.30
	}
	return 0
}

func (a AudioCodec) String() string {
	switch a {
	case FLAC:
		return "FLAC"
	case AAC:
		return "AAC"
	case Opus:
		return "Opus"
	case AC3:
		return "AC3"
	case DTS:
		return "DTS"
	case MP3:
		return "MP3"
	case Vorbis:
		return "Vorbis"
	case TrueHD:
		return "TrueHD"
	case EAAC:
		return "E-AAC+"
	}
	return "unknown"
}

func (a AudioCodec) code() string {
	if a == EAAC {
		return "EAAC"
	}
	return a.String()
}

// ParseAudioCodec converts a serialization code back to an AudioCodec.
func ParseAudioCodec(s string) (AudioCodec, error) {
	switch s {
	case "FLAC":
		return FLAC, nil
	case "AAC":
		return AAC, nil
	case "Opus":
		return Opus, nil
	case "AC3":
		return AC3, nil
	case "DTS":
		return DTS, nil
	case "MP3":
		return MP3, nil
	case "Vorbis":
		return Vorbis, nil
	case "TrueHD":
		return TrueHD, nil
	case "EAAC":
		return EAAC, nil
	}
	return 0, fmt.Errorf("unknown audio codec %q", s)
}

// MediaSource is the origin medium of a release.
type MediaSource int

const (
	BluRayRemux MediaSource = iota
	BluRay
	WebDL
	WebRip
	HDTV
	DVD
	LaserDisc
	VHS
)

// Score returns the normalized quality score in [0.0, 1.0].
func (m MediaSource) Score() float64 {
	switch m {
	case BluRayRemux:
		return 1.00
	case BluRay:
		return 0.90
	case WebDL:
		return 0.75
	case WebRip:
		return 0.65
	case HDTV:
		return 0.50
	case DVD:
		return 0.40
	case LaserDisc:
		return 0.30
	case VHS:
		return 0.15
	}
	return 0
}

func (m MediaSource) String() string {
	switch m {
	case BluRayRemux:
		return "Blu-ray Remux"
	case BluRay:
		return "Blu-ray"
	case WebDL:
		return "WEB-DL"
	case WebRip:
		return "WEBRip"
	case HDTV:
		return "HDTV"
	case DVD:
		return "DVD"
	case LaserDisc:
		return "LaserDisc"
	case VHS:
		return "VHS"
	}
	return "unknown"
}

func (m MediaSource) code() string {
	switch m {
	case BluRayRemux:
		return "BluRayRemux"
	case BluRay:
		return "BluRay"
	case WebDL:
		return "WebDL"
	case WebRip:
		return "WebRip"
	case HDTV:
		return "HDTV"
	case DVD:
		return "DVD"
	case LaserDisc:
		return "LaserDisc"
	case VHS:
		return "VHS"
	}
	return "unknown"
}

// ParseMediaSource converts a serialization code back to a MediaSource.
func ParseMediaSource(s string) (MediaSource, error) {
	switch s {
	case "BluRayRemux":
		return BluRayRemux, nil
	case "BluRay":
		return BluRay, nil
	case "WebDL":
		return WebDL, nil
	case "WebRip":
		return WebRip, nil
	case "HDTV":
		return HDTV, nil
	case "DVD":
		return DVD, nil
	case "LaserDisc":
		return LaserDisc, nil
	case "VHS":
		return VHS, nil
	}
	return 0, fmt.Errorf("unknown media source %q", s)
}

// ParseMode selects which engine produces a parse result.
type ParseMode int

const (
	// ModeAuto selects statistical parsing with heuristic fallback.
	ModeAuto ParseMode = iota
	// ModeFull uses the statistical CRF engine (requires model weights).
	ModeFull
	// ModeLight uses the regex heuristic engine only.
	ModeLight
)

func (p ParseMode) String() string {
	switch p {
	case ModeFull:
		return "full"
	case ModeLight:
		return "light"
	case ModeAuto:
		return "auto"
	}
	return "unknown"
}

// ParseParseMode converts a mode string ("full", "light", "auto") to a
// ParseMode.
func ParseParseMode(s string) (ParseMode, error) {
	switch s {
	case "full":
		return ModeFull, nil
	case "light":
		return ModeLight, nil
	case "auto", "":
		return ModeAuto, nil
	}
	return 0, fmt.Errorf("unknown parse mode %q (want full, light, or auto)", s)
}
