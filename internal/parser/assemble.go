package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zantetsu/zantetsu/internal/model"
	"github.com/zantetsu/zantetsu/internal/types"
)

// AssembleEntities groups a decoded tag sequence back into entities,
// slicing entity text out of the original input via the tokenizer's
// byte offsets.
//
// A begin tag (or any non-outside tag) opens an entity. Same-family
// inside tags extend it; for single-token tags a contiguous run of the
// identical tag also extends, since subword tokenizers split values
// like "x265" across wordpieces. Offsets of (0, 0) mark structural
// tokens such as [CLS]/[SEP] and produce no entity.
func AssembleEntities(input string, offsets []model.TokenSpan, tagIndices []int) ([]Entity, error) {
	tags := make([]BioTag, len(tagIndices))
	for i, idx := range tagIndices {
		tag, ok := TagFromIndex(idx)
		if !ok {
			return nil, fmt.Errorf("%w: tag index %d out of range", ErrModelUnavailable, idx)
		}
		tags[i] = tag
	}
	if len(tags) > len(offsets) {
		return nil, fmt.Errorf("%w: %d tags but %d offsets", ErrModelUnavailable, len(tags), len(offsets))
	}

	var entities []Entity
	i := 0
	for i < len(tags) {
		tag := tags[i]
		family, ok := tag.EntityType()
		if !ok {
			i++
			continue
		}

		startIdx := i
		startOffset := offsets[startIdx].Start
		endOffset := offsets[startIdx].End
		i++

		for i < len(tags) {
			next := tags[i]
			nextFam, nextOK := next.EntityType()
			if next.IsInside() && nextOK && nextFam == family {
				endOffset = offsets[i].End
				i++
			} else if next == tag && !tag.IsBegin() && !tag.IsInside() {
				endOffset = offsets[i].End
				i++
			} else {
				break
			}
		}

		if startOffset == 0 && endOffset == 0 {
			continue
		}
		if startOffset > len(input) || endOffset > len(input) || startOffset > endOffset {
			continue
		}

		text := strings.TrimSpace(input[startOffset:endOffset])
		if text == "" {
			continue
		}
		entities = append(entities, Entity{
			Type:       family,
			StartToken: startIdx,
			EndToken:   i,
			Text:       text,
		})
	}
	return entities, nil
}

// buildResult maps entities onto a ParseResult. Entity text went
// through a subword tokenizer, so value mapping is lenient: a substring
// match is enough ("x265" and "H.265" both resolve to HEVC). Later
// entities of the same family overwrite earlier ones.
func buildResult(input string, entities []Entity) *types.ParseResult {
	result := types.NewParseResult(input, types.ModeFull)

	for _, e := range entities {
		switch e.Type {
		case EntityTitle:
			t := e.Text
			result.Title = &t
		case EntityGroup:
			g := e.Text
			result.Group = &g
		case EntityEpisode:
			if num, err := strconv.Atoi(e.Text); err == nil {
				result.Episode = types.SingleEpisode(num)
			}
		case EntitySeason:
			if num, err := strconv.Atoi(e.Text); err == nil {
				result.Season = &num
			}
		case EntityResolution:
			result.Resolution = mapResolution(e.Text)
		case EntityVCodec:
			result.VideoCodec = mapVideoCodec(e.Text)
		case EntityACodec:
			result.AudioCodec = mapAudioCodec(e.Text)
		case EntitySource:
			result.Source = mapSource(e.Text)
		case EntityYear:
			if num, err := strconv.Atoi(e.Text); err == nil {
				result.Year = &num
			}
		case EntityCRC32:
			c := strings.ToUpper(e.Text)
			result.CRC32 = &c
		case EntityExtension:
			x := strings.ToLower(e.Text)
			result.Extension = &x
		case EntityVersion:
			for _, r := range e.Text {
				if r >= '0' && r <= '9' {
					v := int(r - '0')
					result.ReleaseVersion = &v
					break
				}
			}
		}
	}

	populated := 0
	for _, present := range []bool{
		result.Title != nil, result.Group != nil, result.Episode != nil,
		result.Season != nil, result.Resolution != nil, result.VideoCodec != nil,
		result.AudioCodec != nil, result.Source != nil, result.Year != nil,
		result.CRC32 != nil, result.Extension != nil,
	} {
		if present {
			populated++
		}
	}
	result.Confidence = float64(populated) / 11.0
	result.ClampConfidence()
	return result
}

func mapResolution(text string) *types.Resolution {
	t := strings.ToLower(text)
	var r types.Resolution
	switch {
	case strings.Contains(t, "2160"):
		r = types.UHD2160
	case strings.Contains(t, "1080"):
		r = types.FHD1080
	case strings.Contains(t, "720"):
		r = types.HD720
	case strings.Contains(t, "480"):
		r = types.SD480
	default:
		return nil
	}
	return &r
}

func mapVideoCodec(text string) *types.VideoCodec {
	t := strings.ToLower(text)
	var v types.VideoCodec
	switch {
	case strings.Contains(t, "av1"):
		v = types.AV1
	case strings.Contains(t, "265"), strings.Contains(t, "hevc"):
		v = types.HEVC
	case strings.Contains(t, "264"), strings.Contains(t, "h264"):
		v = types.H264
	case strings.Contains(t, "vp9"):
		v = types.VP9
	case strings.Contains(t, "mpeg4"), strings.Contains(t, "mp4"), strings.Contains(t, "xvid"):
		v = types.MPEG4
	default:
		return nil
	}
	return &v
}

func mapAudioCodec(text string) *types.AudioCodec {
	t := strings.ToLower(text)
	var a types.AudioCodec
	switch {
	case strings.Contains(t, "flac"):
		a = types.FLAC
	case strings.Contains(t, "truehd"):
		a = types.TrueHD
	case strings.Contains(t, "dts"):
		a = types.DTS
	case strings.Contains(t, "opus"):
		a = types.Opus
	case strings.Contains(t, "aac"):
		a = types.AAC
	case strings.Contains(t, "ac3"), strings.Contains(t, "dolby"):
		a = types.AC3
	case strings.Contains(t, "vorbis"), strings.Contains(t, "ogg"):
		a = types.Vorbis
	case strings.Contains(t, "mp3"):
		a = types.MP3
	default:
		return nil
	}
	return &a
}

func mapSource(text string) *types.MediaSource {
	t := strings.ToLower(text)
	var m types.MediaSource
	switch {
	case strings.Contains(t, "remux"):
		m = types.BluRayRemux
	case strings.Contains(t, "webdl"), strings.Contains(t, "web-dl"), strings.Contains(t, "webrip"):
		m = types.WebDL
	case strings.Contains(t, "bluray"), strings.Contains(t, "blu-ray"), strings.Contains(t, "bd"):
		m = types.BluRay
	case strings.Contains(t, "hdtv"):
		m = types.HDTV
	case strings.Contains(t, "dvd"):
		m = types.DVD
	case strings.Contains(t, "vhs"):
		m = types.VHS
	default:
		return nil
	}
	return &m
}
