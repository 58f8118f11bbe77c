package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zantetsu/zantetsu/internal/types"
)

// HeuristicParser is the light engine: scene naming rules as an ordered
// battery of compiled patterns. Fast and model-free; accuracy is lower
// than the statistical engine but latency is microseconds.
//
// Extraction order matters. Title isolation runs last and works by
// eliminating everything the earlier steps already consumed.
type HeuristicParser struct {
	reResolution     *regexp.Regexp
	reVCodec         *regexp.Regexp
	reACodec         *regexp.Regexp
	reSource         *regexp.Regexp
	reCRC32          *regexp.Regexp
	reEpisodeRange   *regexp.Regexp
	reEpisodeVersion *regexp.Regexp
	reEpisode        *regexp.Regexp
	reSeason         *regexp.Regexp
	reVersion        *regexp.Regexp
	reYear           *regexp.Regexp
	reExtension      *regexp.Regexp
	reGroup          *regexp.Regexp
	reBrackets       *regexp.Regexp
}

// NewHeuristicParser compiles the pattern battery. The parser is
// stateless per call and safe for concurrent use.
func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{
		reResolution: regexp.MustCompile(`(?i)\b(2160|1080|720|480)[pi]\b`),
		reVCodec: regexp.MustCompile(
			`(?i)\b(x\.?264|x\.?265|h\.?264|h\.?265|hevc|av1|vp9|mpeg4|xvid)\b`),
		reACodec: regexp.MustCompile(
			`(?i)\b(flac|aac|opus|ac3|dts(?:-?hd)?|truehd|true\shd|mp3|vorbis|ogg|e-?aac\+?)\b`),
		reSource: regexp.MustCompile(
			`(?i)\b(blu-?ray\s*remux|bdremux|bd-?remux|blu-?ray|web-?dl|webrip|web-?rip|hdtv|dvd(?:rip)?|laserdisc|ld|vhs)\b`),
		reCRC32: regexp.MustCompile(`\[([0-9A-Fa-f]{8})\]`),
		reEpisodeRange: regexp.MustCompile(
			`(?i)(?:[\s\-_.]|(?:^|[\s\-_.\[(])ep?\.?\s*)(\d{1,4})\s*[-~]\s*(\d{1,4})\b`),
		reEpisodeVersion: regexp.MustCompile(
			`(?i)(?:[\s\-_.]|(?:^|[\s\-_.\[(])ep?\.?\s*)(\d{1,4})v(\d)\b`),
		reEpisode: regexp.MustCompile(
			`(?i)(?:[\s\-_.]|(?:^|[\s\-_.\[(])(?:ep?\.?|episode)\s*)(\d{1,4})(?:\b|[^0-9v\-~])`),
		reSeason:    regexp.MustCompile(`(?i)(?:\bS|season\s*)(\d{1,2})\b`),
		reVersion:   regexp.MustCompile(`(?i)\[v(\d)\]|\bv(\d)\b`),
		reYear:      regexp.MustCompile(`\b((?:19|20)\d{2})\b`),
		reExtension: regexp.MustCompile(`\.(\w{2,4})$`),
		reGroup:     regexp.MustCompile(`^\[([^\]]+)\]`),
		reBrackets:  regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`),
	}
}

// Parse extracts metadata from a filename or torrent name. Returns
// ErrEmptyInput when the trimmed input is empty. Every field is
// independently optional; sparse results are low-confidence successes,
// not errors.
func (p *HeuristicParser) Parse(input string) (*types.ParseResult, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	result := types.NewParseResult(trimmed, types.ModeLight)

	// Order matters for disambiguation: later steps rely on earlier ones
	// having claimed their substrings.
	result.Group = p.extractGroup(trimmed)
	result.Extension = p.extractExtension(trimmed)
	result.CRC32 = p.extractCRC32(trimmed)
	result.Resolution = p.extractResolution(trimmed)
	result.VideoCodec = p.extractVideoCodec(trimmed)
	result.AudioCodec = p.extractAudioCodec(trimmed)
	result.Source = p.extractSource(trimmed)
	result.Season = p.extractSeason(trimmed)
	result.Year = p.extractYear(trimmed)
	result.Episode = p.extractEpisode(trimmed)
	result.ReleaseVersion = p.extractVersion(trimmed, result.Episode)

	result.Title = p.extractTitle(trimmed, result)
	result.Confidence = p.computeConfidence(result)
	result.ClampConfidence()

	return result, nil
}

func (p *HeuristicParser) extractGroup(input string) *string {
	m := p.reGroup.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	group := strings.TrimSpace(m[1])
	return &group
}

func (p *HeuristicParser) extractExtension(input string) *string {
	m := p.reExtension.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	ext := strings.ToLower(m[1])
	return &ext
}

func (p *HeuristicParser) extractCRC32(input string) *string {
	m := p.reCRC32.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	sum := strings.ToUpper(m[1])
	return &sum
}

func (p *HeuristicParser) extractResolution(input string) *types.Resolution {
	m := p.reResolution.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	var res types.Resolution
	switch m[1] {
	case "2160":
		res = types.UHD2160
	case "1080":
		res = types.FHD1080
	case "720":
		res = types.HD720
	case "480":
		res = types.SD480
	default:
		return nil
	}
	return &res
}

func (p *HeuristicParser) extractVideoCodec(input string) *types.VideoCodec {
	m := p.reVCodec.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	var codec types.VideoCodec
	switch strings.ToLower(m[1]) {
	case "x264", "x.264", "h264", "h.264":
		codec = types.H264
	case "x265", "x.265", "h265", "h.265", "hevc":
		codec = types.HEVC
	case "av1":
		codec = types.AV1
	case "vp9":
		codec = types.VP9
	case "mpeg4", "xvid":
		codec = types.MPEG4
	default:
		return nil
	}
	return &codec
}

func (p *HeuristicParser) extractAudioCodec(input string) *types.AudioCodec {
	m := p.reACodec.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	matched := strings.ToLower(m[1])
	var codec types.AudioCodec
	switch {
	case matched == "flac":
		codec = types.FLAC
	case matched == "aac":
		codec = types.AAC
	case matched == "opus":
		codec = types.Opus
	case matched == "ac3":
		codec = types.AC3
	case strings.HasPrefix(matched, "dts"):
		codec = types.DTS
	case strings.Contains(matched, "truehd") || strings.Contains(matched, "true hd"):
		codec = types.TrueHD
	case matched == "mp3":
		codec = types.MP3
	case matched == "vorbis" || matched == "ogg":
		codec = types.Vorbis
	case strings.HasPrefix(matched, "e-aac") || strings.HasPrefix(matched, "eaac"):
		codec = types.EAAC
	default:
		return nil
	}
	return &codec
}

func (p *HeuristicParser) extractSource(input string) *types.MediaSource {
	m := p.reSource.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	matched := strings.ToLower(m[1])
	matched = strings.ReplaceAll(matched, " ", "")
	matched = strings.ReplaceAll(matched, "-", "")
	var src types.MediaSource
	switch {
	case strings.Contains(matched, "remux"):
		src = types.BluRayRemux
	case strings.Contains(matched, "blu") || matched == "bd":
		src = types.BluRay
	case matched == "webdl":
		src = types.WebDL
	case matched == "webrip":
		src = types.WebRip
	case matched == "hdtv":
		src = types.HDTV
	case strings.HasPrefix(matched, "dvd"):
		src = types.DVD
	case matched == "laserdisc" || matched == "ld":
		src = types.LaserDisc
	case matched == "vhs":
		src = types.VHS
	default:
		return nil
	}
	return &src
}

func (p *HeuristicParser) extractSeason(input string) *int {
	m := p.reSeason.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	season, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &season
}

// extractYear keeps only years in a plausible release band so episode
// counts and resolutions never masquerade as years.
func (p *HeuristicParser) extractYear(input string) *int {
	m := p.reYear.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil || year < 1980 || year > 2030 {
		return nil
	}
	return &year
}

// extractEpisode tries shapes in strict priority order: range first,
// versioned second, plain single last. A range or version match is a
// superset signal that the looser single-episode pattern must not shadow.
func (p *HeuristicParser) extractEpisode(input string) *types.EpisodeSpec {
	if m := p.reEpisodeRange.FindStringSubmatch(input); m != nil {
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && start < end {
			spec, err := types.RangeEpisode(start, end)
			if err == nil {
				return spec
			}
		}
	}

	if m := p.reEpisodeVersion.FindStringSubmatch(input); m != nil {
		episode, err1 := strconv.Atoi(m[1])
		version, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			return types.VersionedEpisode(episode, version)
		}
	}

	if m := p.reEpisode.FindStringSubmatch(input); m != nil {
		episode, err := strconv.Atoi(m[1])
		if err == nil {
			return types.SingleEpisode(episode)
		}
	}

	return nil
}

// extractVersion skips the standalone version when the episode already
// embeds one ("12v2"). Bracketed form "[v2]" wins over a bare "v2".
func (p *HeuristicParser) extractVersion(input string, episode *types.EpisodeSpec) *int {
	if episode != nil && episode.Kind == types.EpisodeVersion {
		return nil
	}
	m := p.reVersion.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	version, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &version
}

// titleSentinel marks erased metadata regions during title isolation.
const titleSentinel = "\x00"

// extractTitle isolates the title by elimination: strip the leading group
// bracket and trailing extension, erase every substring a previous step
// consumed plus any remaining bracketed content, then keep the text before
// the first erased region.
func (p *HeuristicParser) extractTitle(input string, result *types.ParseResult) *string {
	work := input

	if result.Group != nil {
		if end := strings.Index(work, "]"); end >= 0 {
			work = work[end+1:]
		}
	}
	if result.Extension != nil {
		if pos := strings.LastIndex(work, "."+*result.Extension); pos >= 0 {
			work = work[:pos]
		}
	}

	for _, re := range []*regexp.Regexp{
		p.reResolution,
		p.reVCodec,
		p.reACodec,
		p.reSource,
		p.reCRC32,
		p.reEpisodeRange,
		p.reEpisodeVersion,
		p.reSeason,
		p.reVersion,
	} {
		work = re.ReplaceAllString(work, titleSentinel)
	}
	work = p.reEpisode.ReplaceAllString(work, titleSentinel)

	// A year only counts as metadata when bracketed; a bare 4-digit
	// number may be part of the title.
	if result.Year != nil {
		year := strconv.Itoa(*result.Year)
		work = strings.ReplaceAll(work, "("+year+")", titleSentinel)
		work = strings.ReplaceAll(work, "["+year+"]", titleSentinel)
	}

	// Leftover bracketed content is metadata tags like [Multiple Subtitle].
	work = p.reBrackets.ReplaceAllString(work, " ")

	titleRegion, _, _ := strings.Cut(work, titleSentinel)

	cleaned := strings.ReplaceAll(titleRegion, ".", " ")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, "- ")

	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// computeConfidence is a coarse completeness signal over extracted
// fields, not a calibrated probability. Title counts double. Used only
// for cross-engine arbitration.
func (p *HeuristicParser) computeConfidence(result *types.ParseResult) float64 {
	present := 0
	total := 7 // title, group, episode, resolution, vcodec, acodec, source

	if result.Title != nil {
		present += 2
		total++
	}
	if result.Group != nil {
		present++
	}
	if result.Episode != nil {
		present++
	}
	if result.Resolution != nil {
		present++
	}
	if result.VideoCodec != nil {
		present++
	}
	if result.AudioCodec != nil {
		present++
	}
	if result.Source != nil {
		present++
	}

	confidence := float64(present) / float64(total)
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}
