package generation

import (
	"regexp"
	"sort"
	"strings"
)

// Section markers of a combined provider answer. They are fixed labels the
// combined instruction asks for and do not follow the configured source and
// target languages: PROMPT_ES holds the source-language prompt and PROMPT_EN
// the target-language one.
const (
	MarkerPrimary   = "PROMPT_ES:"
	MarkerSecondary = "PROMPT_EN:"
	MarkerVideo     = "PROMPT_VIDEO:"
)

// SliceWidth is the number of runes per section when markers are missing.
const SliceWidth = 200

// Sections is a provider answer split into its three parts.
type Sections struct {
	Primary   string
	Secondary string
	Video     string
	// Complete is true when all three markers were found.
	Complete bool
}

var markerPattern = regexp.MustCompile(`(?i)\*{0,2}\s*PROMPT_(ES|EN|VIDEO)\s*\*{0,2}\s*:\s*\*{0,2}`)

// ParseSections splits raw into its primary, secondary and video sections.
//
// Markers are matched case-insensitively, may be wrapped in markdown bold and
// may appear in any order; a section runs until the next marker. Text before
// the first marker is ignored. When no marker is present the text is sliced
// into consecutive SliceWidth-rune windows instead. A marker that is missing
// while others are present leaves its section empty.
func ParseSections(raw string) Sections {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sections{}
	}

	matches := markerPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return sliceSections(raw)
	}

	type hit struct {
		name       string
		start, end int
	}
	hits := make([]hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, hit{name: strings.ToUpper(raw[m[2]:m[3]]), start: m[0], end: m[1]})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	var s Sections
	seen := make(map[string]bool, 3)
	for i, h := range hits {
		stop := len(raw)
		if i+1 < len(hits) {
			stop = hits[i+1].start
		}
		body := cleanSection(raw[h.end:stop])
		if seen[h.name] {
			continue
		}
		seen[h.name] = true
		switch h.name {
		case "ES":
			s.Primary = body
		case "EN":
			s.Secondary = body
		case "VIDEO":
			s.Video = body
		}
	}
	s.Complete = seen["ES"] && seen["EN"] && seen["VIDEO"]
	return s
}

func sliceSections(raw string) Sections {
	runes := []rune(raw)
	window := func(i int) string {
		lo := i * SliceWidth
		if lo >= len(runes) {
			return ""
		}
		hi := lo + SliceWidth
		if hi > len(runes) {
			hi = len(runes)
		}
		return strings.TrimSpace(string(runes[lo:hi]))
	}
	return Sections{Primary: window(0), Secondary: window(1), Video: window(2)}
}

func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}
