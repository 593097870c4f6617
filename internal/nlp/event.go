package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// UnknownEvent is the sentinel event name returned when every naming
// fallback comes up empty.
const UnknownEvent = "sự kiện không xác định"

// separatorKind tags a separator pattern as a time or location marker. The
// tag is informational; the earliest match wins regardless of kind.
type separatorKind int

const (
	sepTime separatorKind = iota
	sepLocation
)

// separatorRule marks the boundary between the event-name portion of an
// utterance and its time/location portion.
type separatorRule struct {
	re   *regexp.Regexp
	kind separatorKind
}

var separatorRules = []separatorRule{
	{regexp.MustCompile(`lúc\s+\d+`), sepTime},
	{regexp.MustCompile(`vào\s+lúc\s+\d+`), sepTime},
	{regexp.MustCompile(`vào\s+\d+`), sepTime},
	{regexp.MustCompile(`\d+\s*(giờ|h|gio)`), sepTime},
	{regexp.MustCompile(`\d+:\d+`), sepTime},
	{regexp.MustCompile(`\d+\s*(sáng|chiều|tối|sang|chieu|toi)`), sepTime},
	{regexp.MustCompile(`luc\s+\d+`), sepTime},
	{regexp.MustCompile(`vao\s+luc\s+\d+`), sepTime},
	{regexp.MustCompile(`vao\s+\d+`), sepTime},

	{regexp.MustCompile(`ở\s+`), sepLocation},
	{regexp.MustCompile(`tại\s+`), sepLocation},
	// (?:^|\s) instead of \b: RE2 word boundaries are ASCII-only, and a bare
	// \bo would fire inside accented words like "vào".
	{regexp.MustCompile(`(?:^|\s)o\s+`), sepLocation},
	{regexp.MustCompile(`tai\s+`), sepLocation},
}

// reminderClauseREs strip a comma-preceded or trailing reminder clause, in
// the same shapes the reminder extractor recognizes.
var reminderClauseREs = []*regexp.Regexp{
	regexp.MustCompile(`,\s*nhắc\s*(tôi|mình)?\s*trước\s*\d+\s*(phút|giờ|p)?\s*\.?`),
	regexp.MustCompile(`\s*nhắc\s*(tôi|mình)?\s*trước\s*\d+\s*(phút|giờ|p)?\s*\.?$`),
	regexp.MustCompile(`,\s*nhac\s*(toi|minh)?\s*truoc\s*\d+\s*(phut|gio|p)?\s*\.?`),
	regexp.MustCompile(`\s*nhac\s*(toi|minh)?\s*truoc\s*\d+\s*(phut|gio|p)?\s*\.?$`),
}

var (
	leadingRemindRE  = regexp.MustCompile(`^(nhắc|nhac)\s+`)
	trailingFillerRE = regexp.MustCompile(`\s*(ở|tại|tai|và|va|,)\s*$`)
	trailingBareORE  = regexp.MustCompile(`(?:^|\s)o\s*$`)
)

// fillerWords are prepositions/conjunctions skipped by the last-resort
// first-words fallback.
var fillerWords = map[string]bool{
	"vào": true, "ở": true, "tại": true, "o": true, "tai": true,
	"và": true, "va": true,
}

// ExtractEventName derives the event label from normalized text. The tiers
// trade precision for recall, in order:
//  1. text before the earliest time/location separator
//  2. text before the first comma
//  3. the first three non-filler words
//  4. the UnknownEvent sentinel
func ExtractEventName(text string) string {
	clean := text
	for _, re := range reminderClauseREs {
		clean = re.ReplaceAllString(clean, "")
	}
	clean = leadingRemindRE.ReplaceAllString(clean, "")

	// Earliest separator of either kind bounds the name.
	first := -1
	for _, rule := range separatorRules {
		for _, loc := range rule.re.FindAllStringIndex(clean, -1) {
			if first == -1 || loc[0] < first {
				first = loc[0]
			}
		}
	}
	if first >= 0 {
		if name := cleanEventPart(clean[:first]); name != "" {
			return name
		}
	}

	// Fallback: text before the first comma.
	if parts := strings.SplitN(clean, ",", 2); len(parts) > 1 {
		if name := cleanEventPart(parts[0]); name != "" {
			return name
		}
	}

	// Last resort: up to three meaningful words.
	words := strings.Fields(clean)
	if len(words) >= 2 {
		meaningful := make([]string, 0, len(words))
		for _, w := range words {
			if !fillerWords[w] {
				meaningful = append(meaningful, w)
			}
		}
		if len(meaningful) > 0 {
			if len(meaningful) > 3 {
				meaningful = meaningful[:3]
			}
			return strings.Join(meaningful, " ")
		}
	}

	return UnknownEvent
}

// cleanEventPart trims trailing prepositions/conjunctions and rejects
// candidates too short or themselves a bare preposition.
func cleanEventPart(s string) string {
	s = strings.TrimSpace(s)
	s = trailingFillerRE.ReplaceAllString(s, "")
	s = trailingBareORE.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 1 || s == "vào" || s == "ở" {
		return ""
	}
	return s
}
