package nlp

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// locationPrepRE finds text following a location preposition, up to the next
// comma. The bare "o" branch needs a leading space-or-start guard because
// RE2 word boundaries are ASCII-only and would match inside "vào".
var locationPrepRE = regexp.MustCompile(`(?:ở|tại|tai|(?:^|\s)o)\s+([^,]*)`)

// locationStopRE marks where a location phrase ends: a time preposition, the
// reminder verb, or a clock expression. Cutting the capture here reproduces
// the preferred non-greedy match; the uncut capture is the fallback.
var locationStopRE = regexp.MustCompile(`\s+(lúc|vào|nhắc|nhac)\s|\s*\d+\s*(giờ|h|gio)`)

var (
	// strip a trailing bare day-reference only when it is the final word
	trailingDayRE = regexp.MustCompile(`\s+(mai|nay|ngày mai|hôm nay|và|va)$`)
	// strip a trailing time-preposition clause; conditional on the
	// preposition being present so a numeric room token survives
	trailingTimeClauseRE = regexp.MustCompile(`\s+(lúc|vào|luc|vao).*$`)

	purelyNumericRE = regexp.MustCompile(`^\d+$`)
)

// periodWords are bare period-of-day words that cannot stand as a location.
var periodWords = map[string]bool{
	"sáng": true, "chiều": true, "tối": true,
	"sang": true, "chieu": true, "toi": true,
}

// ExtractLocation finds the location phrase in normalized text, or "" when
// absent.
func ExtractLocation(text string) string {
	m := locationPrepRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	captured := m[1]

	// Preferred: cut at the first stop marker. Fallback: the full capture.
	candidates := []string{captured}
	if loc := locationStopRE.FindStringIndex(captured); loc != nil {
		candidates = []string{captured[:loc[0]], captured}
	}

	for _, c := range candidates {
		if loc := cleanLocation(c); loc != "" {
			return loc
		}
	}
	return ""
}

func cleanLocation(s string) string {
	s = strings.TrimSpace(s)
	s = trailingDayRE.ReplaceAllString(s, "")
	s = trailingTimeClauseRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) <= 1 {
		return ""
	}
	if purelyNumericRE.MatchString(s) || periodWords[s] {
		return ""
	}
	return s
}
