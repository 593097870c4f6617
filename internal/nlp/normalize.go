// Package nlp turns a free-form Vietnamese scheduling request into a
// structured event record: name, start time, optional end time, optional
// location, and a reminder lead time in minutes.
//
// The pipeline is rule-based and deterministic:
//   - Normalize: canonicalize case, abbreviations, unit markers, and
//     accent-dropped spellings into a single accented vocabulary
//   - Segment: word segmentation via an injected collaborator (accuracy aid,
//     identity fallback on failure)
//   - Extract: reminder lead time, event name, location, and start/end times,
//     each re-derived independently from the same normalized text
//
// Accent loss is the dominant source of input variance; canonicalizing early
// lets every downstream rule match one accented vocabulary instead of
// duplicating itself for every unaccented spelling.
package nlp

import (
	"regexp"
	"strings"
)

// rewriteRule is a single ordered normalization step. Rules run top-down;
// later rules assume earlier ones already ran.
type rewriteRule struct {
	re   *regexp.Regexp
	repl string
}

// normalizeRules canonicalizes an utterance in fixed order:
//  1. informal "thứ N tới" phrasing into the explicit "thứ N tuần tới" form
//  2. politeness pronouns after the reminder verb collapsed into the bare
//     verb, for accented, unaccented, and one known misspelling
//  3. unaccented hour/minute abbreviations into the accented unit words,
//     anchored at token boundaries so unrelated digits survive
//  4. the seven unaccented weekday names into accented weekday names
//  5. "<hour> giờ <minute>" into a colon HH:MM token — after step 3 so unit
//     synonyms are already canonical
var normalizeRules = []rewriteRule{
	{regexp.MustCompile(`\bthu\s+([0-9]+|[a-z]+)\s+toi\b`), `thứ $1 tuần tới`},

	{regexp.MustCompile(`\bnhắc tôi\b`), "nhắc"},
	{regexp.MustCompile(`\bnhắc mình\b`), "nhắc"},
	{regexp.MustCompile(`\bnhac toi\b`), "nhắc"},
	{regexp.MustCompile(`\bnhac minh\b`), "nhắc"},
	{regexp.MustCompile(`\bnhac\b`), "nhắc"},
	{regexp.MustCompile(`\bnahc\b`), "nhắc"},
	{regexp.MustCompile(`\btruoc\b`), "trước"},

	// ($|[^\pL\pN_]) emulates a Unicode-aware trailing word boundary: RE2's
	// \b is ASCII-only and would let "h" rewrite fire inside "hôm".
	{regexp.MustCompile(`(\d+)\s*gio($|[^\pL\pN_])`), `$1 giờ$2`},
	{regexp.MustCompile(`(\d+)\s*g($|[^\pL\pN_])`), `$1 giờ$2`},
	{regexp.MustCompile(`(\d+)\s*h($|[^\pL\pN_])`), `$1 giờ$2`},
	{regexp.MustCompile(`(\d+)\s*phut($|[^\pL\pN_])`), `$1 phút$2`},
	{regexp.MustCompile(`(\d+)\s*p($|[^\pL\pN_])`), `$1 phút$2`},

	{regexp.MustCompile(`\bthu hai\b`), "thứ hai"},
	{regexp.MustCompile(`\bthu ba\b`), "thứ ba"},
	{regexp.MustCompile(`\bthu tu\b`), "thứ tư"},
	{regexp.MustCompile(`\bthu nam\b`), "thứ năm"},
	{regexp.MustCompile(`\bthu sau\b`), "thứ sáu"},
	{regexp.MustCompile(`\bthu bay\b`), "thứ bảy"},
	{regexp.MustCompile(`\bchu nhat\b`), "chủ nhật"},

	{regexp.MustCompile(`(\d+)\s*(?:giờ|h|gio)\s*(\d+)\b`), `$1:$2`},
}

// Normalize canonicalizes a raw utterance. Pure and total: any input yields
// a normalized string, and already-canonical input passes through unchanged.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, r := range normalizeRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}
