package nlp

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultStartHour is the start-of-day assumed when no time expression
// parses out of an utterance.
const DefaultStartHour = 9

// TimeCandidate is a parsed (hour, minute) pair found at a specific offset
// in the normalized text, not yet assigned to start or end.
type TimeCandidate struct {
	Hour     int
	Minute   int
	Position int
	Rule     string
}

// weekdayEntry maps a weekday keyword to its Monday-based offset. The slice
// is ordered: the first keyword found anywhere in the text wins, regardless
// of where it occurs.
type weekdayEntry struct {
	keyword string
	weekday int
}

var weekdayEntries = []weekdayEntry{
	{"thứ 2", 0}, {"thứ hai", 0},
	{"thứ 3", 1}, {"thứ ba", 1},
	{"thứ 4", 2}, {"thứ tư", 2},
	{"thứ 5", 3}, {"thứ năm", 3},
	{"thứ 6", 4}, {"thứ sáu", 4},
	{"thứ 7", 5}, {"thứ bảy", 5},
	{"chủ nhật", 6}, {"cn", 6},
}

// dateKeywords are the tokens that pin the utterance to a specific day.
// Their presence disables the roll-to-tomorrow rule for past start times.
// Deliberately excludes "mai"/"nay": those already move the target date.
var dateKeywords = []string{
	"thứ 2", "thứ hai", "thứ 3", "thứ ba", "thứ 4", "thứ tư", "thứ 5", "thứ năm",
	"thứ 6", "thứ sáu", "thứ 7", "thứ bảy", "chủ nhật", "cn",
	"cuối tuần", "cuoi tuan", "đầu tuần", "dau tuan", "giữa tuần", "giua tuan",
	"tuần tới", "tuần sau", "tuan toi", "tuan sau",
}

// endKeywords unlock end-time detection. Only these exact words do; a second
// time candidate without them never becomes an end time.
var endKeywords = []string{"kết thúc", "ket thuc"}

// timeRule is one time-of-day pattern shape plus its candidate parser.
type timeRule struct {
	name  string
	re    *regexp.Regexp
	parse func(m []string) (hour, minute int, ok bool)
}

var periodSet = map[string]bool{
	"sáng": true, "chiều": true, "tối": true,
	"sang": true, "chieu": true, "toi": true,
}

var timeRules = []timeRule{
	{
		// "(lúc|vào)? N sáng/chiều/tối" — a number above 12 here is a
		// quantity, not an hour; discard rather than adjust.
		name: "period",
		re:   regexp.MustCompile(`(?:lúc|vào|luc|vao)?\s*(\d+)\s*(sáng|chiều|tối|sang|chieu|toi)`),
		parse: func(m []string) (int, int, bool) {
			h, _ := strconv.Atoi(m[1])
			if h > 12 {
				return 0, 0, false
			}
			return adjustHourForPeriod(h, m[2]), 0, true
		},
	},
	{
		name: "hour-unit",
		re:   regexp.MustCompile(`(\d+)\s*(giờ|h|gio)\s*(sáng|chiều|tối|sang|chieu|toi)?`),
		parse: func(m []string) (int, int, bool) {
			h, _ := strconv.Atoi(m[1])
			if m[3] != "" {
				h = adjustHourForPeriod(h, m[3])
			}
			return h, 0, true
		},
	},
	{
		name: "colon",
		re:   regexp.MustCompile(`(\d+):(\d+)`),
		parse: func(m []string) (int, int, bool) {
			h, _ := strconv.Atoi(m[1])
			mi, _ := strconv.Atoi(m[2])
			return h, mi, true
		},
	},
	{
		// "(N)h" at a word boundary; the guard emulates Unicode \b (see
		// normalize.go).
		name: "hour-abbrev",
		re:   regexp.MustCompile(`(\d+)\s*h($|[^\pL\pN_])`),
		parse: func(m []string) (int, int, bool) {
			h, _ := strconv.Atoi(m[1])
			return h, 0, true
		},
	},
}

// adjustHourForPeriod disambiguates a 12-hour reading: afternoon/evening add
// 12 below noon, morning resets 12 to 0.
func adjustHourForPeriod(hour int, period string) int {
	switch period {
	case "chiều", "chieu", "tối", "toi":
		if hour < 12 {
			return hour + 12
		}
	case "sáng", "sang":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

// FindTimeCandidates scans normalized text with every time pattern shape and
// returns all candidates whose derived hour and minute are in range, ordered
// by text position. Out-of-range readings are discarded, never clamped.
func FindTimeCandidates(text string) []TimeCandidate {
	var out []TimeCandidate
	for _, rule := range timeRules {
		locs := rule.re.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			m := submatchStrings(text, loc)
			h, mi, ok := rule.parse(m)
			if !ok || h < 0 || h > 23 || mi < 0 || mi > 59 {
				continue
			}
			out = append(out, TimeCandidate{Hour: h, Minute: mi, Position: loc[0], Rule: rule.name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func submatchStrings(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] >= 0 {
			m[i/2] = text[loc[i]:loc[i+1]]
		}
	}
	return m
}

// ResolveTargetDate computes the calendar date an utterance refers to.
// Rules apply in priority order; only the first match counts:
// explicit weekday (with "tuần sau" +7 / "tuần tới" +14 qualifiers), weekend,
// start of week, mid-week, tomorrow, day after tomorrow, today, default today.
func ResolveTargetDate(text string, now time.Time) time.Time {
	current := mondayWeekday(now)

	for _, e := range weekdayEntries {
		if !strings.Contains(text, e.keyword) {
			continue
		}
		days := e.weekday - current
		if containsAny(text, "tuần sau", "tuan sau") {
			days += 7
		}
		if containsAny(text, "tuần tới", "tuan toi") {
			days += 14
		}
		return now.AddDate(0, 0, days)
	}

	if containsAny(text, "cuối tuần", "cuoi tuan") {
		days := 5 - current
		if days < 0 {
			days += 7
		}
		return now.AddDate(0, 0, days)
	}
	if containsAny(text, "đầu tuần", "dau tuan") {
		days := 0 - current
		if days <= 0 {
			days += 7
		}
		return now.AddDate(0, 0, days)
	}
	if containsAny(text, "giữa tuần", "giua tuan") {
		days := 2 - current
		if days <= 0 {
			days += 7
		}
		return now.AddDate(0, 0, days)
	}

	if containsAny(text, "mai", "ngày mai") {
		return now.AddDate(0, 0, 1)
	}
	if strings.Contains(text, "ngày kia") {
		return now.AddDate(0, 0, 2)
	}
	if containsAny(text, "nay", "hôm nay") {
		return now
	}
	return now
}

// ResolveTimes picks the start and optional end instant for an utterance.
//
// The earliest candidate becomes the start on the resolved date; a start
// already in the past rolls to the next day unless a date keyword pinned the
// day. With no candidate the start defaults to 09:00. An end time is set only
// when a second candidate exists and an explicit end keyword is present; an
// end not after the start gets 12 hours added (a same-day-crossing heuristic,
// preserved even though it can land on the next day).
func ResolveTimes(text string, now time.Time) (time.Time, *time.Time) {
	targetDate := ResolveTargetDate(text, now)
	candidates := FindTimeCandidates(text)

	var start time.Time
	if len(candidates) > 0 {
		first := candidates[0]
		start = atTime(targetDate, first.Hour, first.Minute)
		if start.Before(now) && !hasDateKeyword(text) {
			start = start.AddDate(0, 0, 1)
		}
	} else {
		start = atTime(targetDate, DefaultStartHour, 0)
	}

	var end *time.Time
	if len(candidates) >= 2 && containsAny(text, endKeywords...) {
		second := candidates[1]
		e := atTime(targetDate, second.Hour, second.Minute)
		if !e.After(start) {
			e = e.Add(12 * time.Hour)
		}
		if e.After(start) {
			end = &e
		}
	}
	return start, end
}

// hasDateKeyword reports whether the text pins the event to a specific day.
func hasDateKeyword(text string) bool {
	return containsAny(text, dateKeywords...)
}

// mondayWeekday converts Go's Sunday-based weekday to the Monday-based
// numbering the keyword tables use.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func atTime(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
