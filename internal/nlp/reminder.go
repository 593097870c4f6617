package nlp

import (
	"regexp"
	"strconv"
)

// reminderUnit tells how a matched reminder value converts to minutes.
type reminderUnit int

const (
	unitMinutes reminderUnit = iota // kept as-is; also the no-unit default
	unitHours                       // multiplied by 60
)

// reminderRule is one ordered reminder-clause shape. The slice is scanned
// top-down and the first match wins; order is semantically load-bearing
// (most-specific shapes first, unit-less fallbacks last).
type reminderRule struct {
	re   *regexp.Regexp
	unit reminderUnit
}

var reminderRules = []reminderRule{
	// minute unit, accented
	{regexp.MustCompile(`nhắc\s+(tôi|mình)?\s*trước\s*(\d+)\s*phút`), unitMinutes},
	{regexp.MustCompile(`nhắc\s+nhở\s*trước\s*(\d+)\s*phút`), unitMinutes},
	{regexp.MustCompile(`báo\s+trước\s*(\d+)\s*phút`), unitMinutes},
	{regexp.MustCompile(`trước\s*(\d+)\s*phút`), unitMinutes},

	// minute unit, unaccented
	{regexp.MustCompile(`nhac\s+(toi|minh)?\s*truoc\s*(\d+)\s*phut`), unitMinutes},
	{regexp.MustCompile(`nhac\s+nho\s*truoc\s*(\d+)\s*phut`), unitMinutes},
	{regexp.MustCompile(`bao\s*truoc\s*(\d+)\s*phut`), unitMinutes},
	{regexp.MustCompile(`truoc\s*(\d+)\s*phut`), unitMinutes},

	// hour unit, accented
	{regexp.MustCompile(`nhắc\s+(tôi|mình)?\s*trước\s*(\d+)\s*giờ`), unitHours},
	{regexp.MustCompile(`nhắc\s+nhở\s*trước\s*(\d+)\s*giờ`), unitHours},
	{regexp.MustCompile(`báo\s+trước\s*(\d+)\s*giờ`), unitHours},
	{regexp.MustCompile(`trước\s*(\d+)\s*giờ`), unitHours},

	// hour unit, unaccented
	{regexp.MustCompile(`nhac\s+(toi|minh)?\s*truoc\s*(\d+)\s*gio`), unitHours},
	{regexp.MustCompile(`nhac\s+nho\s*truoc\s*(\d+)\s*gio`), unitHours},
	{regexp.MustCompile(`bao\s*truoc\s*(\d+)\s*gio`), unitHours},
	{regexp.MustCompile(`truoc\s*(\d+)\s*gio`), unitHours},

	// abbreviated minute unit
	{regexp.MustCompile(`nhắc\s+(tôi|mình)?\s*trước\s*(\d+)\s*p`), unitMinutes},
	{regexp.MustCompile(`nhắc\s+nhở\s*trước\s*(\d+)\s*p`), unitMinutes},
	{regexp.MustCompile(`trước\s*(\d+)\s*p`), unitMinutes},

	// no unit: defaults to minutes
	{regexp.MustCompile(`nhắc\s+(tôi|mình)?\s*trước\s*(\d+)`), unitMinutes},
	{regexp.MustCompile(`nhắc\s+nhở\s*trước\s*(\d+)`), unitMinutes},
	{regexp.MustCompile(`trước\s*(\d+)\s*$`), unitMinutes},
}

// ExtractReminderMinutes finds an explicit "remind N minutes/hours before"
// clause in normalized text and returns the lead time in minutes. No clause
// means no reminder: 0.
func ExtractReminderMinutes(text string) int {
	for _, rule := range reminderRules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, g := range m[1:] {
			n, err := strconv.Atoi(g)
			if err != nil {
				continue
			}
			if rule.unit == unitHours {
				return n * 60
			}
			return n
		}
	}
	return 0
}
