package nlp

import (
	"regexp"
	"strings"
)

// Segmenter is the word-segmentation collaborator. Segmentation is an
// accuracy aid, not a correctness requirement: every extractor matches
// substrings of the text, not token boundaries, so any Segmenter failure is
// absorbed and the normalized string is treated as already segmented.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// splitClockRE matches a clock token torn apart by segmentation ("9 : 30").
var splitClockRE = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)

// segmentText runs the segmenter over normalized text and rejoins the token
// stream with single spaces. Digit groups split around a colon are glued
// back together so clock tokens survive segmentation.
func segmentText(seg Segmenter, normalized string) string {
	if seg == nil {
		return normalized
	}
	tokens, err := seg.Segment(normalized)
	if err != nil || len(tokens) == 0 {
		return normalized
	}
	joined := strings.Join(tokens, " ")
	return splitClockRE.ReplaceAllString(joined, "$1:$2")
}
