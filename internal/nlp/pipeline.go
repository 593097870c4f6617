package nlp

import (
	"errors"
	"fmt"
	"time"
)

// ErrExtraction is the single error kind the pipeline surfaces. It marks an
// unexpected internal fault only; every expected ambiguity (missing time,
// location, reminder, end time) resolves to a default instead.
var ErrExtraction = errors.New("extraction failed")

// Result is the structured record extracted from one utterance.
//
// StartTime always carries a concrete hour and minute. EndTime, when
// present, is strictly after StartTime. ReminderMinutes is non-negative and
// 0 means no reminder. Location may be empty.
type Result struct {
	EventName       string     `json:"event"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Location        string     `json:"location,omitempty"`
	ReminderMinutes int        `json:"reminder_minutes"`
}

// Pipeline orchestrates normalization, segmentation, and the four
// extractors. Safe for concurrent use: all pattern tables are immutable
// after process start and no call mutates shared state.
type Pipeline struct {
	segmenter Segmenter
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSegmenter sets the word-segmentation collaborator. Without one the
// normalized text is treated as already segmented.
func WithSegmenter(seg Segmenter) Option {
	return func(p *Pipeline) { p.segmenter = seg }
}

// WithNow sets the clock source used for relative-date resolution.
func WithNow(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates an extraction pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract turns one raw utterance into a Result. Extractors are internally
// total, so the only failure mode is an unexpected fault, recovered and
// converted to ErrExtraction with no partial result exposed.
func (p *Pipeline) Extract(raw string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrExtraction, r)
		}
	}()

	text := segmentText(p.segmenter, Normalize(raw))

	start, end := ResolveTimes(text, p.now())
	return &Result{
		EventName:       ExtractEventName(text),
		StartTime:       start,
		EndTime:         end,
		Location:        ExtractLocation(text),
		ReminderMinutes: ExtractReminderMinutes(text),
	}, nil
}
