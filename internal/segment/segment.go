// Package segment provides word segmentation for Vietnamese utterances.
//
// Vietnamese compound words span multiple space-separated syllables, so a
// trained tokenizer model improves downstream extraction accuracy. It is an
// accuracy aid only: callers fall back to whitespace splitting when no model
// is configured or the tokenizer fails.
package segment

import (
	"fmt"
	"strings"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Whitespace is the trivial segmenter: one token per whitespace-separated
// field. It is both the default and the failure fallback.
type Whitespace struct{}

func (Whitespace) Segment(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// Tokenizer segments text with a pretrained tokenizer model file.
type Tokenizer struct {
	tk *tokenizer.Tokenizer
}

// NewTokenizer loads a tokenizer definition (tokenizer.json format) from
// path.
func NewTokenizer(path string) (*Tokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer %s: %w", path, err)
	}
	return &Tokenizer{tk: tk}, nil
}

// Segment encodes text and returns its token strings. Any encoding error is
// returned for the caller to absorb with its identity fallback.
func (t *Tokenizer) Segment(text string) ([]string, error) {
	en, err := t.tk.EncodeSingle(text)
	if err != nil {
		return nil, fmt.Errorf("encoding text: %w", err)
	}
	return en.Tokens, nil
}
