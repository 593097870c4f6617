package segment

import (
	"reflect"
	"testing"
)

func TestWhitespaceSegment(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"họp nhóm lúc 10 giờ", []string{"họp", "nhóm", "lúc", "10", "giờ"}},
		{"  đi  chơi  ", []string{"đi", "chơi"}},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got, err := Whitespace{}.Segment(tt.in)
		if err != nil {
			t.Fatalf("Segment(%q): %v", tt.in, err)
		}
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segment(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewTokenizerMissingFile(t *testing.T) {
	if _, err := NewTokenizer("/nonexistent/tokenizer.json"); err == nil {
		t.Fatal("expected error for missing tokenizer file")
	}
}
