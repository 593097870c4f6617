package nlp

import "testing"

func TestExtractReminderMinutes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"accented minutes", "họp nhóm, nhắc trước 15 phút", 15},
		{"unaccented minutes", "hop nhom, nhac truoc 30 phut", 30},
		{"bao truoc form", "báo trước 5 phút", 5},
		{"bare truoc minutes", "trước 45 phút là được", 45},
		{"nhac nho form", "nhắc nhở trước 10 phút", 10},
		{"accented hours", "nhắc trước 2 giờ", 120},
		{"unaccented hours", "nhac truoc 1 gio", 60},
		{"bare truoc hours", "đi khám, trước 3 giờ", 180},
		{"abbreviated minute unit", "nhắc trước 20 p", 20},
		{"no unit at end of text", "dọn dẹp nhà trước 10", 10},
		{"first match wins", "nhắc trước 5 phút và trước 2 giờ", 5},
		{"no clause", "họp nhóm lúc 10 giờ sáng mai", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReminderMinutes(tt.in)
			if got != tt.want {
				t.Errorf("ExtractReminderMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
