package nlp

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercase and trim",
			in:   "  Họp Nhóm  ",
			want: "họp nhóm",
		},
		{
			name: "informal weekday-next phrasing",
			in:   "hop thu 2 toi",
			want: "hop thứ 2 tuần tới",
		},
		{
			name: "reminder pronoun collapsed accented",
			in:   "nhắc tôi họp",
			want: "nhắc họp",
		},
		{
			name: "reminder pronoun collapsed unaccented",
			in:   "nhac minh hop",
			want: "nhắc hop",
		},
		{
			name: "reminder verb misspelling",
			in:   "nahc hop luc 9 gio",
			want: "nhắc hop luc 9 giờ",
		},
		{
			name: "unaccented before keyword",
			in:   "truoc 15 phut",
			want: "trước 15 phút",
		},
		{
			name: "hour abbreviation h",
			in:   "hop luc 10h sang",
			want: "hop luc 10 giờ sang",
		},
		{
			name: "hour abbreviation g",
			in:   "hop luc 10 g sang",
			want: "hop luc 10 giờ sang",
		},
		{
			name: "hour unaccented gio",
			in:   "hop luc 10 gio sang",
			want: "hop luc 10 giờ sang",
		},
		{
			name: "minute abbreviation p",
			in:   "nhắc trước 15 p",
			want: "nhắc trước 15 phút",
		},
		{
			name: "weekday names",
			in:   "hop thu sau va chu nhat",
			want: "hop thứ sáu va chủ nhật",
		},
		{
			name: "hour-minute pair becomes colon token",
			in:   "hop luc 9 gio 30",
			want: "hop luc 9:30",
		},
		{
			name: "hour-minute pair via h",
			in:   "hop luc 9h30",
			want: "hop luc 9:30",
		},
		{
			name: "unit rewrite leaves unrelated digits alone",
			in:   "phòng 302 hôm nay",
			want: "phòng 302 hôm nay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_IdempotentOnCanonicalInput(t *testing.T) {
	canonical := []string{
		"họp nhóm lúc 10 giờ sáng mai tại phòng 302, nhắc trước 15 phút",
		"đi chơi cuối tuần ở công viên",
		"họp lúc 9:30 thứ sáu tuần sau",
		"sự kiện không xác định",
	}
	for _, s := range canonical {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent:\nonce  = %q\ntwice = %q", once, twice)
		}
	}
}
