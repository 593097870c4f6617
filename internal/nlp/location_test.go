package nlp

import "testing"

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "after accented preposition up to comma",
			in:   "họp nhóm ở phòng 302, nhắc trước 15 phút",
			want: "phòng 302",
		},
		{
			name: "after tai",
			in:   "họp tại tầng 5",
			want: "tầng 5",
		},
		{
			name: "after unaccented tai",
			in:   "hop tai van phong",
			want: "van phong",
		},
		{
			name: "after bare o",
			in:   "hop o cong vien",
			want: "cong vien",
		},
		{
			name: "cut before time preposition",
			in:   "họp tại tầng 5 lúc 9:30",
			want: "tầng 5",
		},
		{
			name: "cut before clock expression",
			in:   "họp ở hội trường 9 giờ sáng",
			want: "hội trường",
		},
		{
			name: "cut before reminder verb",
			in:   "họp ở văn phòng nhắc trước 15 phút",
			want: "văn phòng",
		},
		{
			name: "trailing day reference trimmed",
			in:   "họp ở phòng 302 mai",
			want: "phòng 302",
		},
		{
			name: "no preposition",
			in:   "họp nhóm lúc 10 giờ",
			want: "",
		},
		{
			name: "purely numeric rejected",
			in:   "họp ở 302 lúc 9 giờ",
			want: "",
		},
		{
			name: "bare period word rejected",
			in:   "họp ở sáng",
			want: "",
		},
		{
			name: "single rune rejected",
			in:   "họp ở x",
			want: "",
		},
		{
			name: "bare o inside accented word ignored",
			in:   "họp vào sáng mai",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLocation(tt.in)
			if got != tt.want {
				t.Errorf("ExtractLocation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
