package nlp

import (
	"testing"
	"time"
)

// fixedNow is a Monday morning, so weekday offsets are easy to read.
var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 8, 0, 0, 0, time.Local)
}

func at(d, h, m int) time.Time {
	return time.Date(2025, 3, d, h, m, 0, 0, time.Local)
}

func TestFindTimeCandidates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []TimeCandidate
	}{
		{
			name: "hour with unit",
			in:   "họp lúc 10 giờ",
			want: []TimeCandidate{{Hour: 10, Minute: 0}},
		},
		{
			name: "hour with unit and period",
			in:   "họp lúc 3 giờ chiều",
			want: []TimeCandidate{{Hour: 15, Minute: 0}},
		},
		{
			name: "bare hour with period",
			in:   "họp lúc 3 chiều",
			want: []TimeCandidate{{Hour: 15, Minute: 0}},
		},
		{
			name: "noon morning wraps to midnight",
			in:   "họp 12 sáng",
			want: []TimeCandidate{{Hour: 0, Minute: 0}},
		},
		{
			name: "evening period",
			in:   "ăn 7 tối",
			want: []TimeCandidate{{Hour: 19, Minute: 0}},
		},
		{
			name: "colon form",
			in:   "họp lúc 9:30",
			want: []TimeCandidate{{Hour: 9, Minute: 30}},
		},
		{
			name: "quantity above 12 with period is not a time",
			in:   "mua 30 sáng nay",
			want: nil,
		},
		{
			name: "out of range hour discarded",
			in:   "họp lúc 25 giờ",
			want: nil,
		},
		{
			name: "out of range minute discarded",
			in:   "họp lúc 9:75",
			want: nil,
		},
		{
			name: "two candidates ordered by position",
			in:   "họp lúc 10 giờ kết thúc lúc 12:30",
			want: []TimeCandidate{{Hour: 10, Minute: 0}, {Hour: 12, Minute: 30}},
		},
		{
			name: "no digits",
			in:   "họp nhóm sáng mai",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTimeCandidates(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("FindTimeCandidates(%q) = %v, want %d candidates", tt.in, got, len(tt.want))
			}
			for i := range got {
				if got[i].Hour != tt.want[i].Hour || got[i].Minute != tt.want[i].Minute {
					t.Errorf("candidate %d = %d:%02d, want %d:%02d",
						i, got[i].Hour, got[i].Minute, tt.want[i].Hour, tt.want[i].Minute)
				}
			}
		})
	}
}

func TestResolveTargetDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"today by default", "họp nhóm", day(10)},
		{"hom nay", "họp hôm nay", day(10)},
		{"tomorrow", "họp sáng mai", day(11)},
		{"day after tomorrow", "họp ngày kia", day(12)},
		{"weekday this week", "họp thứ 3", day(11)},
		{"weekday by name", "họp thứ sáu", day(14)},
		{"sunday", "họp chủ nhật", day(16)},
		{"weekday next week", "họp thứ 3 tuần sau", day(18)},
		{"weekday week after next", "họp thứ 3 tuần tới", day(25)},
		{"weekend", "đi chơi cuối tuần", day(15)},
		{"start of week rolls forward", "họp đầu tuần", day(17)},
		{"mid week", "họp giữa tuần", day(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTargetDate(tt.in, fixedNow)
			if !got.Equal(tt.want) {
				t.Errorf("ResolveTargetDate(%q) = %s, want %s",
					tt.in, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

// A weekday keyword earlier in the week than today resolves into the past;
// it is the caller's business to reject or reinterpret that.
func TestResolveTargetDate_EarlierWeekday(t *testing.T) {
	wednesday := time.Date(2025, 3, 12, 8, 0, 0, 0, time.Local)
	got := ResolveTargetDate("họp thứ 2", wednesday)
	want := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveTargetDate = %s, want %s",
			got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestResolveTimes(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantStart time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "explicit future time today",
			in:        "họp lúc 10 giờ",
			wantStart: at(10, 10, 0),
		},
		{
			name:      "explicit time tomorrow",
			in:        "họp lúc 10 giờ sáng mai",
			wantStart: at(11, 10, 0),
		},
		{
			name:      "past time rolls to tomorrow",
			in:        "họp lúc 7 giờ",
			wantStart: at(11, 7, 0),
		},
		{
			name:      "date keyword pins a past time",
			in:        "họp thứ 2 lúc 7 giờ",
			wantStart: at(10, 7, 0),
		},
		{
			name:      "no time defaults to nine",
			in:        "họp nhóm mai",
			wantStart: at(11, 9, 0),
		},
		{
			name:      "end with keyword",
			in:        "họp lúc 10 giờ và kết thúc lúc 12:30",
			wantStart: at(10, 10, 0),
			wantEnd:   timePtr(at(10, 12, 30)),
		},
		{
			name:      "second candidate without keyword is ignored",
			in:        "họp từ 10 giờ đến 12:30",
			wantStart: at(10, 10, 0),
		},
		{
			name:      "end at or before start gets twelve hours",
			in:        "họp lúc 10 giờ kết thúc lúc 9 giờ",
			wantStart: at(10, 10, 0),
			wantEnd:   timePtr(at(10, 21, 0)),
		},
		{
			name:      "end dropped when unresolvable",
			in:        "họp lúc 23 giờ kết thúc lúc 1 giờ",
			wantStart: at(10, 23, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ResolveTimes(tt.in, fixedNow)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s",
					start.Format("2006-01-02 15:04"), tt.wantStart.Format("2006-01-02 15:04"))
			}
			switch {
			case tt.wantEnd == nil && end != nil:
				t.Errorf("end = %s, want none", end.Format("2006-01-02 15:04"))
			case tt.wantEnd != nil && end == nil:
				t.Errorf("end = none, want %s", tt.wantEnd.Format("2006-01-02 15:04"))
			case tt.wantEnd != nil && !end.Equal(*tt.wantEnd):
				t.Errorf("end = %s, want %s",
					end.Format("2006-01-02 15:04"), tt.wantEnd.Format("2006-01-02 15:04"))
			}
		})
	}
}

func TestMondayWeekday(t *testing.T) {
	// 2025-03-10 is a Monday.
	for i := 0; i < 7; i++ {
		d := time.Date(2025, 3, 10+i, 0, 0, 0, 0, time.Local)
		if got := mondayWeekday(d); got != i {
			t.Errorf("mondayWeekday(%s) = %d, want %d", d.Weekday(), got, i)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
