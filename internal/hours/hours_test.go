package hours

import (
	"testing"
	"time"
)

func TestFloor(t *testing.T) {
	in := time.Date(2024, 1, 1, 14, 37, 52, 123456789, time.Local)
	got := Floor(in)
	want := time.Date(2024, 1, 1, 14, 0, 0, 0, time.Local)

	if !got.Equal(want) {
		t.Errorf("Floor(%v) = %v, want %v", in, got, want)
	}
}

func TestFloor_Idempotent(t *testing.T) {
	h := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	if got := Floor(h); !got.Equal(h) {
		t.Errorf("Floor of an already-floored hour changed it: %v", got)
	}
}

func TestBetween_EmptyWhenStartAfterEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 1, 9, 40, 0, 0, time.Local)

	if got := Between(start, end); len(got) != 0 {
		t.Errorf("Between(start > end) = %v, want empty", got)
	}
}

func TestBetween_InclusiveCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		count int
	}{
		{
			name:  "same hour",
			start: time.Date(2024, 1, 1, 9, 15, 0, 0, time.Local),
			end:   time.Date(2024, 1, 1, 9, 45, 0, 0, time.Local),
			count: 1,
		},
		{
			name:  "partial day",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			end:   time.Date(2024, 1, 1, 14, 30, 0, 0, time.Local),
			count: 15,
		},
		{
			name:  "across midnight",
			start: time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local),
			end:   time.Date(2024, 1, 2, 1, 0, 0, 0, time.Local),
			count: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Between(tt.start, tt.end)
			if len(got) != tt.count {
				t.Fatalf("Between returned %d hours, want %d", len(got), tt.count)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Sub(got[i-1]) != time.Hour {
					t.Errorf("gap between %v and %v is not one hour", got[i-1], got[i])
				}
			}
		})
	}
}

func TestBetween_Restartable(t *testing.T) {
	start := time.Date(2024, 3, 10, 8, 12, 0, 0, time.Local)
	end := time.Date(2024, 3, 10, 17, 59, 0, 0, time.Local)

	first := Between(start, end)
	second := Between(start, end)

	if len(first) != len(second) {
		t.Fatalf("repeated calls differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("element %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestFormatRange(t *testing.T) {
	h := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	got := FormatRange(h)
	want := "9:00 AM - 10:00 AM"

	if got != want {
		t.Errorf("FormatRange = %q, want %q", got, want)
	}
}

func TestDayBounds(t *testing.T) {
	in := time.Date(2024, 6, 15, 13, 45, 12, 0, time.Local)

	start := DayStart(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Day() != 15 {
		t.Errorf("DayStart = %v", start)
	}

	end := DayEnd(in)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Day() != 15 {
		t.Errorf("DayEnd = %v", end)
	}
}
