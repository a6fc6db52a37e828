package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		today    time.Time
		want     time.Time
	}{
		{
			name:     "later this year",
			birthday: date(1990, time.October, 5),
			today:    date(2025, time.June, 1),
			want:     date(2025, time.October, 5),
		},
		{
			name:     "already passed rolls to next year",
			birthday: date(1990, time.February, 10),
			today:    date(2025, time.June, 1),
			want:     date(2026, time.February, 10),
		},
		{
			name:     "today is the birthday",
			birthday: date(1990, time.June, 1),
			today:    date(2025, time.June, 1),
			want:     date(2025, time.June, 1),
		},
		{
			name:     "december to january rollover",
			birthday: date(1985, time.January, 2),
			today:    date(2025, time.December, 30),
			want:     date(2026, time.January, 2),
		},
		{
			name:     "feb 29 in non-leap year becomes mar 1",
			birthday: date(1992, time.February, 29),
			today:    date(2025, time.January, 15),
			want:     date(2025, time.March, 1),
		},
		{
			name:     "feb 29 in leap year stays feb 29",
			birthday: date(1992, time.February, 29),
			today:    date(2028, time.January, 15),
			want:     date(2028, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.birthday, tt.today)
			assert.True(t, got.Equal(tt.want), "want %v got %v", tt.want, got)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		birthday time.Time
		today    time.Time
		want     int
	}{
		{
			name:     "same day is zero",
			birthday: date(1990, time.June, 1),
			today:    date(2025, time.June, 1),
			want:     0,
		},
		{
			name:     "tomorrow",
			birthday: date(1990, time.June, 2),
			today:    date(2025, time.June, 1),
			want:     1,
		},
		{
			name:     "yesterday spans a non-leap year",
			birthday: date(1990, time.June, 1),
			today:    date(2025, time.June, 2),
			want:     364,
		},
		{
			name:     "yesterday spanning feb 29",
			birthday: date(1990, time.June, 1),
			today:    date(2027, time.June, 2),
			want:     365,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.birthday, tt.today))
		})
	}
}
