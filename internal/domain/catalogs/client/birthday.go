package client

import (
	"math"
	"time"
)

// NextOccurrence returns the next calendar occurrence of a birthday on or
// after today. The candidate is built from today's year and the birthday's
// month and day; when that date has already passed this year, the year
// advances by one. A birthday falling on today resolves to today, not to
// next year.
//
// Feb 29 in a non-leap year normalizes to Mar 1 (time.Date overflow rule).
func NextOccurrence(birthday, today time.Time) time.Time {
	today = truncateToDay(today)

	occurrence := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if occurrence.Before(today) {
		occurrence = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return occurrence
}

// DaysUntil returns the number of whole days from today to the next
// occurrence of the birthday. Zero when today is the birthday.
func DaysUntil(birthday, today time.Time) int {
	today = truncateToDay(today)
	next := NextOccurrence(birthday, today)
	// Round, do not truncate: a DST transition inside the span makes the
	// difference a non-integral number of days.
	return int(math.Round(next.Sub(today).Hours() / 24))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpcomingBirthday pairs a client with the countdown to their next birthday.
type UpcomingBirthday struct {
	Client    *Client   `json:"client"`
	Next      time.Time `json:"next"`
	DaysUntil int       `json:"daysUntil"`
}
