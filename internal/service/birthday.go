package service

import (
	"bitwise74/contacts-api/internal/model"
	"time"
)

// birthdayInWindow reports whether the anniversary of b lands inside
// [from, from+days]. Anniversaries are tried in from's year and the one
// after so windows crossing new year still match January birthdays.
func birthdayInWindow(b model.Date, from time.Time, days int) bool {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	for _, year := range []int{start.Year(), start.Year() + 1} {
		c := anniversary(b, year)
		if !c.Before(start) && !c.After(end) {
			return true
		}
	}

	return false
}

// Feb 29 birthdays fall on Feb 28 in common years
func anniversary(b model.Date, year int) time.Time {
	month, day := b.Month(), b.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
