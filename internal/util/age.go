package util

import "time"

// AgeParts returns a child's age as whole years plus whole weeks since
// the last birthday. Sequence rows are stamped with both so that the
// same quiz retaken at a later age starts a fresh sequence.
func AgeParts(dob, now time.Time) (years int, weeks int) {
	if dob.After(now) {
		return 0, 0
	}

	years = now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
		anniversary = dob.AddDate(years, 0, 0)
	}

	weeks = int(now.Sub(anniversary).Hours() / 24 / 7)
	return years, weeks
}

// AgeYears is the plain whole-year age.
func AgeYears(dob, now time.Time) int {
	years, _ := AgeParts(dob, now)
	return years
}
