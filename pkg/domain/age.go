package domain

import "time"

// Age returns the whole elapsed years between birthDate and asOf: the year
// difference, minus one when the birthday has not yet occurred in asOf's year
// (lexicographic comparison of (month, day)).
//
// Example:
//
//	birthDate := time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC)
//	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
//	Age(birthDate, asOf) // returns 26
func Age(birthDate, asOf time.Time) int {
	b := birthDate.UTC()
	a := asOf.UTC()
	age := a.Year() - b.Year()
	if a.Month() < b.Month() || (a.Month() == b.Month() && a.Day() < b.Day()) {
		age--
	}
	return age
}

// IsOfAge reports whether the person born on birthDate has reached minimumAge
// whole years as of the reference time. Someone on their exact birthday meets
// the minimum; one day short does not.
func IsOfAge(birthDate, asOf time.Time, minimumAge int) bool {
	return Age(birthDate, asOf) >= minimumAge
}
