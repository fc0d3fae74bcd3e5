package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// AgeSuite tests age calculation functions.
//
// Justification: Pure function with date arithmetic edge cases.
// The invariant "exactly Nth birthday meets the minimum" must be preserved.
type AgeSuite struct {
	suite.Suite
}

func TestAgeSuite(t *testing.T) {
	suite.Run(t, new(AgeSuite))
}

func (s *AgeSuite) TestAge_BirthdayBoundaries() {
	s.Run("exact birthday counts the full year", func() {
		birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
		s.Equal(21, Age(birthDate, asOf))
	})

	s.Run("day before birthday is one year less", func() {
		birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 1, 14, 23, 59, 59, 0, time.UTC)
		s.Equal(20, Age(birthDate, asOf))
	})

	s.Run("day after birthday", func() {
		birthDate := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 1, 16, 0, 0, 0, 0, time.UTC)
		s.Equal(21, Age(birthDate, asOf))
	})

	s.Run("earlier month later day decrements", func() {
		birthDate := time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 5, 30, 0, 0, 0, 0, time.UTC)
		s.Equal(20, Age(birthDate, asOf))
	})
}

func (s *AgeSuite) TestAge_LeapYear() {
	s.Run("Feb 29 birthday not yet reached on Feb 28", func() {
		birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 2, 28, 0, 0, 0, 0, time.UTC)
		s.Equal(20, Age(birthDate, asOf))
	})

	s.Run("Feb 29 birthday reached on Mar 1 of non-leap year", func() {
		birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
		s.Equal(21, Age(birthDate, asOf))
	})
}

func (s *AgeSuite) TestIsOfAge() {
	minimumAge := 21

	s.Run("exactly 21 on birthday meets minimum", func() {
		birthDate := time.Date(2000, 7, 4, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC)
		s.True(IsOfAge(birthDate, asOf, minimumAge))
	})

	s.Run("one day short does not", func() {
		birthDate := time.Date(2000, 7, 4, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2021, 7, 3, 0, 0, 0, 0, time.UTC)
		s.False(IsOfAge(birthDate, asOf, minimumAge))
	})

	s.Run("well over the minimum", func() {
		birthDate := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		s.True(IsOfAge(birthDate, asOf, minimumAge))
	})

	s.Run("manual entry round trip age 26", func() {
		birthDate := time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC)
		asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		s.Equal(26, Age(birthDate, asOf))
		s.True(IsOfAge(birthDate, asOf, minimumAge))
	})
}
