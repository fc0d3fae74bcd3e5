package credential

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"agegate/pkg/domain"
	dErrors "agegate/pkg/domain-errors"
)

// ParserSuite tests both parsing tiers and the manual entry path.
//
// Justification: The parser is the safety-critical boundary. A malformed or
// ambiguous payload must never surface as a usable credential, and the tier
// fallback rules (short payloads terminal, long payloads scavenged) carry
// real policy.
type ParserSuite struct {
	suite.Suite
	parser *Parser
	now    time.Time
}

func TestParserSuite(t *testing.T) {
	suite.Run(t, new(ParserSuite))
}

func (s *ParserSuite) SetupTest() {
	s.parser = NewParser()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func aamvaPayload(lines ...string) string {
	return "@\n\x1e\rANSI 636014080002DL00410288ZC03290015DLDCA\n" + strings.Join(lines, "\n")
}

func (s *ParserSuite) TestStructuredTier() {
	s.Run("full AAMVA record", func() {
		raw := aamvaPayload(
			"DAQD12345678",
			"DACJANE",
			"DADMARIE",
			"DABDOE",
			"DBB05151999",
			"DBA05152030",
			"DBCF",
			"DAG123 MAIN ST",
			"DAISPRINGFIELD",
			"DAJIL",
			"DAK62704",
		)
		cred, err := s.parser.Parse(raw, s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
		s.Equal("JANE", cred.FirstName)
		s.Equal("DOE", cred.LastName)
		s.Equal("D12345678", cred.LicenseNumber)
		s.Require().NotNil(cred.ExpirationDate)
		s.Equal(time.Date(2030, 5, 15, 0, 0, 0, 0, time.UTC), *cred.ExpirationDate)
		s.Equal("JANE DOE", cred.DisplayName())
	})

	s.Run("first occurrence of a field code wins", func() {
		raw := aamvaPayload("DAAJOHN Q PUBLIC", "DBB06011990", "DBB01012001")
		cred, err := s.parser.Parse(raw, s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
	})

	s.Run("malformed auxiliary date does not sink the record", func() {
		raw := aamvaPayload("DAAJOHN Q PUBLIC", "DBB06011990", "DBAnotadate")
		cred, err := s.parser.Parse(raw, s.now)
		s.Require().NoError(err)
		s.Nil(cred.ExpirationDate)
	})

	s.Run("date of birth without a name is unparseable", func() {
		raw := aamvaPayload("DBB06011990", "DAQD12345678")
		_, err := s.parser.Parse(raw, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnparseable))
	})

	s.Run("name without a date of birth is unparseable", func() {
		raw := aamvaPayload("DAAJOHN Q PUBLIC", "DAQD12345678")
		_, err := s.parser.Parse(raw, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnparseable))
	})
}

func (s *ParserSuite) TestLengthThresholds() {
	s.Run("forty character payload is rejected with no fallback", func() {
		raw := "@ANSI DBB05151999 padpadpadpadpadpadpa"
		s.Require().Less(len(raw), 50)
		_, err := s.parser.Parse(raw, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnparseable))
	})

	s.Run("structured failure between 50 and 100 chars is terminal", func() {
		// Carries a perfectly plausible embedded date, but the payload is too
		// short to earn the heuristic scan.
		raw := "@ANSI 636014080002DL incomplete record 05151999 xxxxxxxxxxxxxxx"
		s.Require().Greater(len(raw), 50)
		s.Require().LessOrEqual(len(raw), 100)
		_, err := s.parser.Parse(raw, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnparseable))
	})

	s.Run("structured failure over 100 chars falls through to heuristic", func() {
		raw := "@ANSI 636014080002DL damaged header " + strings.Repeat("x", 70) + " 05151999 trailer"
		s.Require().Greater(len(raw), 100)
		cred, err := s.parser.Parse(raw, s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
	})
}

func (s *ParserSuite) TestHeuristicTier() {
	pad := strings.Repeat("z", 101)

	s.Run("YYYYMMDD run", func() {
		cred, err := s.parser.Parse(pad+"19850615", s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
	})

	s.Run("slash-delimited date", func() {
		cred, err := s.parser.Parse(pad+"12/24/1979", s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1979, 12, 24, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
	})

	s.Run("hyphen-delimited date", func() {
		cred, err := s.parser.Parse(pad+"1979-12-24", s.now)
		s.Require().NoError(err)
		s.Equal(time.Date(1979, 12, 24, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)
	})

	s.Run("date outside the plausible window is implausible", func() {
		// Parses as Jan 1 2023: younger than now-10 years.
		_, err := s.parser.Parse(pad+"01012023", s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeImplausibleDate))
	})

	s.Run("no date shapes at all", func() {
		_, err := s.parser.Parse(strings.Repeat("q", 150), s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeUnparseable))
	})

	s.Run("window bounds are configurable", func() {
		parser := NewParser(WithBirthYearWindow(100, 2))
		cred, err := parser.Parse(pad+"01012023", s.now)
		s.Require().NoError(err)
		s.Equal(2023, cred.DateOfBirth.Year())
	})
}

func (s *ParserSuite) TestManualEntry() {
	s.Run("eight digit YYYYMMDD accepted unconditionally", func() {
		cred, err := s.parser.ParseManualEntry("19990515")
		s.Require().NoError(err)
		s.Equal(time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC), cred.DateOfBirth)

		// Round trip through the age evaluator.
		asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		s.Equal(26, domain.Age(cred.DateOfBirth, asOf))
		s.True(domain.IsOfAge(cred.DateOfBirth, asOf, 21))
	})

	s.Run("surrounding whitespace tolerated", func() {
		_, err := s.parser.ParseManualEntry(" 19990515\n")
		s.NoError(err)
	})

	s.Run("wrong length rejected", func() {
		_, err := s.parser.ParseManualEntry("1999515")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidManualEntry))
	})

	s.Run("non-digits rejected", func() {
		_, err := s.parser.ParseManualEntry("1999x515")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidManualEntry))
	})

	s.Run("impossible calendar date rejected", func() {
		_, err := s.parser.ParseManualEntry("19991350")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidManualEntry))
	})
}
