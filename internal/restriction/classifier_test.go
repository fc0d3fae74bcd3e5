package restriction

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"agegate/internal/catalog"
)

// ClassifierSuite tests restricted-category matching.
//
// Justification: The bidirectional substring rule and the name/description
// fallback carry the whole "does this sale need an ID check" decision; both
// need exact coverage of the abbreviation and embedded-text cases.
type ClassifierSuite struct {
	suite.Suite
	classifier *Classifier
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	s.classifier = New([]string{
		"Tobacco",
		"Cigarette",
		"Vapor + Accessories",
		"Alcohol",
		"Tall Cans Beer/Seltzer",
		"Wine",
	})
}

func (s *ClassifierSuite) TestGroupMatching() {
	s.Run("exact group match", func() {
		p := &catalog.Product{Code: "1001", Name: "Budget Reds", Group: "Cigarette"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("case insensitive", func() {
		p := &catalog.Product{Code: "1002", Name: "Lighter Fluid", Group: "TOBACCO"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("extended store taxonomy contains restricted name", func() {
		p := &catalog.Product{Code: "1003", Name: "Merlot", Group: "Wine & Spirits Imported"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("abbreviated store taxonomy contained in restricted name", func() {
		p := &catalog.Product{Code: "1004", Name: "Seltzer 24oz", Group: "Tall Cans Beer"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("full configured label matches itself", func() {
		p := &catalog.Product{Code: "1005", Name: "Hard Seltzer", Group: "Tall Cans Beer/Seltzer"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("unrestricted group", func() {
		p := &catalog.Product{Code: "2001", Name: "Orange Juice", Group: "Beverages"}
		s.False(s.classifier.IsRestricted(p))
	})
}

func (s *ClassifierSuite) TestTextFallback() {
	s.Run("embedded keyword with separators stripped", func() {
		p := &catalog.Product{Code: "3001", Name: "Promo TallCansBeerSeltzer Bundle"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("keyword in description", func() {
		p := &catalog.Product{Code: "3002", Name: "House Special", Description: "chilled alcohol assortment"}
		s.True(s.classifier.IsRestricted(p))
	})

	s.Run("no keyword anywhere", func() {
		p := &catalog.Product{Code: "3003", Name: "Sparkling Water", Description: "zero sugar"}
		s.False(s.classifier.IsRestricted(p))
	})

	s.Run("fallback only when group is absent", func() {
		// A non-matching group is authoritative; the text scan must not
		// resurrect the match.
		p := &catalog.Product{Code: "3004", Name: "Wine Gums", Group: "Candy"}
		s.False(s.classifier.IsRestricted(p))
	})
}

func (s *ClassifierSuite) TestAbsentInput() {
	s.Run("nil product", func() {
		s.False(s.classifier.IsRestricted(nil))
	})

	s.Run("empty product", func() {
		s.False(s.classifier.IsRestricted(&catalog.Product{}))
	})
}

func (s *ClassifierSuite) TestGroupsNormalized() {
	c := New([]string{"  Wine ", "", "Tobacco"})
	s.Equal([]string{"wine", "tobacco"}, c.Groups())
}
