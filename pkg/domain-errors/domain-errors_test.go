package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeUnparseable, Message: "no date of birth found"}
		s.Equal("no date of birth found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUnparseable}
		s.Equal("unparseable_credential", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("pos backend unreachable")
		err := &Error{Code: CodeUnavailable, Message: "lookup failed", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeImplausibleDate, Message: "year 1802"}
		err2 := &Error{Code: CodeImplausibleDate, Message: "year 2024"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeUnparseable}
		err2 := &Error{Code: CodeImplausibleDate}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := errors.New("not found")
		s.False(err1.Is(err2))
	})

	s.Run("works with errors.Is through chain", func() {
		inner := &Error{Code: CodeUnparseable, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		target := &Error{Code: CodeUnparseable}

		s.True(errors.Is(wrapped, target))
	})
}

func (s *DomainErrorsSuite) TestNew() {
	s.Run("creates error with code and message", func() {
		err := New(CodeInvalidManualEntry, "expected eight digits")
		s.Require().NotNil(err)

		var domainErr *Error
		s.Require().True(errors.As(err, &domainErr))
		s.Equal(CodeInvalidManualEntry, domainErr.Code)
		s.Equal("expected eight digits", domainErr.Message)
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code when wrapping domain error", func() {
		original := New(CodeImplausibleDate, "birth year out of window")
		wrapped := Wrap(original, CodeInternal, "parse failed")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeImplausibleDate, domainErr.Code)
		s.Equal("parse failed", domainErr.Message)
	})

	s.Run("uses provided code when wrapping non-domain error", func() {
		original := errors.New("connection refused")
		wrapped := Wrap(original, CodeUnavailable, "pos lookup failed")

		var domainErr *Error
		s.Require().True(errors.As(wrapped, &domainErr))
		s.Equal(CodeUnavailable, domainErr.Code)
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("true for matching code", func() {
		err := New(CodeUnparseable, "bad payload")
		s.True(HasCode(err, CodeUnparseable))
	})

	s.Run("false for non-matching code", func() {
		err := New(CodeUnparseable, "bad payload")
		s.False(HasCode(err, CodeImplausibleDate))
	})

	s.Run("false for plain error", func() {
		s.False(HasCode(errors.New("boom"), CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Run("returns code for domain error", func() {
		s.Equal(CodeImplausibleDate, CodeOf(New(CodeImplausibleDate, "")))
	})

	s.Run("defaults to internal for plain error", func() {
		s.Equal(CodeInternal, CodeOf(errors.New("boom")))
	})
}
