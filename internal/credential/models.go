// Package credential parses customer identification payloads into structured
// records with a verified date of birth.
package credential

import "time"

// Credential is a parsed identification record. DateOfBirth is the only field
// verification depends on; a record lacking a usable date of birth is treated
// as unparseable, never as "age unknown but valid". Remaining fields are
// retained for operator display and the session audit trail.
type Credential struct {
	DateOfBirth    time.Time
	FullName       string
	FirstName      string
	MiddleName     string
	LastName       string
	LicenseNumber  string
	Sex            string
	ExpirationDate *time.Time
	IssueDate      *time.Time
	Address1       string
	Address2       string
	City           string
	State          string
	ZipCode        string
}

// HasName reports whether the record carries any form of a name. The
// structured tier requires this in addition to a date of birth.
func (c *Credential) HasName() bool {
	return c.FullName != "" || c.FirstName != "" || c.LastName != ""
}

// DisplayName returns the best operator-facing name for the credential.
func (c *Credential) DisplayName() string {
	if c.FirstName != "" && c.LastName != "" {
		return c.FirstName + " " + c.LastName
	}
	if c.FullName != "" {
		return c.FullName
	}
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.LastName
}
