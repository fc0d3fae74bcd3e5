// Package domain provides type-safe identifiers and age arithmetic shared
// across the verification pipeline.
package domain

import (
	"github.com/google/uuid"

	dErrors "agegate/pkg/domain-errors"
)

// TransactionID identifies one checkout session on the terminal. The value is
// opaque and owned by the host POS; an empty TransactionID means no transaction
// has been observed yet.
type TransactionID string

// AuditEventID identifies a single audit log entry.
type AuditEventID uuid.UUID

// ParseTransactionID validates external transaction identifiers at trust
// boundaries. Empty strings are allowed (the POS has not reported an id yet);
// use IsNil at the service layer when presence matters.
func ParseTransactionID(s string) (TransactionID, error) {
	if len(s) > 128 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "transaction ID too long")
	}
	return TransactionID(s), nil
}

// NewAuditEventID generates a fresh audit event identifier.
func NewAuditEventID() AuditEventID {
	return AuditEventID(uuid.New())
}

func (id TransactionID) String() string { return string(id) }
func (id AuditEventID) String() string  { return uuid.UUID(id).String() }

func (id TransactionID) IsNil() bool { return id == "" }
func (id AuditEventID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
