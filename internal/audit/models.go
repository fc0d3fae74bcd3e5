// Package audit records the session-scoped compliance trail: every prompt,
// verification outcome, and override for the current terminal session. The
// log is in-memory by design; nothing survives a process restart.
package audit

import (
	"time"

	id "agegate/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID            id.AuditEventID  `json:"id"`
	Timestamp     time.Time        `json:"timestamp"`
	TransactionID id.TransactionID `json:"transaction_id"`
	Action        Action           `json:"action"`

	// Product context, set for prompt events.
	ProductCode  string `json:"product_code,omitempty"`
	ProductName  string `json:"product_name,omitempty"`
	ProductGroup string `json:"product_group,omitempty"`

	// Verification context, set for outcome events.
	CustomerName string `json:"customer_name,omitempty"`
	CustomerAge  *int   `json:"customer_age,omitempty"`
	MinimumAge   int    `json:"minimum_age,omitempty"`
	Approved     *bool  `json:"approved,omitempty"`
	Method       Method `json:"method,omitempty"`
	Reason       string `json:"reason,omitempty"`

	// Request correlation for events that arrived over the local API.
	RequestID      string `json:"request_id,omitempty"`
	RegisterClient string `json:"register_client,omitempty"`
}

// Action enumerates the auditable moments of a transaction.
type Action string

const (
	ActionPromptShown    Action = "id_check_prompted"
	ActionAgeApproved    Action = "age_verified_approved"
	ActionAgeDenied      Action = "age_verified_denied"
	ActionCredentialErr  Action = "credential_unreadable"
	ActionManualApproved Action = "manual_verification_approved"
	ActionManualDenied   Action = "manual_verification_denied"
	ActionTransactionNew Action = "transaction_reset"
)

// Method distinguishes how an age decision was reached.
type Method string

const (
	MethodScan   Method = "scan"
	MethodManual Method = "manual"
)
