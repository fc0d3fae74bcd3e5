// Package verification coordinates the per-transaction age check: it owns the
// single mutable verification state, decides when the ID prompt fires, and
// turns parsed credentials into approve/deny outcomes.
package verification

import (
	"agegate/internal/credential"
	"agegate/pkg/domain"
)

// State is the sole mutable record of the engine, scoped to exactly one
// active transaction on the terminal. PromptShown and Verified always reset
// together on a transaction boundary.
type State struct {
	TransactionID  domain.TransactionID
	PromptShown    bool
	Verified       bool
	LastCredential *credential.Credential

	// itemCount tracks the last reported line-item count so a drop to zero
	// can be recognized as a transaction boundary.
	itemCount int
}

// Snapshot is the introspection view of the engine state, for the local API
// and for tests.
type Snapshot struct {
	TransactionID domain.TransactionID `json:"transaction_id"`
	PromptShown   bool                 `json:"prompt_shown"`
	Verified      bool                 `json:"verified"`
}

// Result reports the outcome of a credential evaluation or manual override.
type Result struct {
	Age      int  `json:"age"`
	Approved bool `json:"approved"`
}

// Policy is the static configuration of the engine: which age clears the
// check. The restricted group list lives with the classifier.
type Policy struct {
	MinimumAge int
}
