package verification

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Presenter,AuditPublisher

import (
	"context"

	"agegate/internal/audit"
	"agegate/internal/catalog"
	"agegate/internal/credential"
)

// Presenter receives the engine's operator-facing outputs. Implementations
// render them however the terminal presents alerts (console, local UI); the
// engine never knows or cares.
type Presenter interface {
	// PromptForCredential asks the operator to request the customer's ID.
	// Fired at most once per transaction while unverified.
	PromptForCredential(ctx context.Context, trigger catalog.Product)

	// VerificationApproved announces that the customer met the minimum age.
	VerificationApproved(ctx context.Context, age int, cred *credential.Credential)

	// VerificationDenied announces that the customer is underage. The
	// transaction is not locked; a corrected ID may still be presented.
	VerificationDenied(ctx context.Context, age, minimumAge int, cred *credential.Credential)

	// CredentialError reports an unreadable or implausible credential so the
	// operator can rescan or fall back to a manual check.
	CredentialError(ctx context.Context, reason string)
}

// AuditPublisher records compliance events. Satisfied by audit.Publisher.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
