package audit

import (
	"context"

	id "agegate/pkg/domain"
)

// Store is the append-only sink for session audit events. Implementations
// must be safe for concurrent use; reads return copies.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByTransaction(ctx context.Context, txID id.TransactionID) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}
