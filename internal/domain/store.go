package domain

import "context"

// Repositories groups the repositories that share one storage scope.
type Repositories interface {
	Users() UserRepository
	Pacts() PactRepository
	Guests() GuestRepository
	RSVPs() RSVPRepository
}

// Store is the storage capability behind the services.
// WithinTx runs fn with repositories bound to a single transaction: either everything fn wrote
// is kept, or, when fn or the commit fails, nothing is.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repositories) error) error
}
