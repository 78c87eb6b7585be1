package quote

import (
	"context"

	"github.com/google/uuid"
)

// Cache stores quotes for the duration of their validity window.
//
// Load must report absence identically for quotes that never existed and
// quotes that have expired; callers cannot distinguish the two. Expiry is
// decided at read time; a background sweep may reclaim storage but is
// never relied on for correctness.
type Cache interface {
	// Save stores the quote keyed by its identifier until its expiry.
	Save(ctx context.Context, q *Quote) error

	// Load returns the quote if present and not expired.
	Load(ctx context.Context, id uuid.UUID) (*Quote, error)
}
