package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	quoteDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/quote"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/domain"

	"github.com/google/uuid"
)

// janitorInterval is how often fully expired entries are reclaimed. The
// janitor only frees memory; expiry itself is checked on every read.
const janitorInterval = 1 * time.Minute

// MemoryQuoteCache is an in-process quote cache backed by go-cache. Safe for
// concurrent use; entry lifetimes are derived from each quote's own expiry.
type MemoryQuoteCache struct {
	store *gocache.Cache
}

// NewMemoryQuoteCache creates an empty quote cache.
func NewMemoryQuoteCache() *MemoryQuoteCache {
	return &MemoryQuoteCache{
		store: gocache.New(gocache.NoExpiration, janitorInterval),
	}
}

// Save stores the quote until its expiry timestamp. A quote that is already
// expired is dropped silently: it would be unloadable anyway, and storing it
// with no TTL would resurrect it.
func (c *MemoryQuoteCache) Save(_ context.Context, q *quoteDomain.Quote) error {
	ttl := time.Until(q.ExpiresAt())
	if ttl <= 0 {
		return nil
	}
	c.store.Set(q.ID().String(), q, ttl)
	return nil
}

// Load returns the quote if present and not expired. Missing and expired
// entries are indistinguishable: both yield the same not-found error.
// Expiry is re-checked against the quote's own timestamp, not just the
// store's TTL: a quote is valid only strictly before its expiry instant.
func (c *MemoryQuoteCache) Load(_ context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	v, found := c.store.Get(id.String())
	if !found {
		return nil, domain.NewNotFoundError("Quote", id.String())
	}
	q := v.(*quoteDomain.Quote)
	if q.IsExpired(time.Now().UTC()) {
		return nil, domain.NewNotFoundError("Quote", id.String())
	}
	return q, nil
}
