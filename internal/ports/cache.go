package ports

import (
	"context"

	"github.com/mercacio/storefront-service/internal/domain"
)

// StoreKeyKind selects which identifier space a cache lookup uses.
type StoreKeyKind string

const (
	StoreKeyID   StoreKeyKind = "id"
	StoreKeySlug StoreKeyKind = "slug"
)

// StoreCache is the key/value surface both cache backends satisfy. The cache
// is never the source of truth: Get must not fail on a missing key or a
// transient backend error, it reports not-found and the caller falls back to
// the relational store. Set and Invalidate errors are advisory only.
type StoreCache interface {
	// Get returns the entry under (identifier, kind). For slug keys the
	// entry is a SlugReference; for id keys it is the full store.
	Get(ctx context.Context, identifier string, kind StoreKeyKind) (domain.StoreCacheEntry, bool)

	// Set writes the id entry and, when the store has a slug, the
	// slug-reference entry. Both writes are attempted even if one fails.
	Set(ctx context.Context, store domain.Store) error

	// Invalidate removes the id entry and, when a slug is known, the slug
	// entry. Invalidating an absent entry is not an error.
	Invalidate(ctx context.Context, ref domain.StoreRef) error

	// ListSlugs enumerates the slugs currently cached. No snapshot
	// consistency: it may race with concurrent writes.
	ListSlugs(ctx context.Context) ([]string, error)
}
