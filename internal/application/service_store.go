package application

import (
	"context"
	"fmt"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

// ResolveStore answers "give me the store for this id/slug" cache-first with
// database fallback. Cache population after a fallback is best effort; a
// visitor never sees a cache-layer error, only a slower response.
func (s *Service) ResolveStore(ctx context.Context, identifier string, kind ports.StoreKeyKind) (StoreResponse, error) {
	if identifier == "" {
		return StoreResponse{}, fmt.Errorf("%w: identifier is required", domain.ErrInvalidInput)
	}
	if kind != ports.StoreKeyID && kind != ports.StoreKeySlug {
		return StoreResponse{}, fmt.Errorf("%w: unknown identifier kind %q", domain.ErrInvalidInput, kind)
	}

	if store, ok := s.cachedStore(ctx, identifier, kind); ok {
		return toStoreResponse(store), nil
	}

	var (
		store domain.Store
		err   error
	)
	switch kind {
	case ports.StoreKeyID:
		store, err = s.stores.GetByID(ctx, identifier)
	default:
		store, err = s.stores.GetBySlug(ctx, identifier)
	}
	if err != nil {
		return StoreResponse{}, err
	}

	// Repopulating here also repairs dangling slug references.
	if cacheErr := s.cache.Set(ctx, store); cacheErr != nil {
		s.logger.WarnContext(ctx, "cache population failed after fallback",
			"module", "application.store",
			"operation", "resolve",
			"store_id", store.ID,
			"error", cacheErr,
		)
	}
	return toStoreResponse(store), nil
}

// cachedStore resolves the cache side only. A slug hit yields a reference
// that needs one extra cache read; a reference pointing at a missing id
// entry is treated as a miss, never surfaced.
func (s *Service) cachedStore(ctx context.Context, identifier string, kind ports.StoreKeyKind) (domain.Store, bool) {
	entry, ok := s.cache.Get(ctx, identifier, kind)
	if !ok {
		return domain.Store{}, false
	}
	if entry.Store != nil {
		return *entry.Store, true
	}
	if entry.Reference != nil && kind == ports.StoreKeySlug {
		inner, ok := s.cache.Get(ctx, entry.Reference.ID, ports.StoreKeyID)
		if ok && inner.Store != nil {
			return *inner.Store, true
		}
	}
	return domain.Store{}, false
}

func (s *Service) CreateStore(ctx context.Context, req CreateStoreRequest) (StoreResponse, error) {
	if err := domain.ValidateSlug(req.Slug); err != nil {
		return StoreResponse{}, err
	}
	if err := domain.ValidateStoreName(req.Name); err != nil {
		return StoreResponse{}, err
	}
	store, err := s.stores.Create(ctx, ports.CreateStoreParams{
		Slug:      req.Slug,
		Name:      req.Name,
		Settings:  req.Settings,
		Theme:     req.Theme,
		CreatedAt: s.nowFn(),
	})
	if err != nil {
		return StoreResponse{}, err
	}
	s.warmCache(ctx, store, "create")
	if err := s.enqueueStoreEvent(ctx, "store.created", store); err != nil {
		s.logOutboxFailure(ctx, "store.created", store.ID, err)
	}
	return toStoreResponse(store), nil
}

// UpdateStoreSettings persists the change, then invalidates both cache keys
// before reporting success, then repopulates so the next read is a hit.
// Invalidate-then-write-through: doing it the other way round lets a
// concurrent reader race stale data back into the cache.
func (s *Service) UpdateStoreSettings(ctx context.Context, storeID string, req UpdateStoreSettingsRequest) (StoreResponse, error) {
	if storeID == "" {
		return StoreResponse{}, fmt.Errorf("%w: store id is required", domain.ErrInvalidInput)
	}
	if req.Name != nil {
		if err := domain.ValidateStoreName(*req.Name); err != nil {
			return StoreResponse{}, err
		}
	}
	updated, err := s.stores.Update(ctx, ports.UpdateStoreParams{
		ID:        storeID,
		Name:      req.Name,
		Settings:  req.Settings,
		Theme:     req.Theme,
		IsActive:  req.IsActive,
		UpdatedAt: s.nowFn(),
	})
	if err != nil {
		return StoreResponse{}, err
	}

	if invErr := s.cache.Invalidate(ctx, updated.Ref()); invErr != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed after update",
			"module", "application.store",
			"operation", "update_settings",
			"store_id", updated.ID,
			"error", invErr,
		)
	}
	s.warmCache(ctx, updated, "update_settings")

	if err := s.enqueueStoreEvent(ctx, "store.updated", updated); err != nil {
		s.logOutboxFailure(ctx, "store.updated", updated.ID, err)
	}
	return toStoreResponse(updated), nil
}

// CachedStoreSlugs enumerates the slugs currently held by the cache backend.
// Administrative; no snapshot consistency.
func (s *Service) CachedStoreSlugs(ctx context.Context) ([]string, error) {
	return s.cache.ListSlugs(ctx)
}

func (s *Service) warmCache(ctx context.Context, store domain.Store, operation string) {
	if err := s.cache.Set(ctx, store); err != nil {
		s.logger.WarnContext(ctx, "cache population failed",
			"module", "application.store",
			"operation", operation,
			"store_id", store.ID,
			"error", err,
		)
	}
}
