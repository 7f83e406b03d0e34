package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mercacio/storefront-service/internal/domain"
)

const (
	entryTypeReference = "reference"
	cacheSchemaVersion = "1.0"
)

// cacheMeta is bookkeeping attached to every cached payload so entries stay
// human-inspectable (when it was written and by which envelope version).
type cacheMeta struct {
	CachedAt time.Time `json:"cachedAt"`
	Version  string    `json:"version"`
}

// storeEnvelope is the id-keyed payload: the full store plus cache metadata.
// It carries no _type discriminator; only slug references do.
type storeEnvelope struct {
	ID        string               `json:"id"`
	Slug      string               `json:"slug,omitempty"`
	Name      string               `json:"name"`
	Settings  domain.StoreSettings `json:"settings"`
	Theme     string               `json:"theme,omitempty"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Cache     cacheMeta            `json:"_cache"`
}

// referenceEnvelope is the slug-keyed payload: a pointer to the id entry,
// never the full store.
type referenceEnvelope struct {
	Type      string    `json:"_type"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func encodeStore(store domain.Store, now time.Time) ([]byte, error) {
	return json.Marshal(storeEnvelope{
		ID:        store.ID,
		Slug:      store.Slug,
		Name:      store.Name,
		Settings:  store.Settings,
		Theme:     store.Theme,
		IsActive:  store.IsActive,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
		Cache:     cacheMeta{CachedAt: now, Version: cacheSchemaVersion},
	})
}

func encodeReference(store domain.Store, now time.Time) ([]byte, error) {
	return json.Marshal(referenceEnvelope{
		Type:      entryTypeReference,
		ID:        store.ID,
		Name:      store.Name,
		UpdatedAt: now,
	})
}

func decodeEntry(raw []byte) (domain.StoreCacheEntry, error) {
	var probe struct {
		Type string `json:"_type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.StoreCacheEntry{}, fmt.Errorf("decode cache entry: %w", err)
	}
	if probe.Type == entryTypeReference {
		var env referenceEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return domain.StoreCacheEntry{}, fmt.Errorf("decode slug reference: %w", err)
		}
		return domain.StoreCacheEntry{Reference: &domain.SlugReference{
			ID:        env.ID,
			Name:      env.Name,
			UpdatedAt: env.UpdatedAt,
		}}, nil
	}

	var env storeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.StoreCacheEntry{}, fmt.Errorf("decode store entry: %w", err)
	}
	return domain.StoreCacheEntry{Store: &domain.Store{
		ID:        env.ID,
		Slug:      env.Slug,
		Name:      env.Name,
		Settings:  env.Settings,
		Theme:     env.Theme,
		IsActive:  env.IsActive,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
	}}, nil
}
