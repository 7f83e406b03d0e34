package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

type fakeStoreRepo struct {
	mu             sync.Mutex
	byID           map[string]domain.Store
	getByIDCalls   int
	getBySlugCalls int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{byID: map[string]domain.Store{}}
}

func (r *fakeStoreRepo) Create(_ context.Context, params ports.CreateStoreParams) (domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Slug == params.Slug {
			return domain.Store{}, fmt.Errorf("%w: slug taken", domain.ErrConflict)
		}
	}
	store := domain.Store{
		ID:        uuid.NewString(),
		Slug:      params.Slug,
		Name:      params.Name,
		Settings:  params.Settings,
		Theme:     params.Theme,
		IsActive:  true,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	r.byID[store.ID] = store
	return store, nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByIDCalls++
	store, ok := r.byID[id]
	if !ok {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}
	return store, nil
}

func (r *fakeStoreRepo) GetBySlug(_ context.Context, slug string) (domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getBySlugCalls++
	for _, store := range r.byID {
		if store.Slug == slug {
			return store, nil
		}
	}
	return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, slug)
}

func (r *fakeStoreRepo) Update(_ context.Context, params ports.UpdateStoreParams) (domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.byID[params.ID]
	if !ok {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, params.ID)
	}
	if params.Name != nil {
		store.Name = *params.Name
	}
	if params.Settings != nil {
		store.Settings = *params.Settings
	}
	if params.Theme != nil {
		store.Theme = *params.Theme
	}
	if params.IsActive != nil {
		store.IsActive = *params.IsActive
	}
	store.UpdatedAt = params.UpdatedAt
	r.byID[params.ID] = store
	return store, nil
}

type fakeProductRepo struct {
	byID    map[string]domain.Product
	byStore map[string][]string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]domain.Product{}, byStore: map[string][]string{}}
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (domain.Product, error) {
	product, ok := r.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func (r *fakeProductRepo) ListByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.byID[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByStore(_ context.Context, storeID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range r.byStore[storeID] {
		if product, ok := r.byID[id]; ok {
			out = append(out, product)
		}
	}
	return out, nil
}

type fakeCommissionRepo struct {
	byPair map[string]domain.CommissionOverride
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{byPair: map[string]domain.CommissionOverride{}}
}

func pairKey(productID, affiliateID string) string {
	return productID + "|" + affiliateID
}

func (r *fakeCommissionRepo) GetActiveOverride(_ context.Context, productID, affiliateID string) (domain.CommissionOverride, bool, error) {
	override, ok := r.byPair[pairKey(productID, affiliateID)]
	if !ok || !override.IsActive {
		return domain.CommissionOverride{}, false, nil
	}
	return override, true, nil
}

func (r *fakeCommissionRepo) ListActiveOverrides(_ context.Context, productIDs []string, affiliateID string) ([]domain.CommissionOverride, error) {
	var out []domain.CommissionOverride
	for _, productID := range productIDs {
		if override, ok := r.byPair[pairKey(productID, affiliateID)]; ok && override.IsActive {
			out = append(out, override)
		}
	}
	return out, nil
}

func (r *fakeCommissionRepo) ListActiveByFilter(_ context.Context, productID, affiliateID string) ([]domain.CommissionOverride, error) {
	var out []domain.CommissionOverride
	for _, override := range r.byPair {
		if !override.IsActive {
			continue
		}
		if productID != "" && override.ProductID != productID {
			continue
		}
		if affiliateID != "" && override.AffiliateID != affiliateID {
			continue
		}
		out = append(out, override)
	}
	return out, nil
}

func (r *fakeCommissionRepo) Upsert(_ context.Context, params ports.UpsertOverrideParams) (domain.CommissionOverride, error) {
	key := pairKey(params.ProductID, params.AffiliateID)
	override, ok := r.byPair[key]
	if !ok {
		override = domain.CommissionOverride{
			ID:          uuid.NewString(),
			ProductID:   params.ProductID,
			AffiliateID: params.AffiliateID,
			CreatedAt:   params.Now,
		}
	}
	override.Commission = params.Commission
	override.IsActive = params.IsActive
	override.ExternalSync = params.ExternalSync
	override.UpdatedAt = params.Now
	r.byPair[key] = override
	return override, nil
}

func (r *fakeCommissionRepo) Deactivate(_ context.Context, productID, affiliateID string, now time.Time) error {
	key := pairKey(productID, affiliateID)
	if override, ok := r.byPair[key]; ok {
		override.IsActive = false
		override.UpdatedAt = now
		r.byPair[key] = override
	}
	return nil
}

func (r *fakeCommissionRepo) Delete(_ context.Context, productID, affiliateID string) error {
	delete(r.byPair, pairKey(productID, affiliateID))
	return nil
}

type fakeLandingRepo struct {
	byTrackingID map[string]domain.LandingPage
}

func newFakeLandingRepo() *fakeLandingRepo {
	return &fakeLandingRepo{byTrackingID: map[string]domain.LandingPage{}}
}

func (r *fakeLandingRepo) GetByTrackingID(_ context.Context, trackingID string) (domain.LandingPage, error) {
	lp, ok := r.byTrackingID[trackingID]
	if !ok {
		return domain.LandingPage{}, fmt.Errorf("%w: landing page %s", domain.ErrNotFound, trackingID)
	}
	return lp, nil
}

func (r *fakeLandingRepo) UpsertByTrackingID(_ context.Context, params ports.SyncLandingPageParams) (domain.LandingPage, error) {
	lp, ok := r.byTrackingID[params.TrackingID]
	if !ok {
		lp = domain.LandingPage{ID: uuid.NewString(), TrackingID: params.TrackingID, CreatedAt: params.Now}
	}
	lp.ProductID = params.ProductID
	lp.MercacioUserID = params.MercacioUserID
	lp.AffiliateID = params.AffiliateID
	lp.Template = params.Template
	lp.UpdatedAt = params.Now
	r.byTrackingID[params.TrackingID] = lp
	return lp, nil
}

type fakeOutbox struct {
	events []ports.OutboxEvent
}

func (o *fakeOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	o.events = append(o.events, event)
	return nil
}

func (o *fakeOutbox) FetchUnpublished(_ context.Context, _ int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (o *fakeOutbox) MarkPublished(_ context.Context, _ uuid.UUID, _ time.Time) error { return nil }

func (o *fakeOutbox) MarkFailed(_ context.Context, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}

func (o *fakeOutbox) eventTypes() []string {
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.EventType)
	}
	return out
}

// fakeCache mirrors the backend contract: full store under the id key, slug
// reference under the slug key, reads never error. failing makes every read a
// miss and every write an error.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.StoreCacheEntry
	failing bool
	gets    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]domain.StoreCacheEntry{}}
}

func cacheKey(kind ports.StoreKeyKind, identifier string) string {
	return string(kind) + ":" + identifier
}

func (c *fakeCache) Get(_ context.Context, identifier string, kind ports.StoreKeyKind) (domain.StoreCacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failing {
		return domain.StoreCacheEntry{}, false
	}
	entry, ok := c.entries[cacheKey(kind, identifier)]
	return entry, ok
}

func (c *fakeCache) Set(_ context.Context, store domain.Store) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.failing {
		return fmt.Errorf("%w: cache down", domain.ErrCacheUnavailable)
	}
	copied := store
	c.entries[cacheKey(ports.StoreKeyID, store.ID)] = domain.StoreCacheEntry{Store: &copied}
	if store.Slug != "" {
		c.entries[cacheKey(ports.StoreKeySlug, store.Slug)] = domain.StoreCacheEntry{Reference: &domain.SlugReference{
			ID:        store.ID,
			Name:      store.Name,
			UpdatedAt: store.UpdatedAt,
		}}
	}
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, ref domain.StoreRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return fmt.Errorf("%w: cache down", domain.ErrCacheUnavailable)
	}
	delete(c.entries, cacheKey(ports.StoreKeyID, ref.ID))
	if ref.Slug != "" {
		delete(c.entries, cacheKey(ports.StoreKeySlug, ref.Slug))
	}
	return nil
}

func (c *fakeCache) ListSlugs(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, fmt.Errorf("%w: cache down", domain.ErrCacheUnavailable)
	}
	var slugs []string
	for key := range c.entries {
		if rest, ok := strings.CutPrefix(key, string(ports.StoreKeySlug)+":"); ok {
			slugs = append(slugs, rest)
		}
	}
	return slugs, nil
}

// dropID simulates a dangling slug reference: the id entry expired but the
// slug pointer is still present.
func (c *fakeCache) dropID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(ports.StoreKeyID, id))
}

// dropSlug simulates the other half of a partial write: the id entry landed
// but the slug reference did not.
func (c *fakeCache) dropSlug(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(ports.StoreKeySlug, slug))
}

type fixture struct {
	svc         *Service
	stores      *fakeStoreRepo
	products    *fakeProductRepo
	commissions *fakeCommissionRepo
	landing     *fakeLandingRepo
	outbox      *fakeOutbox
	cache       *fakeCache
}

func newFixture() *fixture {
	f := &fixture{
		stores:      newFakeStoreRepo(),
		products:    newFakeProductRepo(),
		commissions: newFakeCommissionRepo(),
		landing:     newFakeLandingRepo(),
		outbox:      &fakeOutbox{},
		cache:       newFakeCache(),
	}
	f.svc = NewService(Dependencies{
		Config:       Config{ServiceName: "storefront-service-test"},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stores:       f.stores,
		Products:     f.products,
		Commissions:  f.commissions,
		LandingPages: f.landing,
		Outbox:       f.outbox,
		Cache:        f.cache,
	})
	return f
}

func (f *fixture) seedStore(slug, name string) domain.Store {
	store, err := f.stores.Create(context.Background(), ports.CreateStoreParams{
		Slug:      slug,
		Name:      name,
		Settings:  domain.StoreSettings{Currency: "EUR"},
		Theme:     "modern",
		CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		panic(err)
	}
	return store
}

func (f *fixture) seedProduct(id string, basePrice, commission string) domain.Product {
	product := domain.Product{
		ID:             id,
		Title:          "Product " + id,
		BasePrice:      mustDecimal(basePrice),
		CommissionRate: mustDecimal(commission),
		IsActive:       true,
	}
	f.products.byID[id] = product
	return product
}

func (f *fixture) attachToStore(storeID string, productIDs ...string) {
	f.products.byStore[storeID] = append(f.products.byStore[storeID], productIDs...)
}

func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}
