package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercacio/storefront-service/internal/domain"
)

type CreateStoreParams struct {
	Slug      string
	Name      string
	Settings  domain.StoreSettings
	Theme     string
	CreatedAt time.Time
}

type UpdateStoreParams struct {
	ID        string
	Name      *string
	Settings  *domain.StoreSettings
	Theme     *string
	IsActive  *bool
	UpdatedAt time.Time
}

type StoreRepository interface {
	Create(ctx context.Context, params CreateStoreParams) (domain.Store, error)
	GetByID(ctx context.Context, id string) (domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (domain.Store, error)
	Update(ctx context.Context, params UpdateStoreParams) (domain.Store, error)
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)
}

type UpsertOverrideParams struct {
	ProductID    string
	AffiliateID  string
	Commission   decimal.Decimal
	IsActive     bool
	ExternalSync bool
	Now          time.Time
}

type CommissionRepository interface {
	// GetActiveOverride returns the active override for the exact
	// (productID, affiliateID) pair. A missing row and an inactive row are
	// both reported as found=false.
	GetActiveOverride(ctx context.Context, productID, affiliateID string) (domain.CommissionOverride, bool, error)

	// ListActiveOverrides returns all active overrides for affiliateID
	// across the given product ids in a single query.
	ListActiveOverrides(ctx context.Context, productIDs []string, affiliateID string) ([]domain.CommissionOverride, error)

	ListActiveByFilter(ctx context.Context, productID, affiliateID string) ([]domain.CommissionOverride, error)

	Upsert(ctx context.Context, params UpsertOverrideParams) (domain.CommissionOverride, error)

	// Deactivate soft-deletes the override; Delete removes the row. Both
	// revert resolution to the product default and both are idempotent.
	Deactivate(ctx context.Context, productID, affiliateID string, now time.Time) error
	Delete(ctx context.Context, productID, affiliateID string) error
}

type SyncLandingPageParams struct {
	TrackingID     string
	ProductID      string
	MercacioUserID string
	AffiliateID    string
	Template       string
	Now            time.Time
}

type LandingPageRepository interface {
	GetByTrackingID(ctx context.Context, trackingID string) (domain.LandingPage, error)
	UpsertByTrackingID(ctx context.Context, params SyncLandingPageParams) (domain.LandingPage, error)
}

type OutboxEvent struct {
	EventID          uuid.UUID
	EventType        string
	PartitionKey     string
	PartitionKeyPath string
	Payload          []byte
	OccurredAt       time.Time
	SchemaVersion    string
	TraceID          string
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
