package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type storeModel struct {
	ID        string     `gorm:"column:id;primaryKey"`
	Slug      string     `gorm:"column:slug;uniqueIndex"`
	Name      string     `gorm:"column:name"`
	Settings  string     `gorm:"column:settings;type:jsonb"`
	Theme     string     `gorm:"column:theme"`
	IsActive  bool       `gorm:"column:is_active"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (storeModel) TableName() string { return "stores" }

type productModel struct {
	ID             string           `gorm:"column:id;primaryKey"`
	Title          string           `gorm:"column:title"`
	Description    string           `gorm:"column:description"`
	BasePrice      decimal.Decimal  `gorm:"column:base_price;type:decimal(12,2)"`
	CommissionRate decimal.Decimal  `gorm:"column:commission_rate;type:decimal(12,2)"`
	VATRate        *decimal.Decimal `gorm:"column:vat_rate;type:decimal(5,2)"`
	ImageURL       string           `gorm:"column:image_url"`
	ThumbnailURL   string           `gorm:"column:thumbnail_url"`
	IsActive       bool             `gorm:"column:is_active"`
	CreatedAt      time.Time        `gorm:"column:created_at"`
	UpdatedAt      time.Time        `gorm:"column:updated_at"`
}

func (productModel) TableName() string { return "products" }

type commissionOverrideModel struct {
	ID           string          `gorm:"column:id;primaryKey"`
	ProductID    string          `gorm:"column:product_id;uniqueIndex:idx_commission_pair"`
	AffiliateID  string          `gorm:"column:affiliate_id;uniqueIndex:idx_commission_pair"`
	Commission   decimal.Decimal `gorm:"column:commission;type:decimal(12,2)"`
	IsActive     bool            `gorm:"column:is_active"`
	ExternalSync bool            `gorm:"column:external_sync"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (commissionOverrideModel) TableName() string { return "affiliate_product_commissions" }

type landingPageModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	TrackingID     string    `gorm:"column:tracking_id;uniqueIndex"`
	ProductID      string    `gorm:"column:product_id"`
	MercacioUserID string    `gorm:"column:mercacio_user_id"`
	AffiliateID    string    `gorm:"column:affiliate_id"`
	Template       string    `gorm:"column:template"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (landingPageModel) TableName() string { return "landing_pages" }

type storeProductModel struct {
	StoreID   string    `gorm:"column:store_id;primaryKey"`
	ProductID string    `gorm:"column:product_id;primaryKey"`
	Featured  bool      `gorm:"column:featured"`
	SortOrder int       `gorm:"column:sort_order"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (storeProductModel) TableName() string { return "store_products" }

type storefrontOutboxModel struct {
	OutboxID         uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType        string     `gorm:"column:event_type"`
	PartitionKey     string     `gorm:"column:partition_key"`
	PartitionKeyPath string     `gorm:"column:partition_key_path"`
	Payload          string     `gorm:"column:payload;type:jsonb"`
	SchemaVersion    string     `gorm:"column:schema_version"`
	TraceID          string     `gorm:"column:trace_id"`
	RetryCount       int        `gorm:"column:retry_count"`
	PublishedAt      *time.Time `gorm:"column:published_at"`
	LastError        string     `gorm:"column:last_error"`
	LastErrorAt      *time.Time `gorm:"column:last_error_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	FirstSeenAt      time.Time  `gorm:"column:first_seen_at"`
}

func (storefrontOutboxModel) TableName() string { return "storefront_outbox" }
