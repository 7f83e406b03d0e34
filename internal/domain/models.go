package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Store is a storefront record. The id is the durable primary key; the slug
// is the human-chosen URL segment and is treated as stable even though it is
// mutable in principle. The relational store owns the record; caches only
// ever hold copies.
type Store struct {
	ID        string
	Slug      string
	Name      string
	Settings  StoreSettings
	Theme     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StoreSettings is the opaque settings document attached to a store. Known
// top-level fields are lifted out; everything else (UI sections, logo sizing,
// template knobs) rides along in Extra and must round-trip losslessly.
type StoreSettings struct {
	Currency string         `json:"currency,omitempty"`
	Language string         `json:"language,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// StoreRef carries the identifiers needed to invalidate a store's cache
// entries without holding the full record.
type StoreRef struct {
	ID   string
	Slug string
}

func (s Store) Ref() StoreRef {
	return StoreRef{ID: s.ID, Slug: s.Slug}
}

// SlugReference is the lightweight pointer cached under a store's slug key.
// It never holds the full store payload; resolving by slug always takes a
// second lookup by id.
type SlugReference struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// StoreCacheEntry is what a cache backend hands back for a key: either a full
// store (id keys) or a slug reference (slug keys). Exactly one field is set.
type StoreCacheEntry struct {
	Store     *Store
	Reference *SlugReference
}

type Product struct {
	ID             string
	Title          string
	Description    string
	BasePrice      decimal.Decimal
	CommissionRate decimal.Decimal
	VATRate        *decimal.Decimal
	ImageURL       string
	ThumbnailURL   string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CommissionOverride replaces a product's default commission for one
// affiliate. Rows are keyed by the unique (ProductID, AffiliateID) pair.
// Inactive rows are soft-deletes and must be ignored by resolution.
type CommissionOverride struct {
	ID           string
	ProductID    string
	AffiliateID  string
	Commission   decimal.Decimal
	IsActive     bool
	ExternalSync bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type LandingPage struct {
	ID             string
	TrackingID     string
	ProductID      string
	MercacioUserID string
	AffiliateID    string
	Template       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveAffiliateID returns the affiliate identity for commission lookups.
// Older landing pages carry it under MercacioUserID, newer ones under
// AffiliateID; AffiliateID wins when both are set. Empty means no affiliate.
func (lp LandingPage) EffectiveAffiliateID() string {
	if lp.AffiliateID != "" {
		return lp.AffiliateID
	}
	return lp.MercacioUserID
}

// StoreProduct links a product into a store's catalog.
type StoreProduct struct {
	StoreID   string
	ProductID string
	Featured  bool
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
}

// TotalPrice is the pricing assembler: base price plus the effective
// commission. VAT fields are pass-through and not computed here.
func TotalPrice(basePrice, effectiveCommission decimal.Decimal) decimal.Decimal {
	return basePrice.Add(effectiveCommission)
}
