package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercacio/storefront-service/internal/domain"
)

type Config struct {
	ServiceName string
}

type CreateStoreRequest struct {
	Slug     string               `json:"slug"`
	Name     string               `json:"name"`
	Theme    string               `json:"theme,omitempty"`
	Settings domain.StoreSettings `json:"settings,omitempty"`
}

type UpdateStoreSettingsRequest struct {
	Name     *string               `json:"name,omitempty"`
	Theme    *string               `json:"theme,omitempty"`
	Settings *domain.StoreSettings `json:"settings,omitempty"`
	IsActive *bool                 `json:"is_active,omitempty"`
}

type StoreResponse struct {
	ID        string               `json:"id"`
	Slug      string               `json:"slug"`
	Name      string               `json:"name"`
	Settings  domain.StoreSettings `json:"settings"`
	Theme     string               `json:"theme"`
	IsActive  bool                 `json:"is_active"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type SetCommissionOverrideRequest struct {
	ProductID    string           `json:"product_id"`
	AffiliateID  string           `json:"affiliate_id"`
	Commission   *decimal.Decimal `json:"commission,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	ExternalSync bool             `json:"-"`
}

type CommissionOverrideResponse struct {
	ProductID    string          `json:"product_id"`
	AffiliateID  string          `json:"affiliate_id"`
	Commission   decimal.Decimal `json:"commission"`
	IsActive     bool            `json:"is_active"`
	ExternalSync bool            `json:"external_sync"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CatalogProductResponse struct {
	ProductID    string          `json:"product_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	ThumbnailURL string          `json:"thumbnail_url,omitempty"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Commission   decimal.Decimal `json:"commission"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type SyncLandingPageRequest struct {
	TrackingID     string `json:"tracking_id"`
	ProductID      string `json:"product_id"`
	MercacioUserID string `json:"mercacio_user_id,omitempty"`
	AffiliateID    string `json:"affiliate_id,omitempty"`
	Template       string `json:"template,omitempty"`
}

type LandingPageResponse struct {
	TrackingID  string                 `json:"tracking_id"`
	Template    string                 `json:"template"`
	AffiliateID string                 `json:"affiliate_id,omitempty"`
	Product     CatalogProductResponse `json:"product"`
}

func toStoreResponse(store domain.Store) StoreResponse {
	return StoreResponse{
		ID:        store.ID,
		Slug:      store.Slug,
		Name:      store.Name,
		Settings:  store.Settings,
		Theme:     store.Theme,
		IsActive:  store.IsActive,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}
}

func toOverrideResponse(o domain.CommissionOverride) CommissionOverrideResponse {
	return CommissionOverrideResponse{
		ProductID:    o.ProductID,
		AffiliateID:  o.AffiliateID,
		Commission:   o.Commission,
		IsActive:     o.IsActive,
		ExternalSync: o.ExternalSync,
		UpdatedAt:    o.UpdatedAt,
	}
}
