package postgres

import (
	"encoding/json"

	"github.com/mercacio/storefront-service/internal/domain"
)

func toDomainStore(rec storeModel) domain.Store {
	var settings domain.StoreSettings
	if rec.Settings != "" {
		// A malformed settings document degrades to empty settings rather
		// than failing the read; the column is written by us.
		_ = json.Unmarshal([]byte(rec.Settings), &settings)
	}
	return domain.Store{
		ID:        rec.ID,
		Slug:      rec.Slug,
		Name:      rec.Name,
		Settings:  settings,
		Theme:     rec.Theme,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func settingsToJSON(settings domain.StoreSettings) (string, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func toDomainProduct(rec productModel) domain.Product {
	return domain.Product{
		ID:             rec.ID,
		Title:          rec.Title,
		Description:    rec.Description,
		BasePrice:      rec.BasePrice,
		CommissionRate: rec.CommissionRate,
		VATRate:        rec.VATRate,
		ImageURL:       rec.ImageURL,
		ThumbnailURL:   rec.ThumbnailURL,
		IsActive:       rec.IsActive,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}

func toDomainOverride(rec commissionOverrideModel) domain.CommissionOverride {
	return domain.CommissionOverride{
		ID:           rec.ID,
		ProductID:    rec.ProductID,
		AffiliateID:  rec.AffiliateID,
		Commission:   rec.Commission,
		IsActive:     rec.IsActive,
		ExternalSync: rec.ExternalSync,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toDomainLandingPage(rec landingPageModel) domain.LandingPage {
	return domain.LandingPage{
		ID:             rec.ID,
		TrackingID:     rec.TrackingID,
		ProductID:      rec.ProductID,
		MercacioUserID: rec.MercacioUserID,
		AffiliateID:    rec.AffiliateID,
		Template:       rec.Template,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
}
