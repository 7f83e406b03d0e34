package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

type landingPageRepository struct {
	db *gorm.DB
}

func (r *landingPageRepository) GetByTrackingID(ctx context.Context, trackingID string) (domain.LandingPage, error) {
	var rec landingPageModel
	if err := r.db.WithContext(ctx).Where("tracking_id = ?", trackingID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LandingPage{}, domain.ErrNotFound
		}
		return domain.LandingPage{}, err
	}
	return toDomainLandingPage(rec), nil
}

func (r *landingPageRepository) UpsertByTrackingID(ctx context.Context, params ports.SyncLandingPageParams) (domain.LandingPage, error) {
	rec := landingPageModel{
		ID:             uuid.NewString(),
		TrackingID:     params.TrackingID,
		ProductID:      params.ProductID,
		MercacioUserID: params.MercacioUserID,
		AffiliateID:    params.AffiliateID,
		Template:       params.Template,
		CreatedAt:      params.Now,
		UpdatedAt:      params.Now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tracking_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"product_id":       params.ProductID,
			"mercacio_user_id": params.MercacioUserID,
			"affiliate_id":     params.AffiliateID,
			"template":         params.Template,
			"updated_at":       params.Now,
		}),
	}).Create(&rec).Error
	if err != nil {
		return domain.LandingPage{}, err
	}
	return r.GetByTrackingID(ctx, params.TrackingID)
}
