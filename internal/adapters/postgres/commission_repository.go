package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

type commissionRepository struct {
	db *gorm.DB
}

func (r *commissionRepository) GetActiveOverride(ctx context.Context, productID, affiliateID string) (domain.CommissionOverride, bool, error) {
	var rec commissionOverrideModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND affiliate_id = ? AND is_active = true", productID, affiliateID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommissionOverride{}, false, nil
		}
		return domain.CommissionOverride{}, false, err
	}
	return toDomainOverride(rec), true, nil
}

func (r *commissionRepository) ListActiveOverrides(ctx context.Context, productIDs []string, affiliateID string) ([]domain.CommissionOverride, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var rows []commissionOverrideModel
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ? AND is_active = true AND product_id IN ?", affiliateID, productIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommissionOverride, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainOverride(row))
	}
	return out, nil
}

func (r *commissionRepository) ListActiveByFilter(ctx context.Context, productID, affiliateID string) ([]domain.CommissionOverride, error) {
	q := r.db.WithContext(ctx).Where("is_active = true")
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	if affiliateID != "" {
		q = q.Where("affiliate_id = ?", affiliateID)
	}
	var rows []commissionOverrideModel
	if err := q.Order("updated_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.CommissionOverride, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainOverride(row))
	}
	return out, nil
}

func (r *commissionRepository) Upsert(ctx context.Context, params ports.UpsertOverrideParams) (domain.CommissionOverride, error) {
	rec := commissionOverrideModel{
		ID:           uuid.NewString(),
		ProductID:    params.ProductID,
		AffiliateID:  params.AffiliateID,
		Commission:   params.Commission,
		IsActive:     params.IsActive,
		ExternalSync: params.ExternalSync,
		CreatedAt:    params.Now,
		UpdatedAt:    params.Now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "affiliate_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"commission":    params.Commission,
			"is_active":     params.IsActive,
			"external_sync": params.ExternalSync,
			"updated_at":    params.Now,
		}),
	}).Create(&rec).Error
	if err != nil {
		return domain.CommissionOverride{}, err
	}

	var stored commissionOverrideModel
	if err := r.db.WithContext(ctx).Where("product_id = ? AND affiliate_id = ?", params.ProductID, params.AffiliateID).Take(&stored).Error; err != nil {
		return domain.CommissionOverride{}, err
	}
	return toDomainOverride(stored), nil
}

func (r *commissionRepository) Deactivate(ctx context.Context, productID, affiliateID string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&commissionOverrideModel{}).
		Where("product_id = ? AND affiliate_id = ?", productID, affiliateID).
		Updates(map[string]any{"is_active": false, "updated_at": now}).Error
}

func (r *commissionRepository) Delete(ctx context.Context, productID, affiliateID string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND affiliate_id = ?", productID, affiliateID).
		Delete(&commissionOverrideModel{}).Error
}
