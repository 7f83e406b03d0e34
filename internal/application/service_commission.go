package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

// EffectiveCommission resolves the commission amount applied for one
// (product, affiliate) pair: the affiliate's active override if one exists,
// the product default otherwise. An empty affiliateID means no affiliate.
// Both amounts are absolute; there is no percentage math.
func (s *Service) EffectiveCommission(ctx context.Context, productID, affiliateID string) (decimal.Decimal, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return s.effectiveCommissionFor(ctx, product, affiliateID)
}

func (s *Service) effectiveCommissionFor(ctx context.Context, product domain.Product, affiliateID string) (decimal.Decimal, error) {
	if affiliateID == "" {
		return product.CommissionRate, nil
	}
	// Row absent and row inactive both land here as found=false; the two
	// deletion styles are indistinguishable on purpose.
	override, found, err := s.commissions.GetActiveOverride(ctx, product.ID, affiliateID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if found {
		return override.Commission, nil
	}
	return product.CommissionRate, nil
}

// EffectiveCommissions is the batch variant used by catalog listings: one
// filtered query for all of the affiliate's active overrides across the
// given products, defaults for the rest.
func (s *Service) EffectiveCommissions(ctx context.Context, productIDs []string, affiliateID string) (map[string]decimal.Decimal, error) {
	products, err := s.products.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	return s.effectiveCommissionsFor(ctx, products, affiliateID)
}

func (s *Service) effectiveCommissionsFor(ctx context.Context, products []domain.Product, affiliateID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		out[p.ID] = p.CommissionRate
		ids = append(ids, p.ID)
	}
	if affiliateID == "" || len(ids) == 0 {
		return out, nil
	}
	overrides, err := s.commissions.ListActiveOverrides(ctx, ids, affiliateID)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		if _, ok := out[o.ProductID]; ok {
			out[o.ProductID] = o.Commission
		}
	}
	return out, nil
}

// SetCommissionOverride upserts on the (product, affiliate) pair key,
// reactivating a previously soft-deleted row. A nil Commission means
// "revert to default": the override row is removed outright, matching the
// external sync API's contract.
func (s *Service) SetCommissionOverride(ctx context.Context, req SetCommissionOverrideRequest) (*CommissionOverrideResponse, error) {
	if req.ProductID == "" || req.AffiliateID == "" {
		return nil, fmt.Errorf("%w: product_id and affiliate_id are required", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	if req.Commission == nil {
		if err := s.commissions.Delete(ctx, req.ProductID, req.AffiliateID); err != nil {
			return nil, err
		}
		if err := s.enqueueCommissionEvent(ctx, "commission.removed", req.ProductID, req.AffiliateID, nil); err != nil {
			s.logOutboxFailure(ctx, "commission.removed", req.ProductID, err)
		}
		return nil, nil
	}

	if err := domain.ValidateCommissionAmount(*req.Commission); err != nil {
		return nil, err
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	override, err := s.commissions.Upsert(ctx, ports.UpsertOverrideParams{
		ProductID:    req.ProductID,
		AffiliateID:  req.AffiliateID,
		Commission:   *req.Commission,
		IsActive:     isActive,
		ExternalSync: req.ExternalSync,
		Now:          s.nowFn(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.enqueueCommissionEvent(ctx, "commission.updated", override.ProductID, override.AffiliateID, &override.Commission); err != nil {
		s.logOutboxFailure(ctx, "commission.updated", override.ProductID, err)
	}
	resp := toOverrideResponse(override)
	return &resp, nil
}

// DeactivateCommissionOverride soft-deletes the override. Resolution treats
// it exactly like a removed row.
func (s *Service) DeactivateCommissionOverride(ctx context.Context, productID, affiliateID string) error {
	if productID == "" || affiliateID == "" {
		return fmt.Errorf("%w: product_id and affiliate_id are required", domain.ErrInvalidInput)
	}
	if err := s.commissions.Deactivate(ctx, productID, affiliateID, s.nowFn()); err != nil {
		return err
	}
	if err := s.enqueueCommissionEvent(ctx, "commission.removed", productID, affiliateID, nil); err != nil {
		s.logOutboxFailure(ctx, "commission.removed", productID, err)
	}
	return nil
}

func (s *Service) ListCommissionOverrides(ctx context.Context, productID, affiliateID string) ([]CommissionOverrideResponse, error) {
	overrides, err := s.commissions.ListActiveByFilter(ctx, productID, affiliateID)
	if err != nil {
		return nil, err
	}
	out := make([]CommissionOverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		out = append(out, toOverrideResponse(o))
	}
	return out, nil
}

// StoreCatalog lists a store's products priced for the given affiliate:
// effective commission via the batch resolver, total = base + commission.
func (s *Service) StoreCatalog(ctx context.Context, storeID, affiliateID string) ([]CatalogProductResponse, error) {
	if _, err := s.ResolveStore(ctx, storeID, ports.StoreKeyID); err != nil {
		return nil, err
	}
	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	commissions, err := s.effectiveCommissionsFor(ctx, products, affiliateID)
	if err != nil {
		return nil, err
	}
	out := make([]CatalogProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toCatalogProduct(p, commissions[p.ID]))
	}
	return out, nil
}

func toCatalogProduct(p domain.Product, commission decimal.Decimal) CatalogProductResponse {
	return CatalogProductResponse{
		ProductID:    p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		BasePrice:    p.BasePrice,
		Commission:   commission,
		TotalPrice:   domain.TotalPrice(p.BasePrice, commission),
	}
}
