package application

import (
	"context"
	"fmt"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

// ResolveLandingPage returns a landing page with its product priced for the
// page's affiliate. The affiliate identity historically lives under two
// field names; domain.LandingPage.EffectiveAffiliateID normalizes that once.
func (s *Service) ResolveLandingPage(ctx context.Context, trackingID string) (LandingPageResponse, error) {
	if err := domain.ValidateTrackingID(trackingID); err != nil {
		return LandingPageResponse{}, err
	}
	lp, err := s.landingPages.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return LandingPageResponse{}, err
	}
	product, err := s.products.GetByID(ctx, lp.ProductID)
	if err != nil {
		return LandingPageResponse{}, err
	}

	affiliateID := lp.EffectiveAffiliateID()
	commission, err := s.effectiveCommissionFor(ctx, product, affiliateID)
	if err != nil {
		return LandingPageResponse{}, err
	}
	return LandingPageResponse{
		TrackingID:  lp.TrackingID,
		Template:    lp.Template,
		AffiliateID: affiliateID,
		Product:     toCatalogProduct(product, commission),
	}, nil
}

// SyncLandingPage upserts a landing page by tracking id on behalf of the
// external sync API.
func (s *Service) SyncLandingPage(ctx context.Context, req SyncLandingPageRequest) (LandingPageResponse, error) {
	if err := domain.ValidateTrackingID(req.TrackingID); err != nil {
		return LandingPageResponse{}, err
	}
	if req.ProductID == "" {
		return LandingPageResponse{}, fmt.Errorf("%w: product_id is required", domain.ErrInvalidInput)
	}
	if req.MercacioUserID == "" && req.AffiliateID == "" {
		return LandingPageResponse{}, fmt.Errorf("%w: affiliate_id or mercacio_user_id is required", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, req.ProductID); err != nil {
		return LandingPageResponse{}, err
	}

	template := req.Template
	if template == "" {
		template = "modern"
	}
	if _, err := s.landingPages.UpsertByTrackingID(ctx, ports.SyncLandingPageParams{
		TrackingID:     req.TrackingID,
		ProductID:      req.ProductID,
		MercacioUserID: req.MercacioUserID,
		AffiliateID:    req.AffiliateID,
		Template:       template,
		Now:            s.nowFn(),
	}); err != nil {
		return LandingPageResponse{}, err
	}
	return s.ResolveLandingPage(ctx, req.TrackingID)
}
