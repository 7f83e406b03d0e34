package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

type storeEventData struct {
	StoreID   string `json:"store_id"`
	Slug      string `json:"slug,omitempty"`
	Name      string `json:"name,omitempty"`
	IsActive  bool   `json:"is_active"`
	UpdatedAt string `json:"updated_at"`
}

type commissionEventData struct {
	ProductID   string `json:"product_id"`
	AffiliateID string `json:"affiliate_id"`
	Commission  string `json:"commission,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}

func (s *Service) enqueueStoreEvent(ctx context.Context, eventType string, store domain.Store) error {
	occurredAt := s.nowFn()
	data := storeEventData{
		StoreID:   store.ID,
		Slug:      store.Slug,
		Name:      store.Name,
		IsActive:  store.IsActive,
		UpdatedAt: occurredAt.Format(time.RFC3339),
	}
	return s.enqueueEvent(ctx, eventType, store.ID, "data.store_id", data, occurredAt)
}

func (s *Service) enqueueCommissionEvent(ctx context.Context, eventType, productID, affiliateID string, commission *decimal.Decimal) error {
	occurredAt := s.nowFn()
	data := commissionEventData{
		ProductID:   productID,
		AffiliateID: affiliateID,
		UpdatedAt:   occurredAt.Format(time.RFC3339),
	}
	if commission != nil {
		data.Commission = commission.String()
	}
	return s.enqueueEvent(ctx, eventType, productID, "data.product_id", data, occurredAt)
}

func (s *Service) enqueueEvent(ctx context.Context, eventType, partitionKey, partitionKeyPath string, data any, occurredAt time.Time) error {
	envelope := map[string]any{
		"event_id":           uuid.NewString(),
		"event_type":         eventType,
		"occurred_at":        occurredAt.Format(time.RFC3339),
		"source_service":     s.cfg.ServiceName,
		"schema_version":     "1.0",
		"partition_key_path": partitionKeyPath,
		"partition_key":      partitionKey,
		"data":               data,
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:          uuid.New(),
		EventType:        eventType,
		PartitionKey:     partitionKey,
		PartitionKeyPath: partitionKeyPath,
		Payload:          payload,
		OccurredAt:       occurredAt,
		SchemaVersion:    "1.0",
	})
}

func (s *Service) logOutboxFailure(ctx context.Context, eventType, key string, err error) {
	s.logger.WarnContext(ctx, "outbox enqueue failed",
		"module", "application.events",
		"operation", "enqueue",
		"outcome", "failure",
		"event_type", eventType,
		"partition_key", key,
		"error", err,
	)
}
