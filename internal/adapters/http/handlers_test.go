package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mercacio/storefront-service/internal/application"
	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

const testAPIKey = "test-key"

type stubStores struct {
	store domain.Store
}

func (s *stubStores) Create(_ context.Context, params ports.CreateStoreParams) (domain.Store, error) {
	return domain.Store{ID: "store-new", Slug: params.Slug, Name: params.Name, IsActive: true}, nil
}

func (s *stubStores) GetByID(_ context.Context, id string) (domain.Store, error) {
	if id != s.store.ID {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, id)
	}
	return s.store, nil
}

func (s *stubStores) GetBySlug(_ context.Context, slug string) (domain.Store, error) {
	if slug != s.store.Slug {
		return domain.Store{}, fmt.Errorf("%w: store %s", domain.ErrNotFound, slug)
	}
	return s.store, nil
}

func (s *stubStores) Update(_ context.Context, params ports.UpdateStoreParams) (domain.Store, error) {
	updated := s.store
	if params.Name != nil {
		updated.Name = *params.Name
	}
	return updated, nil
}

type stubProducts struct{}

func (stubProducts) GetByID(_ context.Context, id string) (domain.Product, error) {
	return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (stubProducts) ListByIDs(context.Context, []string) ([]domain.Product, error) { return nil, nil }

func (stubProducts) ListByStore(context.Context, string) ([]domain.Product, error) { return nil, nil }

type stubCommissions struct{}

func (stubCommissions) GetActiveOverride(context.Context, string, string) (domain.CommissionOverride, bool, error) {
	return domain.CommissionOverride{}, false, nil
}

func (stubCommissions) ListActiveOverrides(context.Context, []string, string) ([]domain.CommissionOverride, error) {
	return nil, nil
}

func (stubCommissions) ListActiveByFilter(context.Context, string, string) ([]domain.CommissionOverride, error) {
	return nil, nil
}

func (stubCommissions) Upsert(_ context.Context, params ports.UpsertOverrideParams) (domain.CommissionOverride, error) {
	return domain.CommissionOverride{
		ProductID:   params.ProductID,
		AffiliateID: params.AffiliateID,
		Commission:  params.Commission,
		IsActive:    params.IsActive,
	}, nil
}

func (stubCommissions) Deactivate(context.Context, string, string, time.Time) error { return nil }

func (stubCommissions) Delete(context.Context, string, string) error { return nil }

type stubLanding struct{}

func (stubLanding) GetByTrackingID(_ context.Context, trackingID string) (domain.LandingPage, error) {
	return domain.LandingPage{}, fmt.Errorf("%w: landing page %s", domain.ErrNotFound, trackingID)
}

func (stubLanding) UpsertByTrackingID(_ context.Context, params ports.SyncLandingPageParams) (domain.LandingPage, error) {
	return domain.LandingPage{TrackingID: params.TrackingID, ProductID: params.ProductID}, nil
}

type stubOutbox struct{}

func (stubOutbox) Enqueue(context.Context, ports.OutboxEvent) error { return nil }

func (stubOutbox) FetchUnpublished(context.Context, int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (stubOutbox) MarkPublished(context.Context, uuid.UUID, time.Time) error { return nil }

func (stubOutbox) MarkFailed(context.Context, uuid.UUID, string, time.Time) error { return nil }

type stubCache struct{}

func (stubCache) Get(context.Context, string, ports.StoreKeyKind) (domain.StoreCacheEntry, bool) {
	return domain.StoreCacheEntry{}, false
}

func (stubCache) Set(context.Context, domain.Store) error { return nil }

func (stubCache) Invalidate(context.Context, domain.StoreRef) error { return nil }

func (stubCache) ListSlugs(context.Context) ([]string, error) { return nil, nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(application.Dependencies{
		Logger: logger,
		Stores: &stubStores{store: domain.Store{
			ID: "store-1", Slug: "acme-shop", Name: "Acme Shop", IsActive: true,
		}},
		Products:     stubProducts{},
		Commissions:  stubCommissions{},
		LandingPages: stubLanding{},
		Outbox:       stubOutbox{},
		Cache:        stubCache{},
	})
	server := httptest.NewServer(NewRouter(NewHandler(svc), logger, testAPIKey))
	t.Cleanup(server.Close)
	return server
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

func TestResolveStoreBySlugAndID(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/v1/stores/acme-shop")
	if err != nil {
		t.Fatalf("GET by slug: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("by slug = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	data, _ := body["data"].(map[string]any)
	if data["slug"] != "acme-shop" {
		t.Fatalf("unexpected payload: %v", body)
	}

	resp, err = http.Get(server.URL + "/v1/stores/store-1?by=id")
	if err != nil {
		t.Fatalf("GET by id: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("by id = %d", resp.StatusCode)
	}
}

func TestResolveStoreNotFound(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	resp, err := http.Get(server.URL + "/v1/stores/no-such-store")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestAdminEndpointsRequireAPIKey(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/v1/stores/", "application/json", strings.NewReader(`{"slug":"new-store","name":"New Store"}`))
	if err != nil {
		t.Fatalf("POST without key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("without key = %d, want 401", resp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/stores/", strings.NewReader(`{"slug":"new-store","name":"New Store"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST with key: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("with key = %d, want 201", resp.StatusCode)
	}
}

func TestCreateStoreRejectsBadBody(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/stores/", strings.NewReader(`{not json`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("X-API-Key", testAPIKey)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["code"] != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestRequestIDEchoedBack(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, server.URL+"/healthz", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("X-Request-Id", "req-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("X-Request-Id = %q", got)
	}
}
