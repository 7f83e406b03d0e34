package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercacio/storefront-service/internal/application"
	"github.com/mercacio/storefront-service/internal/ports"
)

func (h *Handler) resolveStore(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	kind := ports.StoreKeySlug
	if r.URL.Query().Get("by") == "id" {
		kind = ports.StoreKeyID
	}
	resp, err := h.service.ResolveStore(r.Context(), identifier, kind)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var req application.CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.CreateStore(r.Context(), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) updateStoreSettings(w http.ResponseWriter, r *http.Request) {
	var req application.UpdateStoreSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.UpdateStoreSettings(r.Context(), chi.URLParam(r, "storeId"), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) storeCatalog(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.StoreCatalog(r.Context(), chi.URLParam(r, "storeId"), r.URL.Query().Get("affiliate_id"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"products": resp})
}

func (h *Handler) setCommissionOverride(w http.ResponseWriter, r *http.Request) {
	var req application.SetCommissionOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	h.applyCommissionOverride(w, r, req)
}

// syncCommissionOverride is the external sync API's shape: product id in the
// URL, and a body without a commission amount reverts the pair to the
// product default.
func (h *Handler) syncCommissionOverride(w http.ResponseWriter, r *http.Request) {
	var req application.SetCommissionOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	req.ProductID = chi.URLParam(r, "productId")
	req.ExternalSync = true
	h.applyCommissionOverride(w, r, req)
}

func (h *Handler) applyCommissionOverride(w http.ResponseWriter, r *http.Request, req application.SetCommissionOverrideRequest) {
	resp, err := h.service.SetCommissionOverride(r.Context(), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	if resp == nil {
		writeMessage(w, http.StatusOK, "custom commission removed, reverting to default product commission")
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) deactivateCommissionOverride(w http.ResponseWriter, r *http.Request) {
	affiliateID := r.URL.Query().Get("affiliate_id")
	err := h.service.DeactivateCommissionOverride(r.Context(), chi.URLParam(r, "productId"), affiliateID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "custom commission deactivated")
}

func (h *Handler) listCommissionOverrides(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListCommissionOverrides(r.Context(), r.URL.Query().Get("product_id"), r.URL.Query().Get("affiliate_id"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"commissions": resp})
}

func (h *Handler) resolveLandingPage(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ResolveLandingPage(r.Context(), chi.URLParam(r, "trackingId"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) syncLandingPage(w http.ResponseWriter, r *http.Request) {
	var req application.SyncLandingPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.SyncLandingPage(r.Context(), req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) listCachedSlugs(w http.ResponseWriter, r *http.Request) {
	slugs, err := h.service.CachedStoreSlugs(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	if slugs == nil {
		slugs = []string{}
	}
	writeSuccess(w, http.StatusOK, map[string]any{"slugs": slugs})
}
