package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mercacio/storefront-service/internal/application"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler, logger *slog.Logger, apiKey string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	admin := apiKeyMiddleware(apiKey)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/{identifier}", handler.resolveStore)
			r.Get("/{storeId}/products", handler.storeCatalog)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", handler.createStore)
				r.Put("/{storeId}/settings", handler.updateStoreSettings)
			})
		})

		r.Route("/commissions/custom", func(r chi.Router) {
			r.Get("/", handler.listCommissionOverrides)
			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Post("/", handler.setCommissionOverride)
				r.Post("/{productId}", handler.syncCommissionOverride)
				r.Patch("/{productId}", handler.syncCommissionOverride)
				r.Delete("/{productId}", handler.deactivateCommissionOverride)
			})
		})

		r.Route("/landing-pages", func(r chi.Router) {
			r.Get("/{trackingId}", handler.resolveLandingPage)
			r.With(admin).Post("/sync", handler.syncLandingPage)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(admin)
			r.Get("/cache/slugs", handler.listCachedSlugs)
		})
	})
	return r
}
