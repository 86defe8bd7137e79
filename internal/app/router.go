package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/eve-s3951140/pharmacy/internal/catalog/products"
	"github.com/eve-s3951140/pharmacy/internal/catalog/suppliers"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SupplierHandler *suppliers.Handler
	ProductHandler  *products.Handler
}

// NewRouter constructs the chi.Router with the catalogue API mounted under /api.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/suppliers", params.SupplierHandler.MountRoutes)
		r.Route("/products", params.ProductHandler.MountProductRoutes)
		r.Route("/medicines", func(r chi.Router) {
			params.ProductHandler.MountVariantRoutes(r, products.KindMedicine)
		})
		r.Route("/equipments", func(r chi.Router) {
			params.ProductHandler.MountVariantRoutes(r, products.KindEquipment)
		})
	})

	return r
}
