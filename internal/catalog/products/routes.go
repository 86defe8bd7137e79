package products

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountVariantRoutes registers the CRUD endpoints for one variant subtree.
func (h *Handler) MountVariantRoutes(r chi.Router, kind Kind) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) { h.list(w, r, kind) })
	r.Post("/", func(w http.ResponseWriter, r *http.Request) { h.create(w, r, kind) })
	r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) { h.show(w, r, kind) })
	r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) { h.update(w, r, kind) })
	r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) { h.delete(w, r, kind) })
}

// MountProductRoutes registers the combined read-only listing.
func (h *Handler) MountProductRoutes(r chi.Router) {
	r.Get("/", h.ListAll)
}
