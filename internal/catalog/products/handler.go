package products

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
	"github.com/eve-s3951140/pharmacy/internal/platform/httpx"
)

// Handler wires the JSON endpoints for both product variants. The variant is
// fixed per mounted subtree (/medicines, /equipments); /products serves the
// combined read-only listing.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

type productRequest struct {
	Name         string  `json:"name" validate:"required"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	SupplierID   int64   `json:"supplier_id"`
	Manufacturer string  `json:"manufacturer"`
	ExpiryDate   string  `json:"expiry_date"`
	Warranty     string  `json:"warranty"`
	PurchaseDate string  `json:"purchase_date"`
}

const dateLayout = "2006-01-02"

func (req productRequest) toProduct(kind Kind) (Product, error) {
	p := Product{
		Kind:         kind,
		Name:         req.Name,
		Quantity:     req.Quantity,
		Price:        req.Price,
		SupplierID:   req.SupplierID,
		Manufacturer: req.Manufacturer,
		Warranty:     req.Warranty,
	}
	if req.ExpiryDate != "" {
		d, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			return Product{}, err
		}
		p.ExpiryDate = d
	}
	if req.PurchaseDate != "" {
		d, err := time.Parse(dateLayout, req.PurchaseDate)
		if err != nil {
			return Product{}, err
		}
		p.PurchaseDate = d
	}
	return p, nil
}

// ListAll serves the combined catalogue, optionally filtered by supplier.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, kind Kind) {
	filters := filtersFromQuery(r)
	result, err := h.service.List(r.Context(), kind, filters)
	if err != nil {
		h.logger.Error("list products failed", slog.Any("error", err), slog.String("kind", string(kind)))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request, kind Kind) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.BadRequest(w, nil)
		return
	}
	p, err := h.service.Get(r.Context(), kind, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, kind Kind) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	p, err := req.toProduct(kind)
	if err != nil {
		httpx.BadRequest(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), p)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, kind Kind) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.BadRequest(w, nil)
		return
	}
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	p, err := req.toProduct(kind)
	if err != nil {
		httpx.BadRequest(w, err)
		return
	}
	p.ID = id
	updated, err := h.service.Update(r.Context(), p)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, kind Kind) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.BadRequest(w, nil)
		return
	}
	if err := h.service.Delete(r.Context(), kind, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filtersFromQuery(r *http.Request) shared.ListFilters {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	filters := shared.ListFilters{
		Page:    page,
		Limit:   limit,
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	if raw := r.URL.Query().Get("supplier_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.SupplierID = &id
		}
	}
	return filters.Normalize()
}
