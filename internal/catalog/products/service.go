package products

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
	"github.com/eve-s3951140/pharmacy/internal/platform/cache"
)

// SupplierDirectory resolves supplier references for products. Implemented by
// the suppliers service.
type SupplierDirectory interface {
	Exists(ctx context.Context, supplierID int64) (bool, error)
}

// Service enforces the product invariants for both variants through one code
// path parameterized by the variant descriptor.
type Service struct {
	repo      Repository
	suppliers SupplierDirectory
	cache     *cache.Cache
	audit     shared.AuditPort
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds Service. suppliers, cache and audit may be nil.
func NewService(repo Repository, suppliers SupplierDirectory, c *cache.Cache, audit shared.AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, suppliers: suppliers, cache: c, audit: audit, logger: logger, now: time.Now}
}

// ListResult pairs a product page with the unfiltered total.
type ListResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// List returns products of one kind (or all, when kind is empty) through the
// read cache.
func (s *Service) List(ctx context.Context, kind Kind, filters shared.ListFilters) (ListResult, error) {
	filters = filters.Normalize()
	supplierPart := ""
	if filters.SupplierID != nil {
		supplierPart = strconv.FormatInt(*filters.SupplierID, 10)
	}
	key, err := s.cache.BuildKey(ctx, "catalog:products", string(kind), filters.Search, supplierPart,
		filters.SortBy, filters.SortDir, strconv.Itoa(filters.Page), strconv.Itoa(filters.Limit))
	if err != nil {
		return ListResult{}, err
	}
	var result ListResult
	err = s.cache.FetchJSON(ctx, key, &result, func(ctx context.Context) (interface{}, error) {
		items, total, err := s.repo.List(ctx, kind, filters)
		if err != nil {
			return nil, err
		}
		return ListResult{Products: items, Total: total}, nil
	})
	return result, err
}

// Get fetches one product of the given kind by id.
func (s *Service) Get(ctx context.Context, kind Kind, id int64) (Product, error) {
	v, err := variantOf(kind)
	if err != nil {
		return Product{}, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Product{}, shared.NotFoundError(v.noun)
		}
		return Product{}, err
	}
	if p.Kind != kind {
		return Product{}, shared.NotFoundError(v.noun)
	}
	return p, nil
}

// Create validates the candidate, guards the variant business key, then
// persists. The partial unique index per variant and the supplier foreign key
// make both guards authoritative at write time, so two concurrent creates of
// the same key cannot both succeed and a create cannot attach to a supplier a
// concurrent delete has removed.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	v, err := variantOf(p.Kind)
	if err != nil {
		return Product{}, err
	}
	p = normalize(p)

	if err := Validate(v, p, s.now()); err != nil {
		return Product{}, err
	}
	if err := s.supplierExists(ctx, p.SupplierID); err != nil {
		return Product{}, err
	}
	if err := s.checkUnique(ctx, v, p, 0); err != nil {
		return Product{}, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	s.afterMutation(ctx, v.noun+".create", created.ID, map[string]any{"name": created.Name, "supplier_id": created.SupplierID})
	return created, nil
}

// Update replaces all mutable fields of an existing product of the same kind.
// A business-key match is tolerated only when it is the record being updated.
func (s *Service) Update(ctx context.Context, p Product) (Product, error) {
	v, err := variantOf(p.Kind)
	if err != nil {
		return Product{}, err
	}
	if _, err := s.Get(ctx, p.Kind, p.ID); err != nil {
		return Product{}, err
	}
	p = normalize(p)

	if err := Validate(v, p, s.now()); err != nil {
		return Product{}, err
	}
	if err := s.supplierExists(ctx, p.SupplierID); err != nil {
		return Product{}, err
	}
	if err := s.checkUnique(ctx, v, p, p.ID); err != nil {
		return Product{}, err
	}

	if err := s.repo.Update(ctx, p.ID, p); err != nil {
		return Product{}, err
	}
	s.afterMutation(ctx, v.noun+".update", p.ID, map[string]any{"name": p.Name})
	return s.Get(ctx, p.Kind, p.ID)
}

// Delete removes a product of the given kind.
func (s *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	v, err := variantOf(kind)
	if err != nil {
		return err
	}
	if _, err := s.Get(ctx, kind, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, v.noun+".delete", id, nil)
	return nil
}

// CountBySupplier exposes the dependents query for the supplier delete guard.
func (s *Service) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	return s.repo.CountBySupplier(ctx, supplierID)
}

// normalize trims the comparable strings and zeroes the fields belonging to
// the other variant, so stray payload fields never reach the store.
func normalize(p Product) Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Manufacturer = strings.TrimSpace(p.Manufacturer)
	p.Warranty = strings.TrimSpace(p.Warranty)
	switch p.Kind {
	case KindMedicine:
		p.Warranty = ""
		p.PurchaseDate = time.Time{}
	case KindEquipment:
		p.Manufacturer = ""
		p.ExpiryDate = time.Time{}
	}
	return p
}

func (s *Service) supplierExists(ctx context.Context, supplierID int64) error {
	if s.suppliers == nil {
		return nil
	}
	ok, err := s.suppliers.Exists(ctx, supplierID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrMissingSupplier
	}
	return nil
}

// checkUnique is the early-exit duplicate guard on the variant business key.
func (s *Service) checkUnique(ctx context.Context, v variant, p Product, excludeID int64) error {
	existing, found, err := s.repo.FindByBusinessKey(ctx, p)
	if err != nil {
		return err
	}
	if found && existing.ID != excludeID {
		return &shared.ConflictError{Field: "business key", Message: v.duplicateMessage()}
	}
	return nil
}

func (s *Service) afterMutation(ctx context.Context, action string, id int64, meta map[string]any) {
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("product cache bump failed", slog.Any("error", err))
	}
	if s.audit == nil {
		return
	}
	entry := shared.AuditLog{Action: action, Entity: "product", EntityID: strconv.FormatInt(id, 10), Meta: meta}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("product audit record failed", slog.Any("error", err))
	}
}
