package suppliers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
	"github.com/eve-s3951140/pharmacy/internal/platform/cache"
)

// DependencyChecker reports how many products still reference a supplier.
// Implemented by the products repository.
type DependencyChecker interface {
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
}

// Service enforces the supplier invariants around the repository.
type Service struct {
	repo     Repository
	products DependencyChecker
	cache    *cache.Cache
	audit    shared.AuditPort
	logger   *slog.Logger
}

// NewService builds Service. cache and audit may be nil.
func NewService(repo Repository, products DependencyChecker, c *cache.Cache, audit shared.AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, cache: c, audit: audit, logger: logger}
}

// ListResult pairs a supplier page with the unfiltered total.
type ListResult struct {
	Suppliers []Supplier `json:"suppliers"`
	Total     int        `json:"total"`
}

// List returns suppliers through the read cache.
func (s *Service) List(ctx context.Context, filters shared.ListFilters) (ListResult, error) {
	filters = filters.Normalize()
	key, err := s.cache.BuildKey(ctx, "catalog:suppliers", filters.Search, filters.SortBy, filters.SortDir,
		strconv.Itoa(filters.Page), strconv.Itoa(filters.Limit))
	if err != nil {
		return ListResult{}, err
	}
	var result ListResult
	err = s.cache.FetchJSON(ctx, key, &result, func(ctx context.Context) (interface{}, error) {
		items, total, err := s.repo.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		return ListResult{Suppliers: items, Total: total}, nil
	})
	return result, err
}

// Get fetches one supplier by id.
func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	if id <= 0 {
		return Supplier{}, shared.NotFoundError("supplier")
	}
	return s.repo.Get(ctx, id)
}

// Exists reports whether a supplier with the given id is live. Used by the
// products service to resolve supplier references.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create validates the candidate, guards the business key, then persists.
// The unique indexes on name and contact close the check-then-act window:
// a concurrent writer that slips past the pre-check surfaces as the same
// ConflictError from the insert itself.
func (s *Service) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	supplier.Contact = strings.TrimSpace(supplier.Contact)

	if err := ValidateName(supplier.Name); err != nil {
		return Supplier{}, err
	}
	if err := ValidateContact(supplier.Contact); err != nil {
		return Supplier{}, err
	}
	if err := s.checkUnique(ctx, supplier, 0); err != nil {
		return Supplier{}, err
	}

	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return Supplier{}, err
	}
	s.afterMutation(ctx, "supplier.create", created.ID, map[string]any{"name": created.Name})
	return created, nil
}

// Update replaces all mutable fields of an existing supplier. A business-key
// match is tolerated only when it is the record being updated.
func (s *Service) Update(ctx context.Context, supplier Supplier) (Supplier, error) {
	if _, err := s.repo.Get(ctx, supplier.ID); err != nil {
		return Supplier{}, err
	}

	supplier.Name = strings.TrimSpace(supplier.Name)
	supplier.Contact = strings.TrimSpace(supplier.Contact)

	if err := ValidateName(supplier.Name); err != nil {
		return Supplier{}, err
	}
	if err := ValidateContact(supplier.Contact); err != nil {
		return Supplier{}, err
	}
	if err := s.checkUnique(ctx, supplier, supplier.ID); err != nil {
		return Supplier{}, err
	}

	if err := s.repo.Update(ctx, supplier.ID, supplier); err != nil {
		return Supplier{}, err
	}
	s.afterMutation(ctx, "supplier.update", supplier.ID, map[string]any{"name": supplier.Name})
	return s.repo.Get(ctx, supplier.ID)
}

// Delete removes a supplier unless products still reference it. The foreign
// key on products makes the dependents check authoritative at the store, so a
// product created concurrently with this delete cannot be orphaned.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if s.products != nil {
		n, err := s.products.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return shared.ErrDependentsExist
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.afterMutation(ctx, "supplier.delete", id, nil)
	return nil
}

// checkUnique is the early-exit duplicate guard. Name collisions are reported
// before contact collisions.
func (s *Service) checkUnique(ctx context.Context, candidate Supplier, excludeID int64) error {
	byName, found, err := s.repo.FindByName(ctx, candidate.Name)
	if err != nil {
		return err
	}
	if found && byName.ID != excludeID {
		return &shared.ConflictError{Field: "name", Message: "name already used by another supplier"}
	}

	byContact, found, err := s.repo.FindByContact(ctx, candidate.Contact)
	if err != nil {
		return err
	}
	if found && byContact.ID != excludeID {
		return &shared.ConflictError{Field: "contact", Message: "phone number already used by another supplier"}
	}
	return nil
}

func (s *Service) afterMutation(ctx context.Context, action string, id int64, meta map[string]any) {
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("supplier cache bump failed", slog.Any("error", err))
	}
	if s.audit == nil {
		return
	}
	entry := shared.AuditLog{Action: action, Entity: "supplier", EntityID: strconv.FormatInt(id, 10), Meta: meta}
	if err := s.audit.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("supplier audit record failed", slog.Any("error", err))
	}
}
