package products

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
	"github.com/eve-s3951140/pharmacy/internal/catalog/suppliers"
)

// supplierStore is a minimal suppliers.Repository for wiring both services
// together in one scenario.
type supplierStore struct {
	mu       sync.Mutex
	seq      int64
	items    map[int64]suppliers.Supplier
	products *memoryRepo
}

func newSupplierStore(products *memoryRepo) *supplierStore {
	return &supplierStore{items: make(map[int64]suppliers.Supplier), products: products}
}

func (r *supplierStore) conflictLocked(candidate suppliers.Supplier, excludeID int64) error {
	for _, existing := range r.items {
		if existing.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(existing.Name), strings.TrimSpace(candidate.Name)) {
			return &shared.ConflictError{Field: "name", Message: "name already used by another supplier"}
		}
		if existing.Contact == candidate.Contact {
			return &shared.ConflictError{Field: "contact", Message: "phone number already used by another supplier"}
		}
	}
	return nil
}

func (r *supplierStore) List(ctx context.Context, filters shared.ListFilters) ([]suppliers.Supplier, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []suppliers.Supplier
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *supplierStore) Get(ctx context.Context, id int64) (suppliers.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return suppliers.Supplier{}, shared.NotFoundError("supplier")
	}
	return s, nil
}

func (r *supplierStore) FindByName(ctx context.Context, name string) (suppliers.Supplier, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name)) {
			return s, true, nil
		}
	}
	return suppliers.Supplier{}, false, nil
}

func (r *supplierStore) FindByContact(ctx context.Context, contact string) (suppliers.Supplier, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.Contact == strings.TrimSpace(contact) {
			return s, true, nil
		}
	}
	return suppliers.Supplier{}, false, nil
}

func (r *supplierStore) Create(ctx context.Context, s suppliers.Supplier) (suppliers.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conflictLocked(s, 0); err != nil {
		return suppliers.Supplier{}, err
	}
	r.seq++
	s.ID = r.seq
	r.items[s.ID] = s
	if r.products != nil {
		r.products.suppliers[s.ID] = true
	}
	return s, nil
}

func (r *supplierStore) Update(ctx context.Context, id int64, s suppliers.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.NotFoundError("supplier")
	}
	if err := r.conflictLocked(s, id); err != nil {
		return err
	}
	s.ID = id
	r.items[id] = s
	return nil
}

func (r *supplierStore) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.NotFoundError("supplier")
	}
	// Emulates the ON DELETE RESTRICT foreign key.
	if r.products != nil {
		for _, p := range r.products.items {
			if p.SupplierID == id {
				return shared.ErrDependentsExist
			}
		}
		delete(r.products.suppliers, id)
	}
	delete(r.items, id)
	return nil
}

func TestCatalogueScenario(t *testing.T) {
	ctx := context.Background()

	productRepo := newMemoryRepo()
	store := newSupplierStore(productRepo)
	supplierSvc := suppliers.NewService(store, productRepo, nil, nil, nil)
	productSvc := NewService(productRepo, nil, nil, nil, nil)

	acme, err := supplierSvc.Create(ctx, suppliers.Supplier{Name: "Acme", Contact: "0412345678"})
	require.NoError(t, err)
	require.NotZero(t, acme.ID)

	_, err = supplierSvc.Create(ctx, suppliers.Supplier{Name: "Acme", Contact: "0498765432"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
	var conflict *shared.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "name", conflict.Field)

	panadol, err := productSvc.Create(ctx, Product{
		Kind:         KindMedicine,
		Name:         "Panadol",
		Quantity:     20,
		Price:        8.99,
		SupplierID:   acme.ID,
		Manufacturer: "GSK",
		ExpiryDate:   time.Now().AddDate(0, 0, 30),
	})
	require.NoError(t, err)

	err = supplierSvc.Delete(ctx, acme.ID)
	require.ErrorIs(t, err, shared.ErrDependentsExist)

	require.NoError(t, productSvc.Delete(ctx, KindMedicine, panadol.ID))
	require.NoError(t, supplierSvc.Delete(ctx, acme.ID))

	_, err = supplierSvc.Get(ctx, acme.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
