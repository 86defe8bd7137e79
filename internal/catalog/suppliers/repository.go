package suppliers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// Repository persists suppliers. Unique indexes on the business-key columns
// make the database the authoritative source of conflicts; FindByName and
// FindByContact back the early-exit pre-checks only.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error)
	Get(ctx context.Context, id int64) (Supplier, error)
	FindByName(ctx context.Context, name string) (Supplier, bool, error)
	FindByContact(ctx context.Context, contact string) (Supplier, bool, error)
	Create(ctx context.Context, supplier Supplier) (Supplier, error)
	Update(ctx context.Context, id int64, supplier Supplier) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const supplierColumns = `id, name, contact, created_at, updated_at`

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	filters = filters.Normalize()

	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if filters.Search != "" {
		argCount++
		query += ` AND (name ILIKE $` + strconv.Itoa(argCount) + ` OR contact ILIKE $` + strconv.Itoa(argCount) + `)`
		args = append(args, "%"+filters.Search+"%")
	}

	countQuery := `SELECT COUNT(*) FROM suppliers WHERE 1=1`
	countArgs := []interface{}{}
	if filters.Search != "" {
		countQuery += ` AND (name ILIKE $1 OR contact ILIKE $1)`
		countArgs = append(countArgs, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += " ORDER BY " + sortOrder(filters.SortBy, filters.SortDir)

	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)

	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (filters.Page-1)*filters.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, s)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Supplier, error) {
	row := r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	s, err := scanSupplier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Supplier{}, shared.NotFoundError("supplier")
	}
	return s, err
}

func (r *repository) FindByName(ctx context.Context, name string) (Supplier, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE lower(btrim(name)) = lower(btrim($1))`, name)
	s, err := scanSupplier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Supplier{}, false, nil
	}
	if err != nil {
		return Supplier{}, false, err
	}
	return s, true, nil
}

func (r *repository) FindByContact(ctx context.Context, contact string) (Supplier, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE contact = $1`, strings.TrimSpace(contact))
	s, err := scanSupplier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Supplier{}, false, nil
	}
	if err != nil {
		return Supplier{}, false, err
	}
	return s, true, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO suppliers (name, contact, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		supplier.Name, supplier.Contact, now, now).Scan(&supplier.ID)
	if err != nil {
		return Supplier{}, translateSupplierError(err)
	}
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	return supplier, nil
}

func (r *repository) Update(ctx context.Context, id int64, supplier Supplier) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE suppliers SET name = $1, contact = $2, updated_at = $3 WHERE id = $4`,
		supplier.Name, supplier.Contact, time.Now(), id)
	if err != nil {
		return translateSupplierError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("supplier")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return translateSupplierError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("supplier")
	}
	return nil
}

// translateSupplierError maps constraint violations raised by the store into
// the catalogue taxonomy. The pre-checks in the service give the same answers
// earlier; this path is what makes them race-free.
func translateSupplierError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		switch pgErr.ConstraintName {
		case "uq_suppliers_name":
			return &shared.ConflictError{Field: "name", Message: "name already used by another supplier"}
		case "uq_suppliers_contact":
			return &shared.ConflictError{Field: "contact", Message: "phone number already used by another supplier"}
		}
		return &shared.ConflictError{Field: "supplier", Message: "duplicate supplier"}
	case "23503":
		// products.supplier_id ON DELETE RESTRICT
		return shared.ErrDependentsExist
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "contact":
		return "contact " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
