package products

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eve-s3951140/pharmacy/internal/catalog/shared"
)

// Repository persists both product variants in one table discriminated by
// product_type. Partial unique indexes per variant enforce the business key;
// the supplier foreign key (ON DELETE RESTRICT) enforces referential
// integrity against concurrent supplier deletes.
type Repository interface {
	List(ctx context.Context, kind Kind, filters shared.ListFilters) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	FindByBusinessKey(ctx context.Context, p Product) (Product, bool, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int64, p Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, product_type, name, quantity, price, supplier_id, manufacturer, expiry_date, warranty, purchase_date, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p            Product
		manufacturer *string
		expiry       *time.Time
		warranty     *string
		purchase     *time.Time
	)
	err := row.Scan(&p.ID, &p.Kind, &p.Name, &p.Quantity, &p.Price, &p.SupplierID,
		&manufacturer, &expiry, &warranty, &purchase, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if manufacturer != nil {
		p.Manufacturer = *manufacturer
	}
	if expiry != nil {
		p.ExpiryDate = *expiry
	}
	if warranty != nil {
		p.Warranty = *warranty
	}
	if purchase != nil {
		p.PurchaseDate = *purchase
	}
	return p, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := dateOnly(t)
	return &d
}

// variantBindings picks the column values for the product's own variant and
// leaves the other variant's columns NULL. The secondary attribute is stored
// as-is: an empty manufacturer or warranty is a legal value, not a missing
// one, and the NOT NULL checks in the schema only apply to the owning
// variant's columns.
func variantBindings(p Product) (manufacturer *string, expiry *time.Time, warranty *string, purchase *time.Time) {
	switch p.Kind {
	case KindMedicine:
		return &p.Manufacturer, nullTime(p.ExpiryDate), nil, nil
	case KindEquipment:
		return nil, nil, &p.Warranty, nullTime(p.PurchaseDate)
	}
	return nil, nil, nil, nil
}

func (r *repository) List(ctx context.Context, kind Kind, filters shared.ListFilters) ([]Product, int, error) {
	filters = filters.Normalize()

	where := ` WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if kind != "" {
		argCount++
		where += ` AND product_type = $` + strconv.Itoa(argCount)
		args = append(args, kind)
	}
	if filters.SupplierID != nil {
		argCount++
		where += ` AND supplier_id = $` + strconv.Itoa(argCount)
		args = append(args, *filters.SupplierID)
	}
	if filters.Search != "" {
		argCount++
		where += ` AND name ILIKE $` + strconv.Itoa(argCount)
		args = append(args, "%"+filters.Search+"%")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)

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

	var result []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.NotFoundError("product")
	}
	return p, err
}

func (r *repository) FindByBusinessKey(ctx context.Context, p Product) (Product, bool, error) {
	var query string
	switch p.Kind {
	case KindMedicine:
		query = `SELECT ` + productColumns + ` FROM products
			WHERE product_type = 'medicine'
			  AND lower(btrim(name)) = lower(btrim($1))
			  AND supplier_id = $2
			  AND expiry_date = $3
			  AND lower(btrim(manufacturer)) = lower(btrim($4))`
	case KindEquipment:
		query = `SELECT ` + productColumns + ` FROM products
			WHERE product_type = 'equipment'
			  AND lower(btrim(name)) = lower(btrim($1))
			  AND supplier_id = $2
			  AND purchase_date = $3
			  AND lower(btrim(warranty)) = lower(btrim($4))`
	default:
		return Product{}, false, shared.Invalid("kind", "unknown product kind")
	}

	row := r.db.QueryRow(ctx, query, p.Name, p.SupplierID, dateOnly(p.Date()), p.Secondary())
	found, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return found, true, nil
}

func (r *repository) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID).Scan(&n)
	return n, err
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	now := time.Now()
	manufacturer, expiry, warranty, purchase := variantBindings(p)
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (product_type, name, quantity, price, supplier_id, manufacturer, expiry_date, warranty, purchase_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		p.Kind, p.Name, p.Quantity, p.Price, p.SupplierID,
		manufacturer, expiry, warranty, purchase, now, now).Scan(&p.ID)
	if err != nil {
		return Product{}, translateProductError(p.Kind, err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) error {
	manufacturer, expiry, warranty, purchase := variantBindings(p)
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, quantity = $2, price = $3, supplier_id = $4,
		 manufacturer = $5, expiry_date = $6, warranty = $7, purchase_date = $8, updated_at = $9
		 WHERE id = $10 AND product_type = $11`,
		p.Name, p.Quantity, p.Price, p.SupplierID,
		manufacturer, expiry, warranty, purchase, time.Now(), id, p.Kind)
	if err != nil {
		return translateProductError(p.Kind, err)
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("product")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NotFoundError("product")
	}
	return nil
}

// translateProductError maps write-time constraint violations into the
// catalogue taxonomy, making the store the authority for duplicate and
// referential conflicts.
func translateProductError(kind Kind, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		if v, ok := variants[kind]; ok {
			return &shared.ConflictError{Field: "business key", Message: v.duplicateMessage()}
		}
		return &shared.ConflictError{Field: "business key", Message: "duplicate product"}
	case "23503":
		// supplier_id referenced a supplier that no longer exists
		return shared.ErrMissingSupplier
	}
	return err
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "price":
		return "price " + dir
	case "quantity":
		return "quantity " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
