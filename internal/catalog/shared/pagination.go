package shared

// ListFilters represents standard list page filters.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	// Entity specific filters
	SupplierID *int64
}

const (
	// DefaultPage is the first page.
	DefaultPage = 1
	// DefaultLimit bounds unpaged list requests.
	DefaultLimit = 10
)

// Normalize fills zero values with defaults.
func (f ListFilters) Normalize() ListFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	return f
}
