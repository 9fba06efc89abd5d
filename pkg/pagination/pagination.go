package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 5
	// MaxPageSize caps how many rows any page can hold.
	MaxPageSize = 100
)

// Params holds 1-based page pagination inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Page describes the slice of a result set being returned.
type Page struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NormalizePageSize enforces the configured default and maximum sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Normalize fills defaults: page starts at 1.
func (p Params) Normalize() Params {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return Params{Page: page, PageSize: NormalizePageSize(p.PageSize)}
}

// TotalPages returns how many pages total items span; zero items is zero pages.
func TotalPages(total, size int) int {
	size = NormalizePageSize(size)
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Bounds returns the [start, end) offsets of the page within total items.
// Pages past the end yield an empty range.
func (p Params) Bounds(total int) (int, int) {
	n := p.Normalize()
	start := (n.Page - 1) * n.PageSize
	if start > total {
		start = total
	}
	end := start + n.PageSize
	if end > total {
		end = total
	}
	return start, end
}

// Describe builds the Page metadata for total items.
func (p Params) Describe(total int) Page {
	n := p.Normalize()
	return Page{
		Page:       n.Page,
		PageSize:   n.PageSize,
		TotalItems: total,
		TotalPages: TotalPages(total, n.PageSize),
	}
}
