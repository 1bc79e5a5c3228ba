package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// DefaultPageSize is the page size for the primary search endpoint.
	DefaultPageSize = 25
	// AdvancedPageSize is the page size for the advanced search endpoint.
	AdvancedPageSize = 50
	// MaxPageSize caps any caller-supplied page size.
	MaxPageSize = 100
)

// Params holds the page-number pagination parameters of a request.
type Params struct {
	Page int
	Size int
}

// FromContext extracts page/page_size from the echo context. Invalid or
// missing numeric values fall back to defaults rather than erroring.
func FromContext(c echo.Context, defaultSize int) Params {
	return FromStrings(c.QueryParam("page"), c.QueryParam("page_size"), defaultSize)
}

// FromStrings parses raw page and page_size values. A non-numeric page or a
// page below 1 becomes 1; a bad size becomes defaultSize; sizes above
// MaxPageSize are clamped.
func FromStrings(page, size string, defaultSize int) Params {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = 1
	}
	s, err := strconv.Atoi(size)
	if err != nil || s < 1 {
		s = defaultSize
	}
	if s > MaxPageSize {
		s = MaxPageSize
	}
	return Params{Page: p, Size: s}
}

// Meta describes one page of a result set.
type Meta struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
	PageSize     int  `json:"page_size"`
}

// Paginate clamps the requested page against the total result count and
// returns the page metadata. An empty result set still reports one page,
// and out-of-range page numbers snap to the nearest valid page instead of
// erroring or returning an empty slice.
func (p Params) Paginate(total int) Meta {
	pages := (total + p.Size - 1) / p.Size
	if pages < 1 {
		pages = 1
	}
	page := p.Page
	if page > pages {
		page = pages
	}
	return Meta{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalResults: total,
		HasNext:      page < pages,
		HasPrevious:  page > 1,
		PageSize:     p.Size,
	}
}

// Offset returns the row offset for the clamped page.
func (m Meta) Offset() int {
	return (m.CurrentPage - 1) * m.PageSize
}
