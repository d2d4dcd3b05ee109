package utils

import "math"

// Page-size policy for the user-facing list endpoints. Admin listings
// pass their own bounds to NewPageRequest.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a normalized page/size pair for list queries.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest clamps raw query values to the endpoint's page-size
// policy. A size outside [1, max] falls back to def, a page below 1
// becomes the first page.
func NewPageRequest(page, size, def, max int) PageRequest {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > max {
		size = def
	}
	return PageRequest{Page: page, Size: size}
}

// Offset returns the SQL offset for the requested page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// PageMeta is the pagination block returned alongside list payloads.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// Meta builds the response metadata for a total row count.
func (p PageRequest) Meta(totalCount int64) PageMeta {
	return PageMeta{
		Page:       p.Page,
		Limit:      p.Size,
		TotalCount: totalCount,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(p.Size))),
	}
}
