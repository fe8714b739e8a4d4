package pagination

import (
	"net/url"
	"strconv"
)

// Defaults applied when page/limit are missing or not positive integers.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is the requested pagination window.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the full result set around one returned page
// swagger:model PaginationMeta
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// ParseParams reads page and limit from query parameters. Missing,
// non-numeric, zero or negative values fall back to the defaults.
func ParseParams(query url.Values) Params {
	return Params{
		Page:  positiveInt(query.Get("page"), DefaultPage),
		Limit: positiveInt(query.Get("limit"), DefaultLimit),
	}
}

// Offset returns the number of records to skip for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes response metadata for a total matching record count.
func NewMeta(p Params, total int64) Meta {
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}

	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    int64(p.Page)*int64(p.Limit) < total,
		HasPrev:    p.Page > 1,
	}
}

func positiveInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
