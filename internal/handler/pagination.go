package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query parameters. Pages are
// 1-based; anything out of range falls back to the first page at the
// default size.
func ParsePagination(r *http.Request) PaginationParams {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if page < 1 {
		page = 1
	}

	return PaginationParams{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
