// Package query filters and paginates the collections shown in list views.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Record is an entity that can be searched and filtered.
type Record interface {
	// SearchFields are matched, case-insensitively, against the search text.
	SearchFields() []string
	// Facet is compared with the filter, e.g. an employee's department.
	Facet() string
}

// Query is the per-view search, filter and page state.
type Query struct {
	Search string `json:"search"`
	Filter string `json:"filter"`
	Page   int    `json:"page"`
}

// FromValues reads a query from URL parameters. filterKey names the filter
// parameter of the view ("department", "status").
func FromValues(v url.Values, filterKey string) Query {
	page, err := strconv.Atoi(v.Get("page"))
	if err != nil {
		page = 1
	}
	return Query{
		Search: v.Get("search"),
		Filter: v.Get(filterKey),
		Page:   page,
	}
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Matches reports whether r satisfies both the search text and the filter.
func Matches(r Record, q Query) bool {
	return matchesFilter(r, q.Filter) && matchesSearch(r, q.Search)
}

func matchesSearch(r Record, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, f := range r.SearchFields() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func matchesFilter(r Record, filter string) bool {
	return filter == "" || r.Facet() == filter
}

// Filter keeps the matching records in their original order.
func Filter[T Record](items []T, q Query) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// Apply filters items and returns the requested page. The page number is
// clamped to the valid range, so a shrinking result set lands on its last page.
func Apply[T Record](items []T, q Query, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	matched := Filter(items, q)
	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      matched[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
