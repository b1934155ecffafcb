// Package table holds the filter, sort and paginate steps shared by the
// dashboard's list views.
package table

import (
	"sort"
	"strings"
)

// DefaultPageSize is used when a request names no page size.
const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 500

// Page is one slice of a filtered, sorted result.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Filter returns the rows keep accepts, in order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Less compares two rows on one column.
type Less[T any] func(a, b T) bool

// SortBy stably sorts rows in place. Unknown columns leave the order alone.
func SortBy[T any](rows []T, columns map[string]Less[T], column string, desc bool) {
	less, ok := columns[column]
	if !ok {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// Paginate returns the 1-based page of rows. Out-of-range pages are clamped
// to the last page; an empty result is page 1 of 0.
func Paginate[T any](rows []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total := len(rows)
	pages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if pages == 0 {
		page = 1
	} else if page > pages {
		page = pages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, rows[start:end])
	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// ParseOrder splits "column" or "-column" into a column and direction.
func ParseOrder(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return s[1:], true
	}
	return s, false
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
