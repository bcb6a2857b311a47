// Package view derives the visible subset of an inventory record set from
// user-controlled filters, sort selection and pagination, plus the summary
// counters shown on the dashboard. All functions are pure and deterministic.
package view

import (
	"sort"
	"strings"

	"github.com/stock-ahora/truestock-api/internal/models"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// PageSizeAll disables pagination: every filtered record is returned.
const PageSizeAll = -1

// FilterAll is the sentinel (alongside the empty string) that disables a
// category or status filter.
const FilterAll = "all"

// Query captures the user-controlled view parameters of a listing screen.
type Query struct {
	Search   string
	Category string
	Status   string
	SortKey  string
	SortDir  SortDir
	Page     int
	PageSize int
}

// WithSort returns the query after the user selects a sort column: selecting
// the current key flips the direction, a new key resets to ascending.
func (q Query) WithSort(key string) Query {
	if q.SortKey == key {
		if q.SortDir == SortAsc {
			q.SortDir = SortDesc
		} else {
			q.SortDir = SortAsc
		}
	} else {
		q.SortKey = key
		q.SortDir = SortAsc
	}
	return q
}

// Result is the visible page plus the full filtered count, which callers use
// for page-count display.
type Result struct {
	Visible    []models.Product `json:"visible"`
	TotalCount int              `json:"total_count"`
}

// Apply runs filter, sort and pagination over records. Active predicates are
// ANDed; sorting is stable so equal-key records keep their original relative
// order; an out-of-range page clamps to the last page instead of erroring.
func Apply(records []models.Product, q Query) Result {
	filtered := make([]models.Product, 0, len(records))
	for _, p := range records {
		if matches(p, q) {
			filtered = append(filtered, p)
		}
	}

	sortRecords(filtered, q.SortKey, q.SortDir)

	total := len(filtered)
	if q.PageSize == PageSizeAll || q.PageSize <= 0 {
		return Result{Visible: filtered, TotalCount: total}
	}

	page := q.Page
	if page < 0 {
		page = 0
	}
	lastPage := 0
	if total > 0 {
		lastPage = (total - 1) / q.PageSize
	}
	if page > lastPage {
		page = lastPage
	}

	start := page * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Result{Visible: filtered[start:end], TotalCount: total}
}

func matches(p models.Product, q Query) bool {
	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		hit := strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			(p.SKU != "" && strings.Contains(strings.ToLower(p.SKU), needle))
		if !hit {
			return false
		}
	}

	if q.Category != "" && q.Category != FilterAll && p.Category != q.Category {
		return false
	}

	if q.Status != "" && q.Status != FilterAll && string(p.Status()) != q.Status {
		return false
	}

	return true
}

func sortRecords(records []models.Product, key string, dir SortDir) {
	if key == "" {
		return
	}

	less := lessFunc(key)
	if less == nil {
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		if dir == SortDesc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

func lessFunc(key string) func(a, b models.Product) bool {
	switch key {
	case "name":
		return func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "category":
		return func(a, b models.Product) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case "sku":
		return func(a, b models.Product) bool {
			return strings.ToLower(a.SKU) < strings.ToLower(b.SKU)
		}
	case "stock", "current_stock":
		return func(a, b models.Product) bool { return a.CurrentStock < b.CurrentStock }
	case "min_stock":
		return func(a, b models.Product) bool { return a.MinStock < b.MinStock }
	case "unit_price", "price":
		return func(a, b models.Product) bool { return a.UnitPrice.LessThan(b.UnitPrice) }
	case "updated_at":
		return func(a, b models.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil
	}
}
