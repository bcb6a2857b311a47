package view

import "github.com/stock-ahora/truestock-api/internal/models"

// Summary holds the dashboard stock counters. The three status counters
// always sum to Total.
type Summary struct {
	Total      int `json:"total"`
	InStock    int `json:"in_stock"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// Summarize classifies every record in a single pass.
func Summarize(records []models.Product) Summary {
	s := Summary{Total: len(records)}
	for _, p := range records {
		switch p.Status() {
		case models.StatusOutOfStock:
			s.OutOfStock++
		case models.StatusLowStock:
			s.LowStock++
		default:
			s.InStock++
		}
	}
	return s
}

// WellFormed reports whether the counters are non-negative and consistent.
func (s Summary) WellFormed() bool {
	if s.InStock < 0 || s.LowStock < 0 || s.OutOfStock < 0 || s.Total < 0 {
		return false
	}
	return s.InStock+s.LowStock+s.OutOfStock == s.Total
}

// Resolve prefers a server-supplied summary when it is present and
// well-formed, falling back to local computation over the record set.
func Resolve(server *Summary, records []models.Product) Summary {
	if server != nil && server.WellFormed() {
		return *server
	}
	return Summarize(records)
}
