package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/stock-ahora/truestock-api/internal/view"
)

// Listing is a decoded paginated response from an upstream listing endpoint.
type Listing struct {
	Records []map[string]any
	Total   int
	Summary *view.Summary
}

// listingEnvelope accepts both the canonical envelope ({data, total, page,
// size}) and the legacy {items, total} shape the older gateway still emits.
// The legacy shape is a compatibility shim, not a second supported format:
// canonical responses are always emitted with "data".
type listingEnvelope struct {
	Data    []map[string]any `json:"data"`
	Items   []map[string]any `json:"items"`
	Total   *int             `json:"total"`
	Summary *view.Summary    `json:"summary"`
}

// ParseListing decodes an upstream listing body. A bare JSON array is also
// tolerated (per-id detail endpoints return one).
func ParseListing(body []byte) (Listing, error) {
	var envelope listingEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && (envelope.Data != nil || envelope.Items != nil) {
		records := envelope.Data
		if records == nil {
			records = envelope.Items
		}
		total := len(records)
		if envelope.Total != nil {
			total = *envelope.Total
		}
		return Listing{Records: records, Total: total, Summary: envelope.Summary}, nil
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return Listing{}, fmt.Errorf("unrecognized listing payload: %w", err)
	}
	return Listing{Records: records, Total: len(records)}, nil
}
