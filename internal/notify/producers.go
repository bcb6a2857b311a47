package notify

import (
	"fmt"

	"github.com/stock-ahora/truestock-api/internal/models"
)

// Producer helpers: fixed message templates over Store.Add. They carry no
// state of their own.

func (s *Store) NotifyLowStock(sku string, qty int) models.Notification {
	return s.Add(AddInput{
		Title:     "Low stock",
		Message:   fmt.Sprintf("Product %s is down to %d units. Consider reordering.", sku, qty),
		Type:      models.SeverityWarning,
		ActionURL: "/inventory",
	})
}

func (s *Store) NotifyInvoiceProcessed(id string) models.Notification {
	return s.Add(AddInput{
		Title:     "Invoice processed",
		Message:   fmt.Sprintf("Stock request %s was ingested successfully.", id),
		Type:      models.SeveritySuccess,
		ActionURL: "/requests/" + id,
	})
}

func (s *Store) NotifyOCRFailure(id string) models.Notification {
	msg := "Document scan failed. Please upload the invoice again."
	if id != "" {
		msg = fmt.Sprintf("Scan of request %s failed. Please upload the invoice again.", id)
	}
	return s.Add(AddInput{
		Title:   "Scan failed",
		Message: msg,
		Type:    models.SeverityError,
	})
}

func (s *Store) NotifyConfigChanged(who string) models.Notification {
	msg := "Dashboard settings were updated."
	if who != "" {
		msg = fmt.Sprintf("Dashboard settings were updated by %s.", who)
	}
	return s.Add(AddInput{
		Title:   "Settings updated",
		Message: msg,
		Type:    models.SeverityInfo,
	})
}
