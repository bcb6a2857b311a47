package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/stock-ahora/truestock-api/internal/models"
)

// seedNotifications is the fixed first-run set shown before any real event
// has produced a notification.
func seedNotifications(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:        uuid.New().String(),
			Title:     "Welcome to TrueStock",
			Message:   "Upload an invoice or connect your catalog to start tracking stock.",
			Type:      models.SeverityInfo,
			Timestamp: now,
			ActionURL: "/requests",
		},
		{
			ID:        uuid.New().String(),
			Title:     "Tip: low-stock alerts",
			Message:   "Products at or below their minimum stock appear in the alerts panel.",
			Type:      models.SeverityInfo,
			Timestamp: now.Add(-time.Minute),
			ActionURL: "/inventory",
		},
	}
}
