package tracking

import "github.com/medireach/storefront/internal/models"

// TimelineStep is one entry in the five-step delivery progress display.
type TimelineStep struct {
	Key       string
	Label     string
	Completed bool
	Active    bool
}

var stepLabels = map[string]string{
	models.OrderStatusPending:    "Order Placed",
	models.OrderStatusProcessing: "Processing",
	models.OrderStatusConfirmed:  "Confirmed",
	models.OrderStatusInTransit:  "In Transit",
	models.OrderStatusDelivered:  "Delivered",
}

// ProjectTimeline maps an order status to the fixed five-step progression.
// Steps at or before the current status are completed; the current one is
// also active. An unknown status completes nothing.
func ProjectTimeline(status string) []TimelineStep {
	currentIndex := -1
	for i, s := range models.StatusOrder {
		if s == status {
			currentIndex = i
			break
		}
	}

	steps := make([]TimelineStep, len(models.StatusOrder))
	for i, key := range models.StatusOrder {
		steps[i] = TimelineStep{
			Key:       key,
			Label:     stepLabels[key],
			Completed: currentIndex >= 0 && i <= currentIndex,
			Active:    i == currentIndex,
		}
	}
	return steps
}
