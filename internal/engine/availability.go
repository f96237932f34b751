package engine

import (
	"fmt"
	"time"

	"order_intake/internal/models"
)

// AvailabilityStatus classifies a (date, cart) pair. The set is closed;
// there is no state machine behind it, every call re-evaluates from
// scratch.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusClosed    AvailabilityStatus = "closed"
	StatusExceeds   AvailabilityStatus = "exceeds"
	StatusPast      AvailabilityStatus = "past"
	StatusTooSoon   AvailabilityStatus = "too_soon"
)

type AvailabilityResult struct {
	Status AvailabilityStatus `json:"status"`
	Reason string             `json:"reason,omitempty"`
}

// AvailabilityInput is the snapshot CheckAvailability runs on. Dates
// are YYYY-MM-DD strings; Today is supplied by the caller so the
// classification stays clock-free. ExcludeOrderID (0 = none) leaves one
// existing order out of the load, used when rescheduling it.
type AvailabilityInput struct {
	Date           string
	Today          string
	Cart           []models.CartLine
	Orders         []models.Order
	Capacity       CapacityConfig
	ExcludeOrderID uint
}

// CheckAvailability decides whether an order for the given cart and
// date can be admitted. Checks run in strict order, first match wins:
// past, too_soon, closed, exceeds, then available. Only categories
// actually present in the cart are compared against their limits, so an
// unrelated saturated category never blocks an order.
func CheckAvailability(in AvailabilityInput) AvailabilityResult {
	if in.Date < in.Today {
		return AvailabilityResult{Status: StatusPast, Reason: "date is in the past"}
	}

	leadDays := maxLeadDays(in.Cart)
	if leadDays > 0 {
		earliest := addDays(in.Today, leadDays)
		if in.Date < earliest {
			return AvailabilityResult{
				Status: StatusTooSoon,
				Reason: fmt.Sprintf("cart requires %d days of lead time, earliest date is %s", leadDays, earliest),
			}
		}
	}

	if in.Capacity.IsDateClosed(in.Date) {
		return AvailabilityResult{Status: StatusClosed, Reason: "closed on this date"}
	}

	simulated := simulateCart(ComputeLoad(in.Date, in.Orders, in.ExcludeOrderID), in.Cart)
	inCart := cartCategories(in.Cart)
	for _, category := range models.AllCategories {
		if !inCart[category] {
			continue
		}
		limit := in.Capacity.EffectiveLimit(in.Date, category)
		if simulated[category] > limit {
			return AvailabilityResult{
				Status: StatusExceeds,
				Reason: fmt.Sprintf("%s capacity exceeded (%.0f of %.0f)", category, simulated[category], limit),
			}
		}
	}

	return AvailabilityResult{Status: StatusAvailable}
}

// DateStatus is the calendar-rendering variant: status only, no reason.
func DateStatus(in AvailabilityInput) AvailabilityStatus {
	return CheckAvailability(in).Status
}

// maxLeadDays returns the binding lead time of a cart: the maximum
// across lines, not the sum. Empty cart means no constraint.
func maxLeadDays(cart []models.CartLine) int {
	lead := 0
	for _, line := range cart {
		if line.LeadTimeDays > lead {
			lead = line.LeadTimeDays
		}
	}
	return lead
}

func cartCategories(cart []models.CartLine) map[models.Category]bool {
	present := make(map[models.Category]bool, len(cart))
	for _, line := range cart {
		present[line.Category] = true
	}
	return present
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func addDays(date string, days int) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(time.DateOnly)
}
