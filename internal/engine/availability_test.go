package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_intake/internal/models"
)

func warmLine(productID uint, qty int, workload, overhead float64) models.CartLine {
	return models.CartLine{
		ProductID:        productID,
		Category:         models.CategoryWarm,
		Price:            10,
		Workload:         workload,
		WorkloadOverhead: overhead,
		Quantity:         qty,
	}
}

func TestCheckAvailability_PastDate(t *testing.T) {
	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-05-30",
		Today:    "2025-05-31",
		Cart:     []models.CartLine{warmLine(1, 1, 1, 0)},
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusPast, result.Status)
	assert.NotEmpty(t, result.Reason)
}

func TestCheckAvailability_PastBeatsEverything(t *testing.T) {
	// the closed day 2025-06-02 in the past still classifies as past
	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-02",
		Today:    "2025-06-10",
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusPast, result.Status)
}

func TestCheckAvailability_LeadTimeIsMaxNotSum(t *testing.T) {
	short := warmLine(1, 1, 1, 0)
	short.LeadTimeDays = 1
	long := warmLine(2, 1, 1, 0)
	long.Category = models.CategoryDessert
	long.LeadTimeDays = 3

	in := AvailabilityInput{
		Today:    "2025-06-10",
		Cart:     []models.CartLine{short, long},
		Capacity: testCapacity(),
	}

	in.Date = "2025-06-12"
	assert.Equal(t, StatusTooSoon, CheckAvailability(in).Status)

	// max lead is 3, not 1+3
	in.Date = "2025-06-13"
	assert.Equal(t, StatusAvailable, CheckAvailability(in).Status)
}

func TestCheckAvailability_EmptyCartNoLeadTime(t *testing.T) {
	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-10",
		Today:    "2025-06-10",
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusAvailable, result.Status)
}

func TestCheckAvailability_ClosedDate(t *testing.T) {
	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-02",
		Today:    "2025-05-01",
		Cart:     []models.CartLine{warmLine(1, 1, 1, 0)},
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusClosed, result.Status)
}

func TestCheckAvailability_ExceedsCapacity(t *testing.T) {
	// existing WARM load 90 of 100; cart adds 5*3 + 2 overhead = 107
	existing := []models.Order{
		orderOn(t, 1, "2025-06-05", models.OrderConfirmed, warmItem(3, 18, 5, 0)),
	}
	cart := []models.CartLine{warmLine(4, 3, 5, 2)}

	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-05",
		Today:    "2025-05-01",
		Cart:     cart,
		Orders:   existing,
		Capacity: testCapacity(),
	})

	require.Equal(t, StatusExceeds, result.Status)
	assert.Contains(t, result.Reason, "WARM")
}

func TestCheckAvailability_ExactlyAtLimitIsAvailable(t *testing.T) {
	existing := []models.Order{
		orderOn(t, 1, "2025-06-05", models.OrderConfirmed, warmItem(3, 18, 5, 0)),
	}
	// 90 + 2*4 + 2 = 100, not over the limit
	cart := []models.CartLine{warmLine(4, 4, 2, 2)}

	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-05",
		Today:    "2025-05-01",
		Cart:     cart,
		Orders:   existing,
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusAvailable, result.Status)
}

func TestCheckAvailability_UnrelatedCategorySaturationIgnored(t *testing.T) {
	// DRINK is fully booked, but the cart only orders WARM
	drink := models.OrderItem{
		ProductID: 5,
		Category:  models.CategoryDrink,
		Quantity:  1,
		Workload:  500,
	}
	existing := []models.Order{
		orderOn(t, 1, "2025-06-05", models.OrderConfirmed, drink),
	}

	result := CheckAvailability(AvailabilityInput{
		Date:     "2025-06-05",
		Today:    "2025-05-01",
		Cart:     []models.CartLine{warmLine(4, 1, 5, 2)},
		Orders:   existing,
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusAvailable, result.Status)
}

func TestCheckAvailability_ExcludeOrderForReschedule(t *testing.T) {
	// order 1 alone fills the day; re-checking it against itself passes
	existing := []models.Order{
		orderOn(t, 1, "2025-06-05", models.OrderConfirmed, warmItem(3, 20, 5, 0)),
	}
	cart := []models.CartLine{warmLine(3, 20, 5, 0)}

	in := AvailabilityInput{
		Date:     "2025-06-05",
		Today:    "2025-05-01",
		Cart:     cart,
		Orders:   existing,
		Capacity: testCapacity(),
	}
	assert.Equal(t, StatusExceeds, CheckAvailability(in).Status)

	in.ExcludeOrderID = 1
	assert.Equal(t, StatusAvailable, CheckAvailability(in).Status)
}

func TestCheckAvailability_Idempotent(t *testing.T) {
	existing := []models.Order{
		orderOn(t, 1, "2025-06-05", models.OrderConfirmed, warmItem(3, 18, 5, 0)),
	}
	in := AvailabilityInput{
		Date:     "2025-06-05",
		Today:    "2025-05-01",
		Cart:     []models.CartLine{warmLine(4, 3, 5, 2)},
		Orders:   existing,
		Capacity: testCapacity(),
	}

	first := CheckAvailability(in)
	second := CheckAvailability(in)

	assert.Equal(t, first, second)
}

func TestDateStatus_StatusOnly(t *testing.T) {
	status := DateStatus(AvailabilityInput{
		Date:     "2025-06-02",
		Today:    "2025-05-01",
		Capacity: testCapacity(),
	})

	assert.Equal(t, StatusClosed, status)
}
