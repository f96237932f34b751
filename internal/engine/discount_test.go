package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_intake/internal/models"
)

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := mustDate(t, value)
	return &parsed
}

func priceLine(category models.Category, price float64, qty int) models.CartLine {
	return models.CartLine{
		ProductID: uint(price),
		Category:  category,
		Price:     price,
		Quantity:  qty,
	}
}

func summerTen() models.DiscountCode {
	return models.DiscountCode{
		ID:            1,
		Code:          "SUMMER10",
		Type:          models.DiscountPercentage,
		Value:         10,
		MinOrderValue: 200,
		Stackable:     true,
		Enabled:       true,
	}
}

func TestValidateDiscount_UnknownCode(t *testing.T) {
	result := ValidateDiscount("NOPE", nil, []models.DiscountCode{summerTen()}, nil, "2025-06-01")

	assert.False(t, result.Valid)
	assert.Equal(t, FailureInvalidCode, result.Failure)
}

func TestValidateDiscount_CaseInsensitiveLookup(t *testing.T) {
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	result := ValidateDiscount("summer10", cart, []models.DiscountCode{summerTen()}, nil, "2025-06-01")

	require.True(t, result.Valid)
	assert.Equal(t, "SUMMER10", result.Code.Code)
}

func TestValidateDiscount_Disabled(t *testing.T) {
	code := summerTen()
	code.Enabled = false
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	result := ValidateDiscount("SUMMER10", cart, []models.DiscountCode{code}, nil, "2025-06-01")

	assert.Equal(t, FailureInactive, result.Failure)
}

func TestValidateDiscount_PercentageFloors(t *testing.T) {
	// subtotal 250, 10% => floor(25.0) = 25
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	result := ValidateDiscount("SUMMER10", cart, []models.DiscountCode{summerTen()}, nil, "2025-06-01")

	require.True(t, result.Valid)
	assert.Equal(t, 25.0, result.Amount)
}

func TestValidateDiscount_FixedNeverExceedsEligibleSubtotal(t *testing.T) {
	code := models.DiscountCode{
		ID:      2,
		Code:    "TAKE100",
		Type:    models.DiscountFixed,
		Value:   100,
		Enabled: true,
	}
	cart := []models.CartLine{priceLine(models.CategoryCold, 60, 1)}

	result := ValidateDiscount("TAKE100", cart, []models.DiscountCode{code}, nil, "2025-06-01")

	require.True(t, result.Valid)
	assert.Equal(t, 60.0, result.Amount)
}

func TestValidateDiscount_MinimumNotMet(t *testing.T) {
	cart := []models.CartLine{priceLine(models.CategoryWarm, 99, 2)}

	result := ValidateDiscount("SUMMER10", cart, []models.DiscountCode{summerTen()}, nil, "2025-06-01")

	assert.Equal(t, FailureMinimumNotMet, result.Failure)
}

func TestValidateDiscount_DateWindow(t *testing.T) {
	code := summerTen()
	code.ValidFrom = datePtr(t, "2025-06-01")
	code.ValidTo = datePtr(t, "2025-08-31")
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}
	catalog := []models.DiscountCode{code}

	assert.Equal(t, FailureNotYetValid, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-05-31").Failure)
	assert.Equal(t, FailureExpired, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-09-01").Failure)
	// window bounds are inclusive
	assert.True(t, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-06-01").Valid)
	assert.True(t, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-08-31").Valid)
}

func TestValidateDiscount_RestrictedCategories(t *testing.T) {
	code := models.DiscountCode{
		ID:            3,
		Code:          "DESSERTDEAL",
		Type:          models.DiscountPercentage,
		Value:         20,
		MinOrderValue: 50,
		Enabled:       true,
		Categories: []models.DiscountCategory{
			{Category: models.CategoryDessert},
		},
	}
	catalog := []models.DiscountCode{code}

	// no dessert in cart at all
	warmOnly := []models.CartLine{priceLine(models.CategoryWarm, 100, 1)}
	assert.Equal(t, FailureNotApplicable, ValidateDiscount("DESSERTDEAL", warmOnly, catalog, nil, "2025-06-01").Failure)

	// the restricted subtotal is the minimum base: 40 of dessert misses
	// the 50 minimum even though the full cart is 140
	mixed := []models.CartLine{
		priceLine(models.CategoryWarm, 100, 1),
		priceLine(models.CategoryDessert, 40, 1),
	}
	assert.Equal(t, FailureMinimumNotMet, ValidateDiscount("DESSERTDEAL", mixed, catalog, nil, "2025-06-01").Failure)

	// and the restricted subtotal is the discount base: 20% of 60
	eligible := []models.CartLine{
		priceLine(models.CategoryWarm, 100, 1),
		priceLine(models.CategoryDessert, 60, 1),
	}
	result := ValidateDiscount("DESSERTDEAL", eligible, catalog, nil, "2025-06-01")
	require.True(t, result.Valid)
	assert.Equal(t, 12.0, result.Amount)
}

func TestValidateDiscount_UsageRecountedFromOrders(t *testing.T) {
	code := summerTen()
	code.MaxUsage = 2
	catalog := []models.DiscountCode{code}
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	used := func(id uint, status models.OrderStatus) models.Order {
		order := orderOn(t, id, "2025-05-20", status)
		order.Discounts = []models.OrderDiscount{{Code: "SUMMER10", Amount: 10}}
		return order
	}

	orders := []models.Order{used(1, models.OrderDelivered), used(2, models.OrderConfirmed)}
	assert.Equal(t, FailureUsedUp, ValidateDiscount("SUMMER10", cart, catalog, orders, "2025-06-01").Failure)

	// cancelling one of the orders frees the slot again
	orders[1].Status = models.OrderCancelled
	assert.True(t, ValidateDiscount("SUMMER10", cart, catalog, orders, "2025-06-01").Valid)
}

func TestDiscountUsage_ZeroMaxMeansUnlimited(t *testing.T) {
	code := summerTen()
	code.MaxUsage = 0
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	orders := make([]models.Order, 0, 50)
	for i := uint(1); i <= 50; i++ {
		order := orderOn(t, i, "2025-05-20", models.OrderDelivered)
		order.Discounts = []models.OrderDiscount{{Code: "SUMMER10", Amount: 10}}
		orders = append(orders, order)
	}

	assert.True(t, ValidateDiscount("SUMMER10", cart, []models.DiscountCode{code}, orders, "2025-06-01").Valid)
	assert.Equal(t, 50, DiscountUsage("summer10", orders))
}

func TestStackDiscount_NonStackableBlocksEverything(t *testing.T) {
	exclusive := summerTen()
	exclusive.Code = "EXCLUSIVE"
	exclusive.Stackable = false
	stackable := summerTen()
	catalog := []models.DiscountCode{exclusive, stackable}
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	active, failure := StackDiscount(nil, ValidateDiscount("EXCLUSIVE", cart, catalog, nil, "2025-06-01"), catalog)
	require.Equal(t, FailureNone, failure)
	require.Len(t, active, 1)

	// a stackable code cannot join a non-stackable one
	_, failure = StackDiscount(active, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-06-01"), catalog)
	assert.Equal(t, FailureNotStackable, failure)
}

func TestStackDiscount_StackableCodesAreAdditive(t *testing.T) {
	first := summerTen()
	second := models.DiscountCode{
		ID:        4,
		Code:      "FIVER",
		Type:      models.DiscountFixed,
		Value:     5,
		Stackable: true,
		Enabled:   true,
	}
	catalog := []models.DiscountCode{first, second}
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}

	active, failure := StackDiscount(nil, ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-06-01"), catalog)
	require.Equal(t, FailureNone, failure)
	active, failure = StackDiscount(active, ValidateDiscount("FIVER", cart, catalog, nil, "2025-06-01"), catalog)
	require.Equal(t, FailureNone, failure)

	require.Len(t, active, 2)
	assert.Equal(t, 30.0, DiscountTotal(active))
}

func TestStackDiscount_DuplicateRejected(t *testing.T) {
	catalog := []models.DiscountCode{summerTen()}
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}
	result := ValidateDiscount("SUMMER10", cart, catalog, nil, "2025-06-01")

	active, _ := StackDiscount(nil, result, catalog)
	_, failure := StackDiscount(active, result, catalog)

	assert.Equal(t, FailureAlreadyApplied, failure)
}

func TestRevalidateDiscounts_DropsAndRefreshes(t *testing.T) {
	catalog := []models.DiscountCode{summerTen()}
	cart := []models.CartLine{priceLine(models.CategoryWarm, 125, 2)}
	active := []models.AppliedDiscount{{Code: "SUMMER10", Amount: 25}}

	// cart shrinks below the minimum: the code is silently dropped
	smaller := []models.CartLine{priceLine(models.CategoryWarm, 50, 1)}
	kept, removed := RevalidateDiscounts(active, smaller, catalog, nil, "2025-06-01")
	assert.Empty(t, kept)
	assert.Equal(t, []string{"SUMMER10"}, removed)

	// cart grows: the amount is recomputed, not locked in
	bigger := append(cart, priceLine(models.CategoryCold, 50, 1))
	kept, removed = RevalidateDiscounts(active, bigger, catalog, nil, "2025-06-01")
	require.Len(t, kept, 1)
	assert.Empty(t, removed)
	assert.Equal(t, 30.0, kept[0].Amount)
}
