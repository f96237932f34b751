package engine

import (
	"math"
	"strings"

	"order_intake/internal/models"
)

// DiscountFailure is the machine-distinguishable reason a code was
// rejected. Empty on success.
type DiscountFailure string

const (
	FailureNone           DiscountFailure = ""
	FailureInvalidCode    DiscountFailure = "invalid_code"
	FailureInactive       DiscountFailure = "inactive"
	FailureUsedUp         DiscountFailure = "used_up"
	FailureNotYetValid    DiscountFailure = "not_yet_valid"
	FailureExpired        DiscountFailure = "expired"
	FailureNotApplicable  DiscountFailure = "not_applicable"
	FailureMinimumNotMet  DiscountFailure = "minimum_not_met"
	FailureAlreadyApplied DiscountFailure = "already_applied"
	FailureNotStackable   DiscountFailure = "not_stackable"
)

type DiscountResult struct {
	Valid   bool                 `json:"valid"`
	Code    *models.DiscountCode `json:"-"`
	Amount  float64              `json:"amount,omitempty"`
	Failure DiscountFailure      `json:"failure,omitempty"`
}

func failDiscount(failure DiscountFailure) DiscountResult {
	return DiscountResult{Failure: failure}
}

// ValidateDiscount runs the full check sequence for a code against the
// live cart, short-circuiting on the first failure: lookup, enabled,
// usage limit, date window, applicability and minimum, amount.
//
// The usage limit is always recounted from non-cancelled orders'
// applied discounts; the cached counter on the code is informational
// only, so a crashed checkout can never permanently burn a slot.
//
// When the code restricts categories, the restricted subtotal is both
// the minimum-order base and the discount base.
func ValidateDiscount(code string, cart []models.CartLine, catalog []models.DiscountCode, orders []models.Order, today string) DiscountResult {
	discount := findCode(catalog, code)
	if discount == nil {
		return failDiscount(FailureInvalidCode)
	}
	if !discount.Enabled {
		return failDiscount(FailureInactive)
	}

	if discount.MaxUsage > 0 && DiscountUsage(discount.Code, orders) >= discount.MaxUsage {
		return failDiscount(FailureUsedUp)
	}

	if discount.ValidFrom != nil && today < dayKey(*discount.ValidFrom) {
		return failDiscount(FailureNotYetValid)
	}
	if discount.ValidTo != nil && today > dayKey(*discount.ValidTo) {
		return failDiscount(FailureExpired)
	}

	base := models.CartSubtotal(cart)
	if restricted := discount.ApplicableCategories(); len(restricted) > 0 {
		base = 0
		matched := false
		for _, line := range cart {
			if containsCategory(restricted, line.Category) {
				base += line.Price * float64(line.Quantity)
				matched = true
			}
		}
		if !matched {
			return failDiscount(FailureNotApplicable)
		}
	}
	if base < discount.MinOrderValue {
		return failDiscount(FailureMinimumNotMet)
	}

	amount := 0.0
	switch discount.Type {
	case models.DiscountPercentage:
		amount = math.Floor(base * discount.Value / 100)
	case models.DiscountFixed:
		amount = math.Min(discount.Value, base)
	}

	return DiscountResult{Valid: true, Code: discount, Amount: amount}
}

// DiscountUsage is the authoritative usage count for a code: the number
// of non-cancelled orders that applied it.
func DiscountUsage(code string, orders []models.Order) int {
	count := 0
	for _, order := range orders {
		if order.Status == models.OrderCancelled {
			continue
		}
		for _, applied := range order.Discounts {
			if strings.EqualFold(applied.Code, code) {
				count++
				break
			}
		}
	}
	return count
}

// StackDiscount adds a freshly validated code to the active set.
// Duplicates are rejected, and a non-empty set only grows when every
// member, the new code included, is stackable.
func StackDiscount(active []models.AppliedDiscount, result DiscountResult, catalog []models.DiscountCode) ([]models.AppliedDiscount, DiscountFailure) {
	if !result.Valid || result.Code == nil {
		return active, result.Failure
	}
	for _, applied := range active {
		if strings.EqualFold(applied.Code, result.Code.Code) {
			return active, FailureAlreadyApplied
		}
	}
	if len(active) > 0 {
		if !result.Code.Stackable {
			return active, FailureNotStackable
		}
		for _, applied := range active {
			existing := findCode(catalog, applied.Code)
			if existing == nil || !existing.Stackable {
				return active, FailureNotStackable
			}
		}
	}
	return append(active, models.AppliedDiscount{Code: result.Code.Code, Amount: result.Amount}), FailureNone
}

// RevalidateDiscounts re-runs validation for every active code against
// the current cart, refreshing amounts and silently dropping codes that
// no longer qualify. The dropped codes are returned so the caller can
// surface the removal; a discount is never locked in before submission.
func RevalidateDiscounts(active []models.AppliedDiscount, cart []models.CartLine, catalog []models.DiscountCode, orders []models.Order, today string) (kept []models.AppliedDiscount, removed []string) {
	kept = make([]models.AppliedDiscount, 0, len(active))
	for _, applied := range active {
		result := ValidateDiscount(applied.Code, cart, catalog, orders, today)
		if result.Valid {
			kept = append(kept, models.AppliedDiscount{Code: result.Code.Code, Amount: result.Amount})
		} else {
			removed = append(removed, applied.Code)
		}
	}
	return kept, removed
}

// DiscountTotal sums the applied amounts.
func DiscountTotal(active []models.AppliedDiscount) float64 {
	total := 0.0
	for _, applied := range active {
		total += applied.Amount
	}
	return total
}

func findCode(catalog []models.DiscountCode, code string) *models.DiscountCode {
	for i := range catalog {
		if strings.EqualFold(catalog[i].Code, code) {
			return &catalog[i]
		}
	}
	return nil
}

func containsCategory(categories []models.Category, category models.Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
