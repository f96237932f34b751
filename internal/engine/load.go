package engine

import "order_intake/internal/models"

// ComputeLoad sums the per-category workload of all orders delivering
// on the given date. Cancelled orders and the excluded order (0 = none)
// do not count. Each order pays a product's WorkloadOverhead once no
// matter the quantity; two orders with the same product are independent
// prep batches and each pay the overhead.
//
// The result carries an entry for every known category, zero when no
// order touches it.
func ComputeLoad(date string, orders []models.Order, excludeOrderID uint) map[models.Category]float64 {
	load := make(map[models.Category]float64, len(models.AllCategories))
	for _, category := range models.AllCategories {
		load[category] = 0
	}

	for _, order := range orders {
		if order.DeliveryDay() != date {
			continue
		}
		if order.Status == models.OrderCancelled {
			continue
		}
		if excludeOrderID != 0 && order.ID == excludeOrderID {
			continue
		}

		seen := make(map[uint]bool, len(order.Items))
		for _, item := range order.Items {
			load[item.Category] += item.Workload * float64(item.Quantity)
			if !seen[item.ProductID] {
				load[item.Category] += item.WorkloadOverhead
				seen[item.ProductID] = true
			}
		}
	}

	return load
}

// simulateCart adds a candidate cart on top of an existing load map,
// with the same once-per-product overhead rule applied within the cart
// itself, since the cart becomes a single new order.
func simulateCart(load map[models.Category]float64, cart []models.CartLine) map[models.Category]float64 {
	simulated := make(map[models.Category]float64, len(load))
	for category, value := range load {
		simulated[category] = value
	}

	seen := make(map[uint]bool, len(cart))
	for _, line := range cart {
		simulated[line.Category] += line.Workload * float64(line.Quantity)
		if !seen[line.ProductID] {
			simulated[line.Category] += line.WorkloadOverhead
			seen[line.ProductID] = true
		}
	}

	return simulated
}
