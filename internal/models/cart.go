package models

// CartLine is a product snapshot plus quantity. Lines live in the
// checkout session only; the product fields are copied so that catalog
// edits during checkout don't shift the numbers under the customer.
type CartLine struct {
	ProductID        uint     `json:"product_id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Price            float64  `json:"price"`
	Workload         float64  `json:"workload"`
	WorkloadOverhead float64  `json:"workload_overhead"`
	Volume           float64  `json:"volume"`
	LeadTimeDays     int      `json:"lead_time_days"`
	Quantity         int      `json:"quantity"`
}

// LineFromProduct snapshots a catalog product into a cart line.
func LineFromProduct(p *Product, quantity int) CartLine {
	return CartLine{
		ProductID:        p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Price:            p.Price,
		Workload:         p.Workload,
		WorkloadOverhead: p.WorkloadOverhead,
		Volume:           p.Volume,
		LeadTimeDays:     p.LeadTimeDays,
		Quantity:         quantity,
	}
}

// CartSubtotal sums price*quantity over all lines.
func CartSubtotal(lines []CartLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
