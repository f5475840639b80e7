// Package calculator is the allocation engine. Every function is pure and
// works on a models.Bill snapshot.
//
// Item costs are split by weighted ratios. Tax and tip are then apportioned
// to each person by their share of the subtotal:
//
//	person_total = person_subtotal + (tax + tip) × (person_subtotal / bill_subtotal)
//
// Tax and tip are never split evenly, so someone who ordered more also pays
// more of the tip.
package calculator

import "github.com/mmynk/billsplit/internal/models"

// Subtotal is the sum of all item costs.
func Subtotal(bill models.Bill) float64 {
	var sum float64
	for _, item := range bill.Items {
		sum += item.Cost
	}
	return sum
}

// AdjustmentAmount resolves a tax or tip setting against the subtotal.
// Unknown modes resolve to 0.
func AdjustmentAmount(adj models.Adjustment, subtotal float64) float64 {
	switch adj.Mode {
	case models.ModePercentage:
		return subtotal * (adj.Value / 100)
	case models.ModeAmount:
		return adj.Value
	default:
		return 0
	}
}

// TaxAmount returns the bill tax.
func TaxAmount(bill models.Bill) float64 {
	return AdjustmentAmount(bill.Tax, Subtotal(bill))
}

// TipAmount returns the bill tip.
func TipAmount(bill models.Bill) float64 {
	return AdjustmentAmount(bill.Tip, Subtotal(bill))
}

// GrandTotal is subtotal + tax + tip.
func GrandTotal(bill models.Bill) float64 {
	subtotal := Subtotal(bill)
	return subtotal + AdjustmentAmount(bill.Tax, subtotal) + AdjustmentAmount(bill.Tip, subtotal)
}

// TotalRatio sums the ratios of all splits on the item.
func TotalRatio(item models.Item) float64 {
	var total float64
	for _, s := range item.Splits {
		total += s.Ratio
	}
	return total
}

// Allocation returns the part of the item's cost assigned to the person.
// An item whose ratios sum to zero has no payer and allocates nothing.
func Allocation(item models.Item, personID string) float64 {
	totalRatio := TotalRatio(item)
	if totalRatio == 0 {
		return 0
	}
	return item.Cost * item.RatioFor(personID) / totalRatio
}

// PersonSubtotal sums the person's allocations over all items.
func PersonSubtotal(bill models.Bill, personID string) float64 {
	var sum float64
	for _, item := range bill.Items {
		sum += Allocation(item, personID)
	}
	return sum
}

// PersonShareRatio is the person's fraction of the bill subtotal, or 0 when
// the subtotal is 0.
func PersonShareRatio(bill models.Bill, personID string) float64 {
	return shareOf(PersonSubtotal(bill, personID), Subtotal(bill))
}

// PersonTotal is what the person owes including their share of tax and tip.
func PersonTotal(bill models.Bill, personID string) float64 {
	subtotal := Subtotal(bill)
	personSubtotal := PersonSubtotal(bill, personID)
	ratio := shareOf(personSubtotal, subtotal)
	tax := AdjustmentAmount(bill.Tax, subtotal) * ratio
	tip := AdjustmentAmount(bill.Tip, subtotal) * ratio
	return personSubtotal + tax + tip
}

// PersonItems lists the items the person has a split on, in bill order.
func PersonItems(bill models.Bill, personID string) []models.PersonItem {
	var items []models.PersonItem
	for _, item := range bill.Items {
		ratio := item.RatioFor(personID)
		if ratio == 0 {
			continue
		}
		items = append(items, models.PersonItem{
			ItemID:     item.ID,
			Name:       item.Name,
			ItemCost:   item.Cost,
			Ratio:      ratio,
			TotalRatio: TotalRatio(item),
			Amount:     Allocation(item, personID),
		})
	}
	return items
}

// CalculateSplit computes the bill totals and every person's split, in the
// order people appear on the bill.
func CalculateSplit(bill models.Bill) models.BillSummary {
	subtotal := Subtotal(bill)
	tax := AdjustmentAmount(bill.Tax, subtotal)
	tip := AdjustmentAmount(bill.Tip, subtotal)

	summary := models.BillSummary{
		Subtotal:   subtotal,
		Tax:        tax,
		Tip:        tip,
		GrandTotal: subtotal + tax + tip,
		People:     make([]models.PersonSplit, 0, len(bill.People)),
	}

	for _, person := range bill.People {
		personSubtotal := PersonSubtotal(bill, person.ID)
		ratio := shareOf(personSubtotal, subtotal)
		split := models.PersonSplit{
			PersonID:   person.ID,
			Name:       person.Name,
			Subtotal:   personSubtotal,
			ShareRatio: ratio,
			Tax:        tax * ratio,
			Tip:        tip * ratio,
			Items:      PersonItems(bill, person.ID),
		}
		split.Total = split.Subtotal + split.Tax + split.Tip
		summary.People = append(summary.People, split)
	}

	return summary
}

func shareOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}
