package models

// PersonItem represents an item's share for one person.
type PersonItem struct {
	ItemID     string
	Name       string
	ItemCost   float64 // Full cost of the item
	Ratio      float64 // This person's ratio
	TotalRatio float64 // Sum of all ratios on the item
	Amount     float64 // This person's share of the item
}

// PersonSplit represents one person's calculated share of a bill.
// This is the output of the split calculation.
type PersonSplit struct {
	PersonID string
	Name     string

	// Subtotal is the sum of this person's item allocations (pre-tax).
	Subtotal float64

	// ShareRatio is Subtotal divided by the bill subtotal, 0 for an empty bill.
	ShareRatio float64

	// Tax is this person's proportional share of the bill tax.
	// Calculated as: bill_tax × share_ratio
	Tax float64

	// Tip is this person's proportional share of the bill tip.
	Tip float64

	// Total is the final amount this person owes (subtotal + tax + tip).
	Total float64

	// Items are the items this person has a split on, with their share amounts.
	Items []PersonItem
}

// BillSummary holds the bill-level totals together with every person's split.
type BillSummary struct {
	Subtotal   float64
	Tax        float64
	Tip        float64
	GrandTotal float64
	People     []PersonSplit
}
