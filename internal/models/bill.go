package models

// Bill is the document being split. It is treated as an immutable value:
// the editor package returns modified copies instead of changing it in place.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Name is the optional human-readable name shown at the top of exports.
	Name string

	// People are the participants, in the order they were added.
	// A valid bill always has at least one person.
	People []Person

	// Items are the line items, in the order they were added.
	Items []Item

	// Tax is applied to the subtotal and shared by subtotal share.
	Tax Adjustment

	// Tip is applied to the subtotal and shared by subtotal share.
	Tip Adjustment

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last stored edit.
	UpdatedAt int64
}

// Person represents one participant.
type Person struct {
	ID   string
	Name string
}

// Item represents a single line item on a bill.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string

	// Cost is the last successfully evaluated value of CostExpression.
	Cost float64

	// CostExpression is the raw text the user typed, such as "12.5" or "3*4.25".
	// It may be invalid, in which case Cost keeps its previous value.
	CostExpression string

	// Splits assign weighted shares of the item to people.
	// At most one split exists per person and every ratio is positive.
	Splits []Split
}

// Split is one person's weight on an item. The person's share of the item is
// Ratio divided by the sum of all ratios on the item.
type Split struct {
	PersonID string
	Ratio    float64
}

// AdjustmentMode selects how an Adjustment value is interpreted.
type AdjustmentMode string

const (
	// ModePercentage treats the value as a percentage of the subtotal.
	ModePercentage AdjustmentMode = "percentage"
	// ModeAmount treats the value as a flat amount.
	ModeAmount AdjustmentMode = "amount"
)

// Valid reports whether m is a known mode.
func (m AdjustmentMode) Valid() bool {
	return m == ModePercentage || m == ModeAmount
}

// Adjustment is a tax or tip setting.
type Adjustment struct {
	Mode  AdjustmentMode
	Value float64
}

// FindPerson returns the person with the given ID.
func (b Bill) FindPerson(id string) (Person, bool) {
	for _, p := range b.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// FindItem returns the item with the given ID.
func (b Bill) FindItem(id string) (Item, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// RatioFor returns the person's ratio on the item, or 0 when there is no split.
func (it Item) RatioFor(personID string) float64 {
	for _, s := range it.Splits {
		if s.PersonID == personID {
			return s.Ratio
		}
	}
	return 0
}
