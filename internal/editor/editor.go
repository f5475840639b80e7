// Package editor applies user edits to a bill document.
//
// Every function takes a models.Bill by value and returns the updated bill.
// Slices are copied before they are changed, so the caller's bill is never
// modified and earlier snapshots stay valid. Edits that reference an unknown
// person or item return the bill unchanged.
package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/expr"
	"github.com/mmynk/billsplit/internal/models"
)

const (
	defaultItemName       = "New Item"
	defaultCostExpression = "0"
)

// newID generates person and item IDs. Tests may replace it.
var newID = uuid.NewString

// New returns an empty bill with a single person.
func New(name string) models.Bill {
	return models.Bill{
		Name:   name,
		People: []models.Person{{ID: newID(), Name: personName(1)}},
		Tax:    models.Adjustment{Mode: models.ModeAmount},
		Tip:    models.Adjustment{Mode: models.ModePercentage},
	}
}

// Rename sets the bill name.
func Rename(bill models.Bill, name string) models.Bill {
	bill.Name = name
	return bill
}

// AddPerson appends a person and returns the new person's ID. An empty name
// becomes "Person N", N being the new head count.
func AddPerson(bill models.Bill, name string) (models.Bill, string) {
	if strings.TrimSpace(name) == "" {
		name = personName(len(bill.People) + 1)
	}
	p := models.Person{ID: newID(), Name: name}
	bill.People = append(clonePeople(bill.People), p)
	return bill, p.ID
}

// RenamePerson changes a person's display name.
func RenamePerson(bill models.Bill, personID, name string) models.Bill {
	i := indexOfPerson(bill.People, personID)
	if i < 0 {
		return bill
	}
	bill.People = clonePeople(bill.People)
	bill.People[i].Name = name
	return bill
}

// DeletePerson removes a person together with their splits on every item.
// The last remaining person cannot be deleted.
func DeletePerson(bill models.Bill, personID string) models.Bill {
	i := indexOfPerson(bill.People, personID)
	if i < 0 || len(bill.People) == 1 {
		return bill
	}

	people := make([]models.Person, 0, len(bill.People)-1)
	people = append(people, bill.People[:i]...)
	bill.People = append(people, bill.People[i+1:]...)

	items := cloneItems(bill.Items)
	for j := range items {
		items[j].Splits = withoutSplit(items[j].Splits, personID)
	}
	bill.Items = items
	return bill
}

// AddItem appends an item with zero cost and no splits and returns its ID.
func AddItem(bill models.Bill, name string) (models.Bill, string) {
	if strings.TrimSpace(name) == "" {
		name = defaultItemName
	}
	it := models.Item{ID: newID(), Name: name, CostExpression: defaultCostExpression}
	bill.Items = append(cloneItems(bill.Items), it)
	return bill, it.ID
}

// RenameItem changes an item's name.
func RenameItem(bill models.Bill, itemID, name string) models.Bill {
	return updateItem(bill, itemID, func(it *models.Item) {
		it.Name = name
	})
}

// DeleteItem removes an item.
func DeleteItem(bill models.Bill, itemID string) models.Bill {
	i := indexOfItem(bill.Items, itemID)
	if i < 0 {
		return bill
	}
	items := make([]models.Item, 0, len(bill.Items)-1)
	items = append(items, bill.Items[:i]...)
	bill.Items = append(items, bill.Items[i+1:]...)
	return bill
}

// SetCostExpression records the text being typed into an item's cost field
// without changing its cost.
func SetCostExpression(bill models.Bill, itemID, text string) models.Bill {
	return updateItem(bill, itemID, func(it *models.Item) {
		it.CostExpression = text
	})
}

// EvaluateCost evaluates the item's cost expression. When the expression is
// invalid the previous cost is kept along with the typed text.
func EvaluateCost(bill models.Bill, itemID string) models.Bill {
	it, ok := bill.FindItem(itemID)
	if !ok {
		return bill
	}
	cost, err := expr.EvaluateFloat(it.CostExpression)
	if err != nil || math.IsInf(cost, 0) || math.IsNaN(cost) {
		return bill
	}
	return updateItem(bill, itemID, func(it *models.Item) {
		it.Cost = cost
	})
}

// SetCost records text as the item's cost expression and evaluates it.
func SetCost(bill models.Bill, itemID, text string) models.Bill {
	return EvaluateCost(SetCostExpression(bill, itemID, text), itemID)
}

// SetSplit sets a person's ratio on an item. A ratio that is not a positive
// finite number removes the split. An existing split keeps its position.
func SetSplit(bill models.Bill, itemID, personID string, ratio float64) models.Bill {
	if indexOfPerson(bill.People, personID) < 0 {
		return bill
	}
	return updateItem(bill, itemID, func(it *models.Item) {
		if !(ratio > 0) || math.IsInf(ratio, 0) {
			it.Splits = withoutSplit(it.Splits, personID)
			return
		}
		for i := range it.Splits {
			if it.Splits[i].PersonID == personID {
				it.Splits[i].Ratio = ratio
				return
			}
		}
		it.Splits = append(it.Splits, models.Split{PersonID: personID, Ratio: ratio})
	})
}

// SplitEvenly gives every person a ratio of 1 on the item.
func SplitEvenly(bill models.Bill, itemID string) models.Bill {
	return updateItem(bill, itemID, func(it *models.Item) {
		splits := make([]models.Split, len(bill.People))
		for i, p := range bill.People {
			splits[i] = models.Split{PersonID: p.ID, Ratio: 1}
		}
		it.Splits = splits
	})
}

// SetTax replaces the tax setting.
func SetTax(bill models.Bill, adj models.Adjustment) models.Bill {
	bill.Tax = adj
	return bill
}

// SetTip replaces the tip setting.
func SetTip(bill models.Bill, adj models.Adjustment) models.Bill {
	bill.Tip = adj
	return bill
}

// ParseAdjustment builds a tax or tip setting from a mode name and the text
// typed as its value. The leading number of text is used, so "10%" is 10;
// text that does not start with a number counts as 0.
func ParseAdjustment(mode, text string) (models.Adjustment, error) {
	m := models.AdjustmentMode(mode)
	if !m.Valid() {
		return models.Adjustment{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	v, err := strconv.ParseFloat(numericPrefix(strings.TrimSpace(text)), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		v = 0
	}
	return models.Adjustment{Mode: m, Value: v}, nil
}

// numericPrefix returns the longest leading decimal number in s: an optional
// sign, digits with an optional fraction, and an optional exponent.
func numericPrefix(s string) string {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	skipDigits := func(i int) int {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		return i
	}

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	end := skipDigits(i)
	hasDigits := end > i
	if end < len(s) && s[end] == '.' {
		if j := skipDigits(end + 1); hasDigits || j > end+1 {
			end, hasDigits = j, true
		}
	}
	if !hasDigits {
		return ""
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if k := skipDigits(j); k > j {
			end = k
		}
	}
	return s[:end]
}

func personName(n int) string {
	return fmt.Sprintf("Person %d", n)
}

func updateItem(bill models.Bill, itemID string, fn func(*models.Item)) models.Bill {
	i := indexOfItem(bill.Items, itemID)
	if i < 0 {
		return bill
	}
	bill.Items = cloneItems(bill.Items)
	fn(&bill.Items[i])
	return bill
}

func indexOfPerson(people []models.Person, id string) int {
	for i, p := range people {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOfItem(items []models.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func withoutSplit(splits []models.Split, personID string) []models.Split {
	out := make([]models.Split, 0, len(splits))
	for _, s := range splits {
		if s.PersonID != personID {
			out = append(out, s)
		}
	}
	return out
}

func clonePeople(people []models.Person) []models.Person {
	return append([]models.Person(nil), people...)
}

// cloneItems copies the items and each item's splits.
func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		it.Splits = append([]models.Split(nil), it.Splits...)
		out[i] = it
	}
	return out
}
