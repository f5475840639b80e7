// Package export renders the plain-text bill summaries users copy to the
// clipboard.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/money"
)

// ErrPersonNotFound is returned when a summary is requested for a person who
// is not on the bill.
var ErrPersonNotFound = errors.New("person not found")

var rule = strings.Repeat("=", 60)

// PersonSummary renders one person's items and totals.
func PersonSummary(bill models.Bill, personID string) (string, error) {
	person, ok := bill.FindPerson(personID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPersonNotFound, personID)
	}
	split := findSplit(calculator.CalculateSplit(bill), personID)

	var b strings.Builder
	if bill.Name != "" {
		fmt.Fprintf(&b, "%s\n", bill.Name)
	}
	fmt.Fprintf(&b, "Bill Summary for %s\n", person.Name)
	fmt.Fprintf(&b, "%s\n\n", rule)
	b.WriteString("Items:\n")
	for _, it := range split.Items {
		fmt.Fprintf(&b, "  %s - %s (%s/%s): %s\n",
			it.Name, money.Format(it.ItemCost), ratio(it.Ratio), ratio(it.TotalRatio), money.Format(it.Amount))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", money.Format(split.Subtotal))
	fmt.Fprintf(&b, "Tax: %s\n", money.Format(split.Tax))
	fmt.Fprintf(&b, "Tip: %s\n", money.Format(split.Tip))
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Total: %s\n", money.Format(split.Total))
	return b.String(), nil
}

// FullSummary renders every item with its splits, a per-person breakdown and
// the bill totals.
func FullSummary(bill models.Bill) string {
	summary := calculator.CalculateSplit(bill)

	var b strings.Builder
	if bill.Name != "" {
		fmt.Fprintf(&b, "%s\n", strings.ToUpper(bill.Name))
	}
	b.WriteString("FULL BILL SUMMARY\n")
	fmt.Fprintf(&b, "%s\n\n", rule)

	b.WriteString("ITEMS:\n")
	for _, item := range bill.Items {
		fmt.Fprintf(&b, "%s - %s\n", item.Name, money.Format(item.Cost))
		totalRatio := calculator.TotalRatio(item)
		for _, s := range item.Splits {
			name := s.PersonID
			if p, ok := bill.FindPerson(s.PersonID); ok {
				name = p.Name
			}
			fmt.Fprintf(&b, "  %s: %s/%s = %s\n",
				name, ratio(s.Ratio), ratio(totalRatio), money.Format(calculator.Allocation(item, s.PersonID)))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("BREAKDOWN BY PERSON:\n\n")
	for _, p := range summary.People {
		fmt.Fprintf(&b, "%s:\n", p.Name)
		fmt.Fprintf(&b, "  Subtotal: %s\n", money.Format(p.Subtotal))
		fmt.Fprintf(&b, "  Tax: %s\n", money.Format(p.Tax))
		fmt.Fprintf(&b, "  Tip: %s\n", money.Format(p.Tip))
		fmt.Fprintf(&b, "  Total: %s\n\n", money.Format(p.Total))
	}

	fmt.Fprintf(&b, "%s\n", rule)
	b.WriteString("BILL TOTALS:\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money.Format(summary.Subtotal))
	fmt.Fprintf(&b, "Tax: %s\n", money.Format(summary.Tax))
	fmt.Fprintf(&b, "Tip: %s\n", money.Format(summary.Tip))
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "GRAND TOTAL: %s\n", money.Format(summary.GrandTotal))
	return b.String()
}

func findSplit(summary models.BillSummary, personID string) models.PersonSplit {
	for _, p := range summary.People {
		if p.PersonID == personID {
			return p
		}
	}
	return models.PersonSplit{}
}

// ratio prints a ratio in its shortest form: 1, 0.5, 2.25.
func ratio(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
