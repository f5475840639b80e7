package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/models"
)

func testBill() models.Bill {
	return models.Bill{
		Name: "Friday Dinner",
		People: []models.Person{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
		Items: []models.Item{
			{ID: "1", Name: "Pizza", Cost: 30, Splits: []models.Split{
				{PersonID: "a", Ratio: 2},
				{PersonID: "b", Ratio: 1},
			}},
			{ID: "2", Name: "Salad", Cost: 10, Splits: []models.Split{
				{PersonID: "b", Ratio: 0.5},
			}},
		},
		Tax: models.Adjustment{Mode: models.ModePercentage, Value: 10},
		Tip: models.Adjustment{Mode: models.ModeAmount, Value: 8},
	}
}

func TestPersonSummary(t *testing.T) {
	got, err := PersonSummary(testBill(), "b")
	require.NoError(t, err)

	want := "Friday Dinner\n" +
		"Bill Summary for Bob\n" +
		"============================================================\n\n" +
		"Items:\n" +
		"  Pizza - 30.00 (1/3): 10.00\n" +
		"  Salad - 10.00 (0.5/0.5): 10.00\n" +
		"\nSubtotal: 20.00\n" +
		"Tax: 2.00\n" +
		"Tip: 4.00\n" +
		"============================================================\n" +
		"Total: 26.00\n"
	assert.Equal(t, want, got)
}

func TestPersonSummaryWithoutName(t *testing.T) {
	bill := testBill()
	bill.Name = ""
	got, err := PersonSummary(bill, "a")
	require.NoError(t, err)
	assert.Contains(t, got, "Bill Summary for Alice\n")
	assert.NotContains(t, got, "Friday")
	assert.Contains(t, got, "Total: 26.00\n")
}

func TestPersonSummaryUnknownPerson(t *testing.T) {
	_, err := PersonSummary(testBill(), "zed")
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestFullSummary(t *testing.T) {
	got := FullSummary(testBill())

	want := "FRIDAY DINNER\n" +
		"FULL BILL SUMMARY\n" +
		"============================================================\n\n" +
		"ITEMS:\n" +
		"Pizza - 30.00\n" +
		"  Alice: 2/3 = 20.00\n" +
		"  Bob: 1/3 = 10.00\n" +
		"\n" +
		"Salad - 10.00\n" +
		"  Bob: 0.5/0.5 = 10.00\n" +
		"\n" +
		"============================================================\n" +
		"BREAKDOWN BY PERSON:\n\n" +
		"Alice:\n" +
		"  Subtotal: 20.00\n" +
		"  Tax: 2.00\n" +
		"  Tip: 4.00\n" +
		"  Total: 26.00\n\n" +
		"Bob:\n" +
		"  Subtotal: 20.00\n" +
		"  Tax: 2.00\n" +
		"  Tip: 4.00\n" +
		"  Total: 26.00\n\n" +
		"============================================================\n" +
		"BILL TOTALS:\n" +
		"Subtotal: 40.00\n" +
		"Tax: 4.00\n" +
		"Tip: 8.00\n" +
		"============================================================\n" +
		"GRAND TOTAL: 52.00\n"
	assert.Equal(t, want, got)
}

func TestFullSummaryEmptyBill(t *testing.T) {
	bill := models.Bill{People: []models.Person{{ID: "a", Name: "Person 1"}}}
	got := FullSummary(bill)
	assert.Contains(t, got, "ITEMS:\n====")
	assert.Contains(t, got, "Person 1:\n  Subtotal: 0.00\n")
	assert.Contains(t, got, "GRAND TOTAL: 0.00\n")
}
