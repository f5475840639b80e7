package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dinnerBill() *models.Bill {
	return &models.Bill{
		Name: "Test Dinner",
		People: []models.Person{
			{ID: "p-charlie", Name: "Charlie"},
			{ID: "p-diana", Name: "Diana"},
			{ID: "p-alex", Name: "Alex"},
		},
		Items: []models.Item{
			{ID: "i-steak", Name: "Steak", Cost: 30, CostExpression: "30", Splits: []models.Split{
				{PersonID: "p-diana", Ratio: 1},
				{PersonID: "p-charlie", Ratio: 2},
			}},
			{ID: "i-salad", Name: "Salad", Cost: 20, CostExpression: "2*10", Splits: []models.Split{
				{PersonID: "p-alex", Ratio: 0.5},
			}},
			{ID: "i-bread", Name: "Bread", Cost: 4, CostExpression: "4"},
		},
		Tax: models.Adjustment{Mode: models.ModePercentage, Value: 8.5},
		Tip: models.Adjustment{Mode: models.ModeAmount, Value: 10},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates ID and timestamps", func(t *testing.T) {
		bill := &models.Bill{
			People: []models.Person{{Name: "Alice"}},
			Items:  []models.Item{{Name: "Pizza", Cost: 20, CostExpression: "20"}},
			Tax:    models.Adjustment{Mode: models.ModeAmount},
			Tip:    models.Adjustment{Mode: models.ModePercentage},
		}

		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.CreatedAt == 0 || bill.UpdatedAt == 0 {
			t.Error("Expected CreatedAt and UpdatedAt to be set")
		}
		if bill.People[0].ID == "" || bill.Items[0].ID == "" {
			t.Error("Expected person and item IDs to be generated")
		}
	})

	t.Run("GetBill retrieves complete bill in order", func(t *testing.T) {
		original := dinnerBill()
		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		retrieved, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}

		if retrieved.Name != original.Name {
			t.Errorf("Name mismatch: got %s, want %s", retrieved.Name, original.Name)
		}
		if retrieved.Tax != original.Tax || retrieved.Tip != original.Tip {
			t.Errorf("Adjustments mismatch: got %+v/%+v, want %+v/%+v",
				retrieved.Tax, retrieved.Tip, original.Tax, original.Tip)
		}
		if len(retrieved.People) != 3 {
			t.Fatalf("People count mismatch: got %d, want 3", len(retrieved.People))
		}
		for i, p := range retrieved.People {
			if p != original.People[i] {
				t.Errorf("Person %d mismatch: got %+v, want %+v", i, p, original.People[i])
			}
		}
		if len(retrieved.Items) != 3 {
			t.Fatalf("Items count mismatch: got %d, want 3", len(retrieved.Items))
		}
		for i, item := range retrieved.Items {
			want := original.Items[i]
			if item.ID != want.ID || item.Name != want.Name || item.Cost != want.Cost || item.CostExpression != want.CostExpression {
				t.Errorf("Item %d mismatch: got %+v, want %+v", i, item, want)
			}
			if len(item.Splits) != len(want.Splits) {
				t.Errorf("Item %d splits mismatch: got %d, want %d", i, len(item.Splits), len(want.Splits))
				continue
			}
			for j, sp := range item.Splits {
				if sp != want.Splits[j] {
					t.Errorf("Item %d split %d mismatch: got %+v, want %+v", i, j, sp, want.Splits[j])
				}
			}
		}
	})

	t.Run("GetBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		_, err := store.GetBill(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBill replaces contents", func(t *testing.T) {
		bill := dinnerBill()
		bill.ID = "update-me"
		for i := range bill.Items {
			bill.Items[i].ID = "u-" + bill.Items[i].ID
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		// Drop Diana and the steak, add a dessert.
		bill.Name = "Renamed"
		bill.People = []models.Person{bill.People[0], bill.People[2]}
		bill.Items = []models.Item{
			bill.Items[1],
			{ID: "u-cake", Name: "Cake", Cost: 9, CostExpression: "9", Splits: []models.Split{
				{PersonID: "p-alex", Ratio: 1},
				{PersonID: "p-charlie", Ratio: 1},
			}},
		}
		bill.Tip = models.Adjustment{Mode: models.ModePercentage, Value: 18}

		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, "update-me")
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Name != "Renamed" {
			t.Errorf("Name = %s, want Renamed", got.Name)
		}
		if len(got.People) != 2 || got.People[1].Name != "Alex" {
			t.Errorf("People = %+v, want Charlie and Alex", got.People)
		}
		if len(got.Items) != 2 || got.Items[1].Name != "Cake" || len(got.Items[1].Splits) != 2 {
			t.Errorf("Items = %+v, want Salad and Cake", got.Items)
		}
		if got.Tip.Value != 18 {
			t.Errorf("Tip = %+v, want 18%%", got.Tip)
		}
	})

	t.Run("UpdateBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		bill := &models.Bill{ID: "ghost", Tax: models.Adjustment{Mode: models.ModeAmount}, Tip: models.Adjustment{Mode: models.ModeAmount}}
		if err := store.UpdateBill(ctx, bill); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("split for unknown person is rejected", func(t *testing.T) {
		bill := &models.Bill{
			People: []models.Person{{ID: "only", Name: "Only"}},
			Items: []models.Item{{ID: "x", Name: "X", Cost: 1, CostExpression: "1", Splits: []models.Split{
				{PersonID: "stranger", Ratio: 1},
			}}},
		}
		if err := store.CreateBill(ctx, bill); err == nil {
			t.Error("Expected foreign key error, got nil")
		}
	})

	t.Run("DeleteBill cascades", func(t *testing.T) {
		bill := dinnerBill()
		bill.ID = "delete-me"
		for i := range bill.Items {
			bill.Items[i].ID = "d-" + bill.Items[i].ID
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if err := store.DeleteBill(ctx, "delete-me"); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, "delete-me"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		var n int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM splits WHERE bill_id = ?", "delete-me").Scan(&n); err != nil {
			t.Fatalf("count splits: %v", err)
		}
		if n != 0 {
			t.Errorf("Expected splits to cascade, %d left", n)
		}

		if err := store.DeleteBill(ctx, "delete-me"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestInMemoryStore(t *testing.T) {
	store, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	bill := dinnerBill()
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	got, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if len(got.Items) != len(bill.Items) {
		t.Errorf("Items count mismatch: got %d, want %d", len(got.Items), len(bill.Items))
	}
}
