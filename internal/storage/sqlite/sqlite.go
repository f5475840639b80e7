// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// MemoryPath opens a private in-memory database. Bills stored there live
// only as long as the store.
const MemoryPath = ":memory:"

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and the
	// foreign_keys pragma below is per connection too.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateBill stores a new bill with its people, items and splits.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bills (id, name, tax_mode, tax_value, tip_mode, tip_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Name, string(bill.Tax.Mode), bill.Tax.Value, string(bill.Tip.Mode), bill.Tip.Value,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBill replaces the stored bill with the given document.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bills SET name = ?, tax_mode = ?, tax_value = ?, tip_mode = ?, tip_value = ?, updated_at = ?
		WHERE id = ?`,
		bill.Name, string(bill.Tax.Mode), bill.Tax.Value, string(bill.Tip.Mode), bill.Tip.Value,
		bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	} else if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, bill.ID)
	}

	for _, table := range []string{"splits", "items", "people"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE bill_id = ?", bill.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertContents(ctx, tx, bill); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteBill removes a bill. People, items and splits cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	return nil
}

// GetBill retrieves a bill by ID, including its people, items and splits.
// Each query is drained before the next one runs since the pool holds a
// single connection.
func (s *SQLiteStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	var taxMode, tipMode string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, tax_mode, tax_value, tip_mode, tip_value, created_at, updated_at
		FROM bills WHERE id = ?`,
		billID,
	).Scan(&bill.ID, &bill.Name, &taxMode, &bill.Tax.Value, &tipMode, &bill.Tip.Value, &bill.CreatedAt, &bill.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, billID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.Tax.Mode = models.AdjustmentMode(taxMode)
	bill.Tip.Mode = models.AdjustmentMode(tipMode)

	if bill.People, err = s.getPeople(ctx, billID); err != nil {
		return nil, err
	}
	if bill.Items, err = s.getItems(ctx, billID); err != nil {
		return nil, err
	}

	splits, err := s.getSplits(ctx, billID)
	if err != nil {
		return nil, err
	}
	for i := range bill.Items {
		bill.Items[i].Splits = splits[bill.Items[i].ID]
	}

	return bill, nil
}

func (s *SQLiteStore) getPeople(ctx context.Context, billID string) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM people WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

func (s *SQLiteStore) getItems(ctx context.Context, billID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, cost, cost_expression FROM items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Cost, &it.CostExpression); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// getSplits returns the bill's splits keyed by item ID.
func (s *SQLiteStore) getSplits(ctx context.Context, billID string) (map[string][]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, person_id, ratio FROM splits WHERE bill_id = ? ORDER BY item_id, position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]models.Split)
	for rows.Next() {
		var itemID string
		var sp models.Split
		if err := rows.Scan(&itemID, &sp.PersonID, &sp.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits[itemID] = append(splits[itemID], sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// insertContents writes the bill's people, items and splits. IDs are
// generated for people and items that have none.
func insertContents(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	for i := range bill.People {
		p := &bill.People[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO people (id, bill_id, position, name) VALUES (?, ?, ?, ?)",
			p.ID, bill.ID, i, p.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, bill_id, position, name, cost, cost_expression) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, bill.ID, i, item.Name, item.Cost, item.CostExpression,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, sp := range item.Splits {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO splits (bill_id, item_id, person_id, position, ratio) VALUES (?, ?, ?, ?, ?)",
				bill.ID, item.ID, sp.PersonID, j, sp.Ratio,
			)
			if err != nil {
				return fmt.Errorf("failed to insert split: %w", err)
			}
		}
	}
	return nil
}
