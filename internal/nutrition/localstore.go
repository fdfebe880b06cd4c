package nutrition

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fitnesshub/backend/internal/apperrors"
)

const localStoreSchema = `
CREATE TABLE IF NOT EXISTS food_items (
  item_key TEXT PRIMARY KEY,
  barcode TEXT,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  item_json TEXT NOT NULL,
  fetched_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_food_items_barcode ON food_items(barcode);
CREATE INDEX IF NOT EXISTS idx_food_items_name ON food_items(name);
`

// LocalStore is an offline SQLite copy of normalized food items, used by
// the operator CLI.
type LocalStore struct {
	db *sql.DB
}

func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(localStoreSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply local store schema: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func itemKey(item FoodItem) string {
	if item.Barcode != nil && *item.Barcode != "" {
		return "barcode:" + *item.Barcode
	}
	return "name:" + strings.ToLower(item.Name) + "|" + strings.ToLower(item.Brand)
}

// Save inserts the item or replaces the stored copy with the same barcode
// (or name and brand, for items without a barcode).
func (s *LocalStore) Save(ctx context.Context, item FoodItem, fetchedAt time.Time) error {
	itemJson, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal food item: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO food_items (item_key, barcode, name, brand, item_json, fetched_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(item_key) DO UPDATE SET
  barcode = excluded.barcode,
  name = excluded.name,
  brand = excluded.brand,
  item_json = excluded.item_json,
  fetched_at = excluded.fetched_at`,
		itemKey(item), item.Barcode, item.Name, item.Brand, string(itemJson), fetchedAt.UTC(),
	); err != nil {
		return fmt.Errorf("save food item %q: %w", item.Name, err)
	}
	return nil
}

func (s *LocalStore) ByBarcode(ctx context.Context, barcode string) (*FoodItem, error) {
	var itemJson string
	err := s.db.QueryRowContext(ctx,
		`SELECT item_json FROM food_items WHERE barcode = ? ORDER BY fetched_at DESC LIMIT 1`,
		barcode,
	).Scan(&itemJson)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get food item %s: %w", barcode, err)
	}

	var item FoodItem
	if err := json.Unmarshal([]byte(itemJson), &item); err != nil {
		return nil, fmt.Errorf("unmarshal food item %s: %w", barcode, err)
	}
	return &item, nil
}

// Search matches the query against names and brands, case-insensitively.
func (s *LocalStore) Search(ctx context.Context, query string, limit int) ([]FoodItem, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
SELECT item_json FROM food_items
WHERE lower(name) LIKE ? OR lower(brand) LIKE ?
ORDER BY name, brand
LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search food items: %w", err)
	}
	defer rows.Close()

	items := make([]FoodItem, 0)
	for rows.Next() {
		var itemJson string
		if err := rows.Scan(&itemJson); err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		var item FoodItem
		if err := json.Unmarshal([]byte(itemJson), &item); err != nil {
			return nil, fmt.Errorf("unmarshal food item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
