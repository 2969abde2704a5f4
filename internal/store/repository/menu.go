package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/platefront/backoffice-backend/internal/store/domain"
	"github.com/platefront/backoffice-backend/pkg/database"
)

// StoreMenuRepository handles per-store menu persistence
type StoreMenuRepository struct {
	db *database.DB
}

// NewStoreMenuRepository creates a new store menu repository
func NewStoreMenuRepository(db *database.DB) *StoreMenuRepository {
	return &StoreMenuRepository{db: db}
}

// ListByStore lists a store's menu items in insertion order
func (r *StoreMenuRepository) ListByStore(ctx context.Context, storeID string) ([]domain.StoreMenuItem, error) {
	items := []domain.StoreMenuItem{}
	query := `
		SELECT store_menu_item_id, menu_id, menu_name, price, status, store_id
		FROM store_menu_items
		WHERE store_id = $1
		ORDER BY store_menu_item_id ASC
	`

	if err := r.db.SelectContext(ctx, &items, query, storeID); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateByName applies a partial update to a store's menu item, keyed by
// menu name within the store, and returns the number of rows affected.
func (r *StoreMenuRepository) UpdateByName(ctx context.Context, storeID, name string, patch domain.StoreMenuItemPatch) (int64, error) {
	set := []string{}
	args := []interface{}{storeID, name}
	next := 3

	if patch.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", next))
		args = append(args, *patch.Status)
		next++
	}
	if patch.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", next))
		args = append(args, *patch.Price)
		next++
	}

	if len(set) == 0 {
		return 0, nil
	}

	query := `UPDATE store_menu_items SET ` + strings.Join(set, ", ") + ` WHERE store_id = $1 AND menu_name = $2`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
