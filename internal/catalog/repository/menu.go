package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/platefront/backoffice-backend/internal/catalog/domain"
	"github.com/platefront/backoffice-backend/pkg/database"
)

// MenuRepository handles catalog persistence
type MenuRepository struct {
	db *database.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *database.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// ListItems lists the full catalog ordered by ascending id
func (r *MenuRepository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	query := `
		SELECT menu_id, name, price, status, description, k_flag, other_flag
		FROM menu_items
		ORDER BY menu_id ASC
	`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}

	return items, nil
}

// ListCodes lists all menu code mappings
func (r *MenuRepository) ListCodes(ctx context.Context) ([]domain.MenuCode, error) {
	codes := []domain.MenuCode{}
	query := `SELECT menu_system_code, menu_code FROM menu_codes`

	if err := r.db.SelectContext(ctx, &codes, query); err != nil {
		return nil, err
	}

	return codes, nil
}

// ExistsByName reports whether a catalog entry with the given name exists
func (r *MenuRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT menu_id FROM menu_items WHERE name = $1 LIMIT 1`, name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateByName applies a partial update to the catalog entry with the given
// name and returns the number of rows affected. Only fields present in the
// patch make it into the SET clause.
func (r *MenuRepository) UpdateByName(ctx context.Context, name string, patch domain.MenuItemPatch) (int64, error) {
	set := []string{}
	args := []interface{}{name}
	next := 2

	appendSet := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	if patch.Status != nil {
		appendSet("status", *patch.Status)
	}
	if patch.Price != nil {
		appendSet("price", *patch.Price)
	}
	if patch.KFlag != nil {
		appendSet("k_flag", *patch.KFlag)
	}
	if patch.OtherFlag != nil {
		appendSet("other_flag", *patch.OtherFlag)
	}

	if len(set) == 0 {
		return 0, nil
	}

	query := `UPDATE menu_items SET ` + strings.Join(set, ", ") + ` WHERE name = $1`

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
