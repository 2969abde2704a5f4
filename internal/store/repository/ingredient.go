package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/platefront/backoffice-backend/internal/store/domain"
	"github.com/platefront/backoffice-backend/pkg/database"
)

// IngredientRepository handles read access to ingredient rows
type IngredientRepository struct {
	db *database.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *database.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// ListByStoreAndDates lists ingredients for one store over a set of dates
func (r *IngredientRepository) ListByStoreAndDates(ctx context.Context, storeID string, dates []string) ([]domain.Ingredient, error) {
	ingredients := []domain.Ingredient{}
	query := `
		SELECT ingredient_id, material_system_code, name, date, quantity, store_id
		FROM ingredients
		WHERE store_id = $1 AND date = ANY($2)
		ORDER BY date ASC, ingredient_id ASC
	`

	if err := r.db.SelectContext(ctx, &ingredients, query, storeID, pq.Array(dates)); err != nil {
		return nil, err
	}

	return ingredients, nil
}
