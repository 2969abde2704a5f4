package service

import (
	"context"

	"github.com/platefront/backoffice-backend/internal/store/domain"
	"github.com/platefront/backoffice-backend/internal/store/repository"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// IngredientService handles store ingredient reads
type IngredientService struct {
	repo   *repository.IngredientRepository
	logger *logger.Logger
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(repo *repository.IngredientRepository, log *logger.Logger) *IngredientService {
	return &IngredientService{
		repo:   repo,
		logger: log,
	}
}

// List returns the caller's ingredient rows for the requested dates,
// verbatim. An empty date set is invalid input, never an empty success.
func (s *IngredientService) List(ctx context.Context, caller *actor.Caller, dates []string) ([]domain.Ingredient, error) {
	if len(dates) == 0 {
		return nil, errors.BadRequest("weekDates is required")
	}

	return s.repo.ListByStoreAndDates(ctx, caller.CompanyCode, dates)
}
