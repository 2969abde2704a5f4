package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/platefront/backoffice-backend/internal/catalog/domain"
	"github.com/platefront/backoffice-backend/internal/catalog/repository"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// MenuService handles headquarters catalog logic
type MenuService struct {
	repo   *repository.MenuRepository
	logger *logger.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(repo *repository.MenuRepository, log *logger.Logger) *MenuService {
	return &MenuService{
		repo:   repo,
		logger: log,
	}
}

// UpdateMenuItemRequest represents a catalog update request
type UpdateMenuItemRequest struct {
	Name     string           `json:"name" validate:"required"`
	IsActive *bool            `json:"isActive"`
	Price    *decimal.Decimal `json:"price"`
	K        *bool            `json:"K"`
	Other    *bool            `json:"other"`
}

// UpdateMenuItemResponse reports how many rows the update touched. Zero rows
// on a found item is still reported as success.
type UpdateMenuItemResponse struct {
	Updated int64 `json:"updated"`
}

// List returns the catalog joined with its code mappings. The two reads are
// independent and issued concurrently.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItemWithCode, error) {
	var (
		items []domain.MenuItem
		codes []domain.MenuCode
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		codes, err = s.repo.ListCodes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "INTERNAL_ERROR", "failed to load catalog", 500)
	}

	lookup := CodeLookup(codes)

	result := make([]domain.MenuItemWithCode, 0, len(items))
	for _, item := range items {
		entry := domain.MenuItemWithCode{MenuItem: item}
		if code, ok := lookup[strconv.FormatInt(item.MenuID, 10)]; ok {
			entry.MenuCode = &code
		}
		result = append(result, entry)
	}

	return result, nil
}

// Update applies a partial update to the catalog entry named in the request.
// The existence check and the update are independent and issued concurrently;
// a missing name is a 404 regardless of what the update statement touched.
func (s *MenuService) Update(ctx context.Context, req *UpdateMenuItemRequest) (*UpdateMenuItemResponse, error) {
	patch := domain.MenuItemPatch{
		Status:    req.IsActive,
		Price:     req.Price,
		KFlag:     req.K,
		OtherFlag: req.Other,
	}

	var (
		exists  bool
		updated int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exists, err = s.repo.ExistsByName(gctx, req.Name)
		return err
	})
	g.Go(func() error {
		var err error
		updated, err = s.repo.UpdateByName(gctx, req.Name, patch)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "INTERNAL_ERROR", "failed to update menu item", 500)
	}

	if !exists {
		return nil, errors.NotFound("menu item")
	}

	return &UpdateMenuItemResponse{Updated: updated}, nil
}

// CodeLookup builds the menu code lookup table keyed by normalized system
// code. Built once per request, never inside a join loop.
func CodeLookup(codes []domain.MenuCode) map[string]string {
	lookup := make(map[string]string, len(codes))
	for _, c := range codes {
		key := strings.TrimSpace(c.MenuSystemCode)
		if key == "" {
			continue
		}
		if _, ok := lookup[key]; !ok {
			lookup[key] = c.MenuCode
		}
	}
	return lookup
}
