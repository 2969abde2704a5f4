package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	catalogdomain "github.com/platefront/backoffice-backend/internal/catalog/domain"
	catalogservice "github.com/platefront/backoffice-backend/internal/catalog/service"
	"github.com/platefront/backoffice-backend/internal/store/domain"
	"github.com/platefront/backoffice-backend/internal/store/repository"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// CodeSource provides the catalog code mappings the store menu joins against.
type CodeSource interface {
	ListCodes(ctx context.Context) ([]catalogdomain.MenuCode, error)
}

// StoreMenuService handles per-store menu logic
type StoreMenuService struct {
	repo   *repository.StoreMenuRepository
	codes  CodeSource
	logger *logger.Logger
}

// NewStoreMenuService creates a new store menu service
func NewStoreMenuService(repo *repository.StoreMenuRepository, codes CodeSource, log *logger.Logger) *StoreMenuService {
	return &StoreMenuService{
		repo:   repo,
		codes:  codes,
		logger: log,
	}
}

// UpdateStoreMenuItemRequest represents a store menu update request
type UpdateStoreMenuItemRequest struct {
	Name     string           `json:"name" validate:"required"`
	IsActive *bool            `json:"isActive"`
	Price    *decimal.Decimal `json:"price"`
}

// UpdateStoreMenuItemResponse echoes the effective active flag back. The
// persisted status is the logical negation of the requested isActive (legacy
// client contract, kept until product clarifies the intended semantics).
type UpdateStoreMenuItemResponse struct {
	Updated  int64 `json:"updated"`
	IsActive *bool `json:"isActive,omitempty"`
}

// List returns the caller's store menu, deduplicated by menu_id (first
// occurrence wins, order preserving) and joined with catalog codes. The two
// reads are independent and issued concurrently.
func (s *StoreMenuService) List(ctx context.Context, caller *actor.Caller) ([]domain.StoreMenuItemWithCode, error) {
	var (
		items []domain.StoreMenuItem
		codes []catalogdomain.MenuCode
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListByStore(gctx, caller.CompanyCode)
		return err
	})
	g.Go(func() error {
		var err error
		codes, err = s.codes.ListCodes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "INTERNAL_ERROR", "failed to load store menu", 500)
	}

	lookup := catalogservice.CodeLookup(codes)

	seen := make(map[int64]bool, len(items))
	result := make([]domain.StoreMenuItemWithCode, 0, len(items))
	for _, item := range items {
		if seen[item.MenuID] {
			continue
		}
		seen[item.MenuID] = true

		entry := domain.StoreMenuItemWithCode{StoreMenuItem: item}
		if code, ok := lookup[strconv.FormatInt(item.MenuID, 10)]; ok {
			entry.MenuCode = &code
		}
		result = append(result, entry)
	}

	return result, nil
}

// Update applies a partial update to one of the caller's store menu items.
// The requested isActive flag is inverted before persisting; the response
// carries the effective (already-inverted) flag.
func (s *StoreMenuService) Update(ctx context.Context, caller *actor.Caller, req *UpdateStoreMenuItemRequest) (*UpdateStoreMenuItemResponse, error) {
	patch := domain.StoreMenuItemPatch{Price: req.Price}

	var effective *bool
	if req.IsActive != nil {
		inverted := !*req.IsActive
		patch.Status = &inverted
		effective = &inverted
	}

	updated, err := s.repo.UpdateByName(ctx, caller.CompanyCode, req.Name, patch)
	if err != nil {
		return nil, errors.Wrap(err, "INTERNAL_ERROR", "failed to update store menu item", 500)
	}

	return &UpdateStoreMenuItemResponse{
		Updated:  updated,
		IsActive: effective,
	}, nil
}
