package handler

import (
	"net/http"

	"github.com/platefront/backoffice-backend/internal/store/service"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/httputil"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// StoreMenuHandler handles the per-store menu endpoints
type StoreMenuHandler struct {
	service *service.StoreMenuService
	logger  *logger.Logger
}

// NewStoreMenuHandler creates a new store menu handler
func NewStoreMenuHandler(svc *service.StoreMenuService, log *logger.Logger) *StoreMenuHandler {
	return &StoreMenuHandler{
		service: svc,
		logger:  log,
	}
}

// List lists the caller's store menu
func (h *StoreMenuHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := actor.MustFromContext(r.Context())

	items, err := h.service.List(r.Context(), caller)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// Update applies a partial update to one of the caller's store menu items
func (h *StoreMenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := actor.MustFromContext(r.Context())

	var req service.UpdateStoreMenuItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	resp, err := h.service.Update(r.Context(), caller, &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, resp)
}
