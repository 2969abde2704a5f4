package handler

import (
	"net/http"

	"github.com/platefront/backoffice-backend/internal/catalog/service"
	"github.com/platefront/backoffice-backend/pkg/httputil"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// MenuHandler handles the headquarters catalog endpoints
type MenuHandler struct {
	service *service.MenuService
	logger  *logger.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(svc *service.MenuService, log *logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: svc,
		logger:  log,
	}
}

// List lists the catalog with code mappings
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, items)
}

// Update applies a partial update to a catalog entry, keyed by name
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateMenuItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	resp, err := h.service.Update(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, resp)
}
