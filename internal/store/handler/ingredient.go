package handler

import (
	"net/http"
	"strings"

	"github.com/platefront/backoffice-backend/internal/store/service"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/httputil"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// IngredientHandler handles the ingredient listing endpoint
type IngredientHandler struct {
	service *service.IngredientService
	logger  *logger.Logger
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(svc *service.IngredientService, log *logger.Logger) *IngredientHandler {
	return &IngredientHandler{
		service: svc,
		logger:  log,
	}
}

// List lists the caller's ingredients for the requested dates.
// weekDates is a comma-separated list of date strings.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := actor.MustFromContext(r.Context())

	dates := splitDates(r.URL.Query().Get("weekDates"))

	ingredients, err := h.service.List(r.Context(), caller, dates)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, ingredients)
}

func splitDates(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	dates := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			dates = append(dates, d)
		}
	}
	return dates
}
