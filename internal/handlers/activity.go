package handlers

import (
	"net/http"
	"strconv"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
)

type ActivityHandler struct {
	Svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Svc: svc}
}

// List: GET /api/activities?limit=
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	activities, err := h.Svc.Recent(userID, limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_activities", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(activities), "data": activities})
}
