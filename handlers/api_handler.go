// backend/handlers/api_handler.go
package handlers

import (
	"net/http"

	"github.com/gewnthar/tripcover/backend/database"
	"github.com/gewnthar/tripcover/backend/models"
	"go.uber.org/zap"
)

// Health handles GET /api/health. The database is only checked when the catalog came from it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if database.DB != nil {
		if err := database.DB.PingContext(r.Context()); err != nil {
			zap.L().Warn("Health check failed: DB ping error", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "database connection error")
			return
		}
	}
	respondWithJSON(w, http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Message: "TripCover backend is healthy",
		Catalog: h.catalog.Info(),
	})
}

// ListPlans handles GET /api/plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans := h.catalog.Plans()
	out := make([]models.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, models.NewPlanResponse(p))
	}
	respondWithJSON(w, http.StatusOK, out)
}
