package handlers

import (
	"net/http"

	"go.uber.org/zap"

	mw "github.com/rogerio-castellano/promo-quoter/internal/http/middleware"
	repo "github.com/rogerio-castellano/promo-quoter/internal/repo"
)

// StatsHandler godoc
// @Summary Dashboard counters
// @Description Product, technique and quote counts for the caller. A count that cannot be read is reported as 0.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Stats
// @Router /stats [get]
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := statsRepo.GetDashboardStats(r.Context(), mw.UserID(r.Context()))
	if err != nil {
		zap.L().Warn("dashboard stats unavailable", zap.Error(err))
		stats = repo.Stats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// HealthHandler godoc
// @Summary Liveness and storage check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := healthCheck(r.Context()); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
