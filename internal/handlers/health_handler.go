package handlers

import (
	"net/http"

	"workshop-backend/internal/health"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(c *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: c}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}

// SystemStats reports host CPU, memory, disk and database figures.
func (h *HealthHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Checker.CollectSystemStats(r.Context()))
}
