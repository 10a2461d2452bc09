package handlers

import (
	"encoding/json"
	"net/http"

	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
	"workshop-backend/internal/services"
)

type DailyUsageHandler struct {
	Service *services.DailyUsageService
}

func NewDailyUsageHandler(s *services.DailyUsageService) *DailyUsageHandler {
	return &DailyUsageHandler{Service: s}
}

func (h *DailyUsageHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.CreateDailyUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	usage, err := h.Service.Create(r.Context(), &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, usage)
}

func (h *DailyUsageHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		respondBadRequest(w, "invalid from date")
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		respondBadRequest(w, "invalid to date")
		return
	}

	usages, err := h.Service.List(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, usages)
}

func (h *DailyUsageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid usage id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.Service.Delete(r.Context(), id, actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "usage record deleted"})
}

func (h *DailyUsageHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.TodaySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
