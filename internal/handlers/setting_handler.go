package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
	"workshop-backend/internal/services"
)

type SettingHandler struct {
	Service *services.SettingService
}

func NewSettingHandler(s *services.SettingService) *SettingHandler {
	return &SettingHandler{Service: s}
}

func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	setting, err := h.Service.Get(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, setting)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	setting, err := h.Service.Update(r.Context(), key, &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, setting)
}

func (h *SettingHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.BulkSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	settings, err := h.Service.BulkUpdate(r.Context(), &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
