package handlers

import (
	"encoding/json"
	"net/http"

	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
	"workshop-backend/internal/services"
)

type PosHandler struct {
	Service *services.PosService
}

func NewPosHandler(s *services.PosService) *PosHandler {
	return &PosHandler{Service: s}
}

func (h *PosHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	sale, err := h.Service.Checkout(r.Context(), &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

func (h *PosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid sale id")
		return
	}

	sale, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *PosHandler) List(w http.ResponseWriter, r *http.Request) {
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

	sales, err := h.Service.List(r.Context(), models.SaleFilter{
		Search:   r.URL.Query().Get("search"),
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *PosHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid sale id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	sale, err := h.Service.Refund(r.Context(), id, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func (h *PosHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.TodaySummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
