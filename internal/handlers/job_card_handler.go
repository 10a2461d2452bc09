package handlers

import (
	"encoding/json"
	"net/http"

	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
	"workshop-backend/internal/services"
)

type JobCardHandler struct {
	Service *services.JobCardService
}

func NewJobCardHandler(s *services.JobCardService) *JobCardHandler {
	return &JobCardHandler{Service: s}
}

func (h *JobCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	card, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

func (h *JobCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}

	detail, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *JobCardHandler) List(w http.ResponseWriter, r *http.Request) {
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

	cards, err := h.Service.List(r.Context(), models.JobCardFilter{
		Status:       r.URL.Query().Get("status"),
		Search:       r.URL.Query().Get("search"),
		CustomerID:   queryInt(r, "customer_id"),
		AssignedToID: queryInt(r, "assigned_to"),
		FromDate:     from,
		ToDate:       to,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (h *JobCardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *JobCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}

	var req models.UpdateJobCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	card, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (h *JobCardHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}

	var req models.UpdateJobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	card, err := h.Service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (h *JobCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.Service.Delete(r.Context(), id, actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "job card deleted"})
}

func (h *JobCardHandler) AddService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}

	var req models.AddJobServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	line, err := h.Service.AddService(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

func (h *JobCardHandler) RemoveService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	lineID, ok := pathID(r, "lineId")
	if !ok {
		respondBadRequest(w, "invalid line id")
		return
	}

	if err := h.Service.RemoveService(r.Context(), id, lineID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "service removed"})
}

func (h *JobCardHandler) AddPart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.AddJobPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	line, err := h.Service.AddPart(r.Context(), id, &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

func (h *JobCardHandler) RemovePart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	lineID, ok := pathID(r, "lineId")
	if !ok {
		respondBadRequest(w, "invalid line id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	if err := h.Service.RemovePart(r.Context(), id, lineID, actor); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "part removed"})
}

func (h *JobCardHandler) AddManualEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}

	var req models.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	entry, err := h.Service.AddManualEntry(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *JobCardHandler) UpdateManualEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	entryID, ok := pathID(r, "entryId")
	if !ok {
		respondBadRequest(w, "invalid entry id")
		return
	}

	var req models.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateManualEntry(r.Context(), id, entryID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *JobCardHandler) RemoveManualEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid job card id")
		return
	}
	entryID, ok := pathID(r, "entryId")
	if !ok {
		respondBadRequest(w, "invalid entry id")
		return
	}

	if err := h.Service.RemoveManualEntry(r.Context(), id, entryID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "entry removed"})
}
