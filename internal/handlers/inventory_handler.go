package handlers

import (
	"encoding/json"
	"net/http"

	"workshop-backend/internal/middleware"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
	"workshop-backend/internal/services"
)

type InventoryHandler struct {
	Service *services.InventoryService
}

func NewInventoryHandler(s *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{Service: s}
}

func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid item id")
		return
	}

	detail, err := h.Service.GetItemDetail(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// Lookup resolves a SKU or barcode to an item for the POS screen.
func (h *InventoryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondBadRequest(w, "code parameter is required")
		return
	}

	item, err := h.Service.Lookup(r.Context(), code)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems(r.Context(), repositories.InventoryItemFilter{
		CategoryID:      queryInt(r, "category_id"),
		Search:          r.URL.Query().Get("search"),
		LowStock:        queryBool(r, "low_stock"),
		IncludeInactive: queryBool(r, "include_inactive"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid item id")
		return
	}

	var req models.UpdateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) DeactivateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid item id")
		return
	}

	if err := h.Service.DeactivateItem(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item deactivated"})
}

func (h *InventoryHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid item id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := h.Service.ReceiveStock(r.Context(), id, &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondBadRequest(w, "invalid item id")
		return
	}
	actor, _ := middleware.ActorFromContext(r.Context())

	var req models.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	item, err := h.Service.AdjustStock(r.Context(), id, &req, actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
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

	movements, err := h.Service.ListMovements(r.Context(), repositories.StockMovementFilter{
		ItemID:   queryInt(r, "item_id"),
		Type:     r.URL.Query().Get("type"),
		FromDate: from,
		ToDate:   to,
		Limit:    queryInt(r, "limit"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, movements)
}
