package group

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/inventory-management/internal/item"
	"github.com/frahmantamala/inventory-management/internal/transport"
	"github.com/frahmantamala/inventory-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateGroup(dto CreateGroupDTO) (*Group, error)
	GetGroup(id int64) (*Group, error)
	ListGroups(limit, offset int) ([]*Group, error)
	DeleteGroup(id int64) error
	AddItem(groupID int64, dto AddItemDTO) (*Membership, error)
	RemoveItem(groupID, itemID int64) error
	ListItems(groupID int64) ([]*item.Item, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var dto CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.CreateGroup(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	g, err := h.Service.GetGroup(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			offset = o
		}
	}

	groups, err := h.Service.ListGroups(limit, offset)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list groups")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"groups": groups,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteGroup(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	var dto AddItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.AddItem(id, dto)
	if err != nil {
		h.Logger.Error("AddItem: service error", "error", err, "group_id", id, "item_id", dto.ItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	groupID, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.paramID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.Service.RemoveItem(groupID, itemID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.Service.ListItems(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) paramID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
