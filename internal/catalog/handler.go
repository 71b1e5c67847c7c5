package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/inventory-management/internal/transport"
	"github.com/frahmantamala/inventory-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateCategory(dto BoundaryDTO) (*Category, error)
	GetCategory(id int64) (*Category, error)
	ListCategories() ([]*Category, error)
	UpdateCategory(id int64, dto UpdateBoundaryDTO) (*Category, error)
	DeleteCategory(id int64) error

	CreateArea(dto BoundaryDTO) (*Area, error)
	GetArea(id int64) (*Area, error)
	ListAreas() ([]*Area, error)
	UpdateArea(id int64, dto UpdateBoundaryDTO) (*Area, error)
	DeleteArea(id int64) error
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

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto BoundaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCategory(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	c, err := h.Service.GetCategory(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	var dto UpdateBoundaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.UpdateCategory(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteCategory(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var dto BoundaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateArea(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	a, err := h.Service.GetArea(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.ListAreas()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list areas")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"areas": areas})
}

func (h *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	var dto UpdateBoundaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateArea(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteArea(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteArea(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) paramID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
