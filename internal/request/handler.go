package request

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/inventory-management/internal/auth"
	"github.com/frahmantamala/inventory-management/internal/transport"
	"github.com/frahmantamala/inventory-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateRequest(userID int64, dto CreateRequestDTO) (*ItemRequest, error)
	GetRequest(id int64) (*ItemRequest, error)
	ListRequests(filter ListFilter) ([]*ItemRequest, error)
	UpdateRequest(id, userID int64, dto UpdateRequestDTO) (*ItemRequest, error)
	Transition(id int64, dto TransitionDTO) (*ItemRequest, error)
	DeleteRequest(id int64) error
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

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.CreateRequest(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, req)
}

// GetRequest returns a single request. Non-admins can only read their own.
func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	req, err := h.Service.GetRequest(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if !user.IsAdmin() && req.UserID != user.ID {
		h.WriteError(w, http.StatusNotFound, "request not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

// ListRequests scopes the listing to the caller unless they are an admin.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{Limit: 20}
	if !user.IsAdmin() {
		uid := user.ID
		filter.UserID = &uid
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filter.Offset = o
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	reqs, err := h.Service.ListRequests(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": reqs,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	var dto UpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.UpdateRequest(id, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

// Transition applies an approval decision. The route is mounted behind the
// owner guard, so anyone reaching here is allowed to decide.
func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	var dto TransitionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Transition(id, dto)
	if err != nil {
		h.Logger.Error("Transition: service error", "error", err, "request_id", id, "status", dto.Status)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.paramID(w, r)
	if !ok {
		return
	}

	req, err := h.Service.GetRequest(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !user.IsAdmin() && req.UserID != user.ID {
		h.WriteError(w, http.StatusNotFound, "request not found")
		return
	}

	if err := h.Service.DeleteRequest(id); err != nil {
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
