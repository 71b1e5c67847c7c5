package item

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/inventory-management/internal/auth"
	"github.com/frahmantamala/inventory-management/internal/transport"
	"github.com/frahmantamala/inventory-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateItem(dto CreateItemDTO) (*Item, error)
	GetItem(id int64) (*Item, error)
	ListItems(filter ListFilter) ([]*Item, error)
	UpdateItem(id int64, dto UpdateItemDTO) (*Item, error)
	DeleteItem(id int64) error
	MarkBroken(id int64) (*Item, error)
	MarkRepaired(id int64) (*Item, error)
	AssignItem(dto AssignItemDTO) (*Assignment, error)
	UnassignItem(assignmentID int64) error
	ReassignItem(assignmentID int64, dto ReassignItemDTO) (*Assignment, error)
	ListAssignments(limit, offset int) ([]*Assignment, error)
	ListAssignmentsForUser(userID int64) ([]*Assignment, error)
	UpcomingExaminations(now time.Time) ([]*Item, error)
	AttachPhoto(id int64, path string) (*Item, error)
	AttachReceipt(id int64, path string) (*Item, error)
}

// FileSaver is the storage collaborator; only the returned path is kept.
type FileSaver interface {
	Save(kind, originalName string, r io.Reader) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service       ServiceAPI
	Files         FileSaver
	MaxUploadSize int64
}

func NewHandler(service ServiceAPI, files FileSaver, maxUploadSize int64) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = 5 << 20
	}
	return &Handler{
		BaseHandler:   transport.NewBaseHandler(lg),
		Service:       service,
		Files:         files,
		MaxUploadSize: maxUploadSize,
	}
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto CreateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateItem: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.CreateItem(dto)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, it)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	it, err := h.Service.GetItem(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Limit: 20}

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
	if v := r.URL.Query().Get("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := r.URL.Query().Get("area_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AreaID = &id
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	items, err := h.Service.ListItems(filter)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.Service.UpdateItem(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteItem(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkBroken(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	it, err := h.Service.MarkBroken(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) MarkRepaired(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	it, err := h.Service.MarkRepaired(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) AssignItem(w http.ResponseWriter, r *http.Request) {
	var dto AssignItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.AssignItem(dto)
	if err != nil {
		h.Logger.Error("AssignItem: service error", "error", err, "user_id", dto.UserID, "item_id", dto.ItemID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, assignment)
}

func (h *Handler) UnassignItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.UnassignItem(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ReassignItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	var dto ReassignItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.ReassignItem(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, assignment)
}

// ListAssignments returns every assignment for admins, and only the caller's
// own for everyone else.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if !user.IsAdmin() {
		assignments, err := h.Service.ListAssignmentsForUser(user.ID)
		if err != nil {
			h.WriteError(w, http.StatusInternalServerError, "failed to list assignments")
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
		return
	}

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

	assignments, err := h.Service.ListAssignments(limit, offset)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) UpcomingExaminations(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.UpcomingExaminations(time.Now())
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list upcoming examinations")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "photos", h.Service.AttachPhoto)
}

func (h *Handler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "receipts", h.Service.AttachReceipt)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, kind string, attach func(int64, string) (*Item, error)) {
	id, ok := h.paramID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	path, err := h.Files.Save(kind, header.Filename, file)
	if err != nil {
		h.Logger.Error("upload: failed to store file", "error", err, "item_id", id, "kind", kind)
		h.WriteError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	it, err := attach(id, path)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) paramID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Logger.Error("invalid id parameter", "param", name, "value", raw)
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
