package timesheet

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/core/common/validation"
	"github.com/contractly/timesheet-management/internal/transport"
	"github.com/contractly/timesheet-management/internal/user"
	"github.com/contractly/timesheet-management/pkg/logger"
)

type ServiceAPI interface {
	Create(caller *user.User, dto CreateTimesheetDTO) (*Timesheet, error)
	FindAccessible(caller *user.User, page, limit int) (*PaginatedTimesheets, error)
	FindOne(caller *user.User, id string) (*Timesheet, error)
	Update(caller *user.User, id string, dto UpdateTimesheetDTO) (*Timesheet, error)
	Approve(caller *user.User, id string, dto ApproveTimesheetDTO) (*Timesheet, error)
	Reject(caller *user.User, id string, dto RejectTimesheetDTO) (*Timesheet, error)
	Delete(caller *user.User, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateTimesheetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if appErr := validation.Struct(dto); appErr != nil {
		h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
		return
	}

	ts, err := h.Service.Create(caller, dto)
	if err != nil {
		h.Logger.Error("CreateTimesheet: service error", "error", err, "contractor_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ts)
}

func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	page, limit := paginationParams(r)
	result, err := h.Service.FindAccessible(caller, page, limit)
	if err != nil {
		h.Logger.Error("ListTimesheets: service error", "error", err, "caller_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	ts, err := h.Service.FindOne(caller, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ts)
}

func (h *Handler) UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto UpdateTimesheetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if appErr := validation.Struct(dto); appErr != nil {
		h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
		return
	}

	id := chi.URLParam(r, "id")
	ts, err := h.Service.Update(caller, id, dto)
	if err != nil {
		h.Logger.Error("UpdateTimesheet: service error", "error", err, "timesheet_id", id, "user_id", internal.UserIDFromContext(r.Context()))
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ts)
}

func (h *Handler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto ApproveTimesheetDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id := chi.URLParam(r, "id")
	ts, err := h.Service.Approve(caller, id, dto)
	if err != nil {
		h.Logger.Error("ApproveTimesheet: service error", "error", err, "timesheet_id", id, "approver_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ts)
}

func (h *Handler) RejectTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto RejectTimesheetDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	id := chi.URLParam(r, "id")
	ts, err := h.Service.Reject(caller, id, dto)
	if err != nil {
		h.Logger.Error("RejectTimesheet: service error", "error", err, "timesheet_id", id, "recruiter_id", caller.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ts)
}

func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	caller, ok := user.CallerFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(caller, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func paginationParams(r *http.Request) (page, limit int) {
	page = 1
	limit = 10
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}
