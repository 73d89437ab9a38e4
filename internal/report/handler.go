package report

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/contractly/timesheet-management/internal/transport"
	"github.com/contractly/timesheet-management/pkg/logger"
)

type ServiceAPI interface {
	Export(format string) ([]byte, string, error)
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

// ExportTimesheets streams all timesheets as a csv or json attachment.
// Route-level middleware restricts this to admins.
func (h *Handler) ExportTimesheets(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatCSV
	}

	data, contentType, err := h.Service.Export(format)
	if err != nil {
		h.Logger.Error("ExportTimesheets: service error", "error", err, "format", format)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+Filename(format, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
