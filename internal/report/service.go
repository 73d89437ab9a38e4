package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/timesheet"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"

	dateLayout = "2006-01-02"
)

type Repository interface {
	ListAllWithContractor() ([]*timesheet.Timesheet, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Export renders every timesheet in the requested format, newest first.
// Returns the serialized payload and its content type.
func (s *Service) Export(format string) ([]byte, string, error) {
	if format != FormatCSV && format != FormatJSON {
		return nil, "", internal.ErrExportFormat
	}

	s.logger.Info("exporting timesheets", "format", format)

	timesheets, err := s.repo.ListAllWithContractor()
	if err != nil {
		s.logger.Error("failed to load timesheets for export", "error", err)
		return nil, "", internal.NewInternalError("failed to export timesheets", err)
	}

	if format == FormatJSON {
		data, err := exportJSON(timesheets)
		if err != nil {
			return nil, "", internal.NewInternalError("failed to export timesheets", err)
		}
		return data, "application/json", nil
	}

	data, err := exportCSV(timesheets)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to export timesheets", err)
	}
	return data, "text/csv", nil
}

// Filename builds the attachment name for an export produced today.
func Filename(format string, now time.Time) string {
	return "timesheets-export-" + now.Format(dateLayout) + "." + format
}

type exportRecord struct {
	ID              string  `json:"id"`
	ContractorName  string  `json:"contractorName"`
	ContractorEmail string  `json:"contractorEmail"`
	ProjectName     string  `json:"projectName"`
	HoursWorked     float64 `json:"hoursWorked"`
	Notes           *string `json:"notes"`
	WeekStartDate   string  `json:"weekStartDate"`
	WeekEndDate     string  `json:"weekEndDate"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approvedBy"`
	ApprovedAt      *string `json:"approvedAt"`
	RejectionReason *string `json:"rejectionReason"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func toExportRecord(ts *timesheet.Timesheet) exportRecord {
	rec := exportRecord{
		ID:              ts.ID,
		ProjectName:     ts.ProjectName,
		HoursWorked:     ts.HoursWorked,
		Notes:           ts.Notes,
		WeekStartDate:   ts.WeekStartDate.Format(dateLayout),
		WeekEndDate:     ts.WeekEndDate.Format(dateLayout),
		Status:          ts.Status,
		ApprovedBy:      ts.ApprovedBy,
		RejectionReason: ts.RejectionReason,
		CreatedAt:       ts.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       ts.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if ts.Contractor != nil {
		rec.ContractorName = ts.Contractor.FullName()
		rec.ContractorEmail = ts.Contractor.Email
	}
	if ts.ApprovedAt != nil {
		approvedAt := ts.ApprovedAt.UTC().Format(time.RFC3339)
		rec.ApprovedAt = &approvedAt
	}
	return rec
}

func exportJSON(timesheets []*timesheet.Timesheet) ([]byte, error) {
	records := make([]exportRecord, len(timesheets))
	for i, ts := range timesheets {
		records[i] = toExportRecord(ts)
	}
	return json.MarshalIndent(records, "", "  ")
}

var csvHeader = []string{
	"ID",
	"Contractor Name",
	"Contractor Email",
	"Project Name",
	"Hours Worked",
	"Notes",
	"Week Start Date",
	"Week End Date",
	"Status",
	"Approved By",
	"Approved At",
	"Rejection Reason",
	"Created At",
	"Updated At",
}

func exportCSV(timesheets []*timesheet.Timesheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, ts := range timesheets {
		rec := toExportRecord(ts)
		row := []string{
			rec.ID,
			rec.ContractorName,
			rec.ContractorEmail,
			rec.ProjectName,
			strconv.FormatFloat(rec.HoursWorked, 'f', -1, 64),
			derefOrEmpty(rec.Notes),
			rec.WeekStartDate,
			rec.WeekEndDate,
			rec.Status,
			derefOrEmpty(rec.ApprovedBy),
			derefOrEmpty(rec.ApprovedAt),
			derefOrEmpty(rec.RejectionReason),
			rec.CreatedAt,
			rec.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
