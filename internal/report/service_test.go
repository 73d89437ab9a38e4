package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/report"
	"github.com/contractly/timesheet-management/internal/timesheet"
	"github.com/contractly/timesheet-management/internal/user"
)

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReportService Suite")
}

type mockReportRepository struct {
	timesheets []*timesheet.Timesheet
	listError  error
}

func (m *mockReportRepository) ListAllWithContractor() ([]*timesheet.Timesheet, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.timesheets, nil
}

var _ = Describe("ReportService", func() {
	var (
		service  *report.Service
		mockRepo *mockReportRepository
	)

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		mockRepo = &mockReportRepository{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(mockRepo, lg)

		approvedAt := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
		mockRepo.timesheets = []*timesheet.Timesheet{
			{
				ID:            "t-1",
				ContractorID:  "c-1",
				ProjectName:   `Data, Warehouse "Phase 2"`,
				HoursWorked:   38.5,
				Notes:         strPtr("includes on-call, weekend"),
				WeekStartDate: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
				WeekEndDate:   time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
				Status:        timesheet.StatusApproved,
				ApprovedBy:    strPtr("r-1"),
				ApprovedAt:    &approvedAt,
				CreatedAt:     time.Date(2026, 8, 17, 18, 0, 0, 0, time.UTC),
				UpdatedAt:     approvedAt,
				Contractor: &user.User{
					ID:        "c-1",
					Email:     "carla@contractly.io",
					FirstName: "Carla",
					LastName:  "Mendez",
					Role:      user.RoleContractor,
				},
			},
			{
				ID:            "t-2",
				ContractorID:  "c-2",
				ProjectName:   "Mobile App",
				HoursWorked:   40,
				WeekStartDate: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
				WeekEndDate:   time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
				Status:        timesheet.StatusPending,
				CreatedAt:     time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC),
				UpdatedAt:     time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC),
				Contractor: &user.User{
					ID:        "c-2",
					Email:     "chris@contractly.io",
					FirstName: "Chris",
					LastName:  "O'Neill",
					Role:      user.RoleContractor,
				},
			},
		}
	})

	Describe("Export", func() {
		It("should reject unknown formats", func() {
			_, _, err := service.Export("xml")
			Expect(err).To(Equal(internal.ErrExportFormat))
		})

		It("should wrap repository failures", func() {
			mockRepo.listError = errors.New("connection refused")

			_, _, err := service.Export(report.FormatCSV)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("CSV export", func() {
		It("should produce a header row plus one row per timesheet", func() {
			data, contentType, err := service.Export(report.FormatCSV)
			Expect(err).ToNot(HaveOccurred())
			Expect(contentType).To(Equal("text/csv"))

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0]).To(Equal([]string{
				"ID", "Contractor Name", "Contractor Email", "Project Name",
				"Hours Worked", "Notes", "Week Start Date", "Week End Date",
				"Status", "Approved By", "Approved At", "Rejection Reason",
				"Created At", "Updated At",
			}))
		})

		It("should survive commas and quotes in field values", func() {
			data, _, err := service.Export(report.FormatCSV)
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			row := records[1]
			Expect(row[3]).To(Equal(`Data, Warehouse "Phase 2"`))
			Expect(row[5]).To(Equal("includes on-call, weekend"))
		})

		It("should render dates and numbers in export form", func() {
			data, _, err := service.Export(report.FormatCSV)
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			row := records[1]
			Expect(row[1]).To(Equal("Carla Mendez"))
			Expect(row[4]).To(Equal("38.5"))
			Expect(row[6]).To(Equal("2026-08-17"))
			Expect(row[7]).To(Equal("2026-08-23"))
			Expect(row[10]).To(Equal("2026-08-20T09:30:00Z"))
		})

		It("should leave optional fields empty", func() {
			data, _, err := service.Export(report.FormatCSV)
			Expect(err).ToNot(HaveOccurred())

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			Expect(err).ToNot(HaveOccurred())

			pendingRow := records[2]
			Expect(pendingRow[5]).To(Equal(""))
			Expect(pendingRow[9]).To(Equal(""))
			Expect(pendingRow[10]).To(Equal(""))
			Expect(pendingRow[11]).To(Equal(""))
		})
	})

	Describe("JSON export", func() {
		It("should flatten the contractor into name and email fields", func() {
			data, contentType, err := service.Export(report.FormatJSON)
			Expect(err).ToNot(HaveOccurred())
			Expect(contentType).To(Equal("application/json"))

			var records []map[string]interface{}
			Expect(json.Unmarshal(data, &records)).To(Succeed())
			Expect(records).To(HaveLen(2))

			Expect(records[0]["contractorName"]).To(Equal("Carla Mendez"))
			Expect(records[0]["contractorEmail"]).To(Equal("carla@contractly.io"))
			Expect(records[0]["weekStartDate"]).To(Equal("2026-08-17"))
			Expect(records[0]["status"]).To(Equal(timesheet.StatusApproved))
			Expect(records[0]["approvedAt"]).To(Equal("2026-08-20T09:30:00Z"))
		})

		It("should keep null for absent optional fields", func() {
			data, _, err := service.Export(report.FormatJSON)
			Expect(err).ToNot(HaveOccurred())

			var records []map[string]interface{}
			Expect(json.Unmarshal(data, &records)).To(Succeed())

			pending := records[1]
			Expect(pending["notes"]).To(BeNil())
			Expect(pending["approvedBy"]).To(BeNil())
			Expect(pending["approvedAt"]).To(BeNil())
			Expect(pending["rejectionReason"]).To(BeNil())
		})
	})

	Describe("Filename", func() {
		It("should carry the export date and format", func() {
			now := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)
			Expect(report.Filename(report.FormatCSV, now)).To(Equal("timesheets-export-2026-08-29.csv"))
			Expect(report.Filename(report.FormatJSON, now)).To(Equal("timesheets-export-2026-08-29.json"))
		})
	})
})
