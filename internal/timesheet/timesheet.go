package timesheet

import (
	"time"

	timesheetDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/contractly/timesheet-management/internal/user"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Timesheet struct {
	ID              string     `json:"id"`
	ContractorID    string     `json:"contractor_id"`
	ProjectName     string     `json:"project_name"`
	HoursWorked     float64    `json:"hours_worked"`
	Notes           *string    `json:"notes,omitempty"`
	WeekStartDate   time.Time  `json:"week_start_date"`
	WeekEndDate     time.Time  `json:"week_end_date"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Contractor *user.User `json:"contractor,omitempty"`
}

func (t *Timesheet) IsPending() bool {
	return t.Status == StatusPending
}

// IsEditable reports whether the timesheet can still be changed by its owner.
// Approved and rejected timesheets are terminal.
func (t *Timesheet) IsEditable() bool {
	return t.Status == StatusPending
}

func (t *Timesheet) CanBeApproved() bool {
	return t.Status == StatusPending
}

func (t *Timesheet) CanBeRejected() bool {
	return t.Status == StatusPending
}

func (t *Timesheet) Approve(recruiterID string, notes *string) {
	now := time.Now()
	t.Status = StatusApproved
	t.ApprovedBy = &recruiterID
	t.ApprovedAt = &now
	if notes != nil {
		t.Notes = notes
	}
	t.UpdatedAt = now
}

func (t *Timesheet) Reject(reason *string) {
	t.Status = StatusRejected
	t.RejectionReason = reason
	t.UpdatedAt = time.Now()
}

func NewTimesheet(contractorID string, dto CreateTimesheetDTO) (*Timesheet, error) {
	weekStart, weekEnd, err := dto.ParseDates()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Timesheet{
		ContractorID:  contractorID,
		ProjectName:   dto.ProjectName,
		HoursWorked:   dto.HoursWorked,
		Notes:         dto.Notes,
		WeekStartDate: weekStart,
		WeekEndDate:   weekEnd,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func ToDataModel(t *Timesheet) *timesheetDatamodel.Timesheet {
	return &timesheetDatamodel.Timesheet{
		ID:              t.ID,
		ContractorID:    t.ContractorID,
		ProjectName:     t.ProjectName,
		HoursWorked:     t.HoursWorked,
		Notes:           t.Notes,
		WeekStartDate:   t.WeekStartDate,
		WeekEndDate:     t.WeekEndDate,
		Status:          t.Status,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromDataModel(t *timesheetDatamodel.Timesheet) *Timesheet {
	ts := &Timesheet{
		ID:              t.ID,
		ContractorID:    t.ContractorID,
		ProjectName:     t.ProjectName,
		HoursWorked:     t.HoursWorked,
		Notes:           t.Notes,
		WeekStartDate:   t.WeekStartDate,
		WeekEndDate:     t.WeekEndDate,
		Status:          t.Status,
		ApprovedBy:      t.ApprovedBy,
		ApprovedAt:      t.ApprovedAt,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.Contractor != nil {
		ts.Contractor = user.FromDataModel(t.Contractor)
	}
	return ts
}

func FromDataModelSlice(timesheets []*timesheetDatamodel.Timesheet) []*Timesheet {
	result := make([]*Timesheet, len(timesheets))
	for i, t := range timesheets {
		result[i] = FromDataModel(t)
	}
	return result
}
