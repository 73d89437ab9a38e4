package timesheet

import (
	"time"

	"github.com/contractly/timesheet-management/internal"
)

const dateLayout = "2006-01-02"

type CreateTimesheetDTO struct {
	ProjectName   string  `json:"projectName" validate:"required"`
	HoursWorked   float64 `json:"hoursWorked" validate:"required,gt=0,lte=168"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty"`
	WeekStartDate string  `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
	WeekEndDate   string  `json:"weekEndDate" validate:"required,datetime=2006-01-02"`
}

// ParseDates converts the wire-format week boundaries into time values.
// Validation tags already guarantee the layout, so errors here only occur
// for DTOs constructed in code.
func (d CreateTimesheetDTO) ParseDates() (weekStart, weekEnd time.Time, err error) {
	weekStart, err = time.Parse(dateLayout, d.WeekStartDate)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("weekStartDate", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	weekEnd, err = time.Parse(dateLayout, d.WeekEndDate)
	if err != nil {
		return time.Time{}, time.Time{}, internal.NewValidationFieldError("weekEndDate", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return weekStart, weekEnd, nil
}

type UpdateTimesheetDTO struct {
	ProjectName   *string  `json:"projectName,omitempty" validate:"omitempty,min=1"`
	HoursWorked   *float64 `json:"hoursWorked,omitempty" validate:"omitempty,gt=0,lte=168"`
	Notes         *string  `json:"notes,omitempty"`
	WeekStartDate *string  `json:"weekStartDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WeekEndDate   *string  `json:"weekEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ApproveTimesheetDTO struct {
	Notes *string `json:"notes,omitempty"`
}

type RejectTimesheetDTO struct {
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

type PaginatedTimesheets struct {
	Data  []*Timesheet `json:"data"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}
