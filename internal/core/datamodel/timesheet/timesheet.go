package timesheet

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/user"
)

type Timesheet struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	ContractorID    string     `json:"contractor_id" gorm:"column:contractor_id;type:uuid;not null;uniqueIndex:idx_timesheets_contractor_week"`
	ProjectName     string     `json:"project_name" gorm:"column:project_name;not null"`
	HoursWorked     float64    `json:"hours_worked" gorm:"column:hours_worked;type:decimal(5,2);not null"`
	Notes           *string    `json:"notes,omitempty" gorm:"column:notes"`
	WeekStartDate   time.Time  `json:"week_start_date" gorm:"column:week_start_date;type:date;uniqueIndex:idx_timesheets_contractor_week"`
	WeekEndDate     time.Time  `json:"week_end_date" gorm:"column:week_end_date;type:date;uniqueIndex:idx_timesheets_contractor_week"`
	Status          string     `json:"status" gorm:"not null;default:pending"`
	ApprovedBy      *string    `json:"approved_by,omitempty" gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty" gorm:"column:approved_at"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`

	Contractor *userDatamodel.User `json:"contractor,omitempty" gorm:"foreignKey:ContractorID"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
