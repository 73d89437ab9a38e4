package postgres

import (
	"gorm.io/gorm"

	timesheetDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/contractly/timesheet-management/internal/timesheet"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListAllWithContractor() ([]*timesheet.Timesheet, error) {
	var dms []*timesheetDatamodel.Timesheet
	err := r.db.
		Preload("Contractor").
		Order("created_at DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return timesheet.FromDataModelSlice(dms), nil
}
