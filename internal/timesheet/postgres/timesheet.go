package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/contractly/timesheet-management/internal"
	timesheetDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/contractly/timesheet-management/internal/timesheet"
)

type TimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

func (r *TimesheetRepository) Create(ts *timesheet.Timesheet) error {
	dm := timesheet.ToDataModel(ts)
	if err := r.db.Create(dm).Error; err != nil {
		// The unique index on (contractor_id, week_start_date, week_end_date)
		// is the authoritative duplicate-week guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateWeek
		}
		return err
	}
	ts.ID = dm.ID
	ts.CreatedAt = dm.CreatedAt
	ts.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *TimesheetRepository) GetByID(id string) (*timesheet.Timesheet, error) {
	var dm timesheetDatamodel.Timesheet
	err := r.db.Preload("Contractor").Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return timesheet.FromDataModel(&dm), nil
}

func (r *TimesheetRepository) GetByContractorWeek(contractorID string, weekStart, weekEnd time.Time) (*timesheet.Timesheet, error) {
	var dm timesheetDatamodel.Timesheet
	err := r.db.
		Where("contractor_id = ? AND week_start_date = ? AND week_end_date = ?", contractorID, weekStart, weekEnd).
		First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return timesheet.FromDataModel(&dm), nil
}

func (r *TimesheetRepository) ListAll(limit, offset int) ([]*timesheet.Timesheet, int64, error) {
	return r.list(r.db.Model(&timesheetDatamodel.Timesheet{}), limit, offset)
}

func (r *TimesheetRepository) ListByContractors(contractorIDs []string, limit, offset int) ([]*timesheet.Timesheet, int64, error) {
	query := r.db.Model(&timesheetDatamodel.Timesheet{}).Where("contractor_id IN ?", contractorIDs)
	return r.list(query, limit, offset)
}

func (r *TimesheetRepository) list(query *gorm.DB, limit, offset int) ([]*timesheet.Timesheet, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dms []*timesheetDatamodel.Timesheet
	err := query.
		Preload("Contractor").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, 0, err
	}

	return timesheet.FromDataModelSlice(dms), total, nil
}

func (r *TimesheetRepository) Update(ts *timesheet.Timesheet) error {
	dm := timesheet.ToDataModel(ts)
	err := r.db.Model(&timesheetDatamodel.Timesheet{}).
		Where("id = ?", ts.ID).
		Updates(map[string]interface{}{
			"project_name":    dm.ProjectName,
			"hours_worked":    dm.HoursWorked,
			"notes":           dm.Notes,
			"week_start_date": dm.WeekStartDate,
			"week_end_date":   dm.WeekEndDate,
			"updated_at":      dm.UpdatedAt,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateWeek
		}
		return err
	}
	return nil
}

func (r *TimesheetRepository) SetApproved(id, approvedBy string, approvedAt time.Time, notes *string) error {
	updates := map[string]interface{}{
		"status":      timesheet.StatusApproved,
		"approved_by": approvedBy,
		"approved_at": approvedAt,
		"updated_at":  time.Now(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	return r.db.Model(&timesheetDatamodel.Timesheet{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *TimesheetRepository) SetRejected(id string, reason *string) error {
	return r.db.Model(&timesheetDatamodel.Timesheet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           timesheet.StatusRejected,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		}).Error
}

func (r *TimesheetRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&timesheetDatamodel.Timesheet{}).Error
}
