package timesheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/core/events"
	"github.com/contractly/timesheet-management/internal/user"
)

type Repository interface {
	Create(ts *Timesheet) error
	GetByID(id string) (*Timesheet, error)
	GetByContractorWeek(contractorID string, weekStart, weekEnd time.Time) (*Timesheet, error)
	ListAll(limit, offset int) ([]*Timesheet, int64, error)
	ListByContractors(contractorIDs []string, limit, offset int) ([]*Timesheet, int64, error)
	Update(ts *Timesheet) error
	SetApproved(id, approvedBy string, approvedAt time.Time, notes *string) error
	SetRejected(id string, reason *string) error
	Delete(id string) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create submits a new pending timesheet for the calling contractor. One
// timesheet per contractor per week: the storage unique constraint is the
// authority, the pre-check just gives a friendlier fast path.
func (s *Service) Create(caller *user.User, dto CreateTimesheetDTO) (*Timesheet, error) {
	ts, err := NewTimesheet(caller.ID, dto)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByContractorWeek(ts.ContractorID, ts.WeekStartDate, ts.WeekEndDate)
	if err != nil {
		s.logger.Error("failed to check for existing timesheet",
			"contractor_id", ts.ContractorID,
			"error", err)
		return nil, internal.NewInternalError("failed to create timesheet", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateWeek
	}

	if err := s.repo.Create(ts); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to create timesheet",
			"contractor_id", ts.ContractorID,
			"error", err)
		return nil, internal.NewInternalError("failed to create timesheet", err)
	}

	s.logger.Info("timesheet created",
		"timesheet_id", ts.ID,
		"contractor_id", ts.ContractorID,
		"project_name", ts.ProjectName)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewTimesheetCreatedEvent(ts.ID, ts.ContractorID, ts.ProjectName, ts.HoursWorked))
	}

	return ts, nil
}

// FindAccessible lists timesheets visible to the caller, newest first.
// Admins see everything, recruiters see their managed contractors' sheets,
// contractors see only their own.
func (s *Service) FindAccessible(caller *user.User, page, limit int) (*PaginatedTimesheets, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var (
		timesheets []*Timesheet
		total      int64
		err        error
	)

	switch {
	case caller.IsAdmin():
		timesheets, total, err = s.repo.ListAll(limit, offset)
	case caller.IsRecruiter():
		if len(caller.ManagedContractorIDs) == 0 {
			return &PaginatedTimesheets{Data: []*Timesheet{}, Total: 0, Page: page, Limit: limit}, nil
		}
		timesheets, total, err = s.repo.ListByContractors(caller.ManagedContractorIDs, limit, offset)
	default:
		timesheets, total, err = s.repo.ListByContractors([]string{caller.ID}, limit, offset)
	}

	if err != nil {
		s.logger.Error("failed to list timesheets",
			"caller_id", caller.ID,
			"role", caller.Role,
			"error", err)
		return nil, internal.NewInternalError("failed to list timesheets", err)
	}

	return &PaginatedTimesheets{
		Data:  timesheets,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *Service) FindOne(caller *user.User, id string) (*Timesheet, error) {
	ts, err := s.getTimesheet(id)
	if err != nil {
		return nil, err
	}
	if err := CanAct(caller, ts, ActionView); err != nil {
		return nil, err
	}
	return ts, nil
}

// Update patches a pending timesheet owned by the caller. Changing the week
// to one that already has a timesheet trips the same duplicate rule as Create.
func (s *Service) Update(caller *user.User, id string, dto UpdateTimesheetDTO) (*Timesheet, error) {
	ts, err := s.getTimesheet(id)
	if err != nil {
		return nil, err
	}
	if err := CanAct(caller, ts, ActionUpdate); err != nil {
		return nil, err
	}
	if !ts.IsEditable() {
		return nil, internal.ErrInvalidStatus
	}

	if dto.ProjectName != nil {
		ts.ProjectName = *dto.ProjectName
	}
	if dto.HoursWorked != nil {
		ts.HoursWorked = *dto.HoursWorked
	}
	if dto.Notes != nil {
		ts.Notes = dto.Notes
	}
	if dto.WeekStartDate != nil {
		weekStart, parseErr := time.Parse(dateLayout, *dto.WeekStartDate)
		if parseErr != nil {
			return nil, internal.NewValidationFieldError("weekStartDate", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		ts.WeekStartDate = weekStart
	}
	if dto.WeekEndDate != nil {
		weekEnd, parseErr := time.Parse(dateLayout, *dto.WeekEndDate)
		if parseErr != nil {
			return nil, internal.NewValidationFieldError("weekEndDate", "must be a valid date in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		ts.WeekEndDate = weekEnd
	}
	ts.UpdatedAt = time.Now()

	if err := s.repo.Update(ts); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to update timesheet",
			"timesheet_id", id,
			"error", err)
		return nil, internal.NewInternalError("failed to update timesheet", err)
	}

	return ts, nil
}

// Approve transitions a pending timesheet to approved and records who
// approved it and when. Optional notes replace the contractor's notes.
func (s *Service) Approve(caller *user.User, id string, dto ApproveTimesheetDTO) (*Timesheet, error) {
	ts, err := s.getTimesheet(id)
	if err != nil {
		return nil, err
	}
	if err := CanAct(caller, ts, ActionApprove); err != nil {
		return nil, err
	}
	if !ts.CanBeApproved() {
		return nil, internal.ErrInvalidStatus
	}

	ts.Approve(caller.ID, dto.Notes)
	if err := s.repo.SetApproved(ts.ID, caller.ID, *ts.ApprovedAt, dto.Notes); err != nil {
		s.logger.Error("failed to approve timesheet",
			"timesheet_id", id,
			"approver_id", caller.ID,
			"error", err)
		return nil, internal.NewInternalError("failed to approve timesheet", err)
	}

	s.logger.Info("timesheet approved",
		"timesheet_id", ts.ID,
		"contractor_id", ts.ContractorID,
		"approver_id", caller.ID)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewTimesheetApprovedEvent(ts.ID, ts.ContractorID, caller.ID))
	}

	return ts, nil
}

// Reject transitions a pending timesheet to rejected. Only the rejection
// reason is recorded; approved_by and approved_at stay null.
func (s *Service) Reject(caller *user.User, id string, dto RejectTimesheetDTO) (*Timesheet, error) {
	ts, err := s.getTimesheet(id)
	if err != nil {
		return nil, err
	}
	if err := CanAct(caller, ts, ActionReject); err != nil {
		return nil, err
	}
	if !ts.CanBeRejected() {
		return nil, internal.ErrInvalidStatus
	}

	ts.Reject(dto.RejectionReason)
	if err := s.repo.SetRejected(ts.ID, dto.RejectionReason); err != nil {
		s.logger.Error("failed to reject timesheet",
			"timesheet_id", id,
			"recruiter_id", caller.ID,
			"error", err)
		return nil, internal.NewInternalError("failed to reject timesheet", err)
	}

	s.logger.Info("timesheet rejected",
		"timesheet_id", ts.ID,
		"contractor_id", ts.ContractorID,
		"recruiter_id", caller.ID)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewTimesheetRejectedEvent(ts.ID, ts.ContractorID, caller.ID, derefOrEmpty(dto.RejectionReason)))
	}

	return ts, nil
}

func (s *Service) Delete(caller *user.User, id string) error {
	ts, err := s.getTimesheet(id)
	if err != nil {
		return err
	}
	if err := CanAct(caller, ts, ActionDelete); err != nil {
		return err
	}
	if !ts.IsPending() {
		return internal.ErrInvalidStatus
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete timesheet",
			"timesheet_id", id,
			"error", err)
		return internal.NewInternalError("failed to delete timesheet", err)
	}

	s.logger.Info("timesheet deleted",
		"timesheet_id", id,
		"contractor_id", ts.ContractorID)

	return nil
}

func (s *Service) getTimesheet(id string) (*Timesheet, error) {
	ts, err := s.repo.GetByID(id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get timesheet",
			"timesheet_id", id,
			"error", err)
		return nil, internal.NewInternalError("failed to get timesheet", err)
	}
	if ts == nil {
		return nil, internal.ErrTimesheetNotFound
	}
	return ts, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
