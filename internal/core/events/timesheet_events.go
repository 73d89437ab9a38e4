package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTimesheetCreated  = "timesheet.created"
	EventTypeTimesheetApproved = "timesheet.approved"
	EventTypeTimesheetRejected = "timesheet.rejected"
)

type TimesheetCreatedEvent struct {
	BaseEvent
	TimesheetID  string  `json:"timesheet_id"`
	ContractorID string  `json:"contractor_id"`
	ProjectName  string  `json:"project_name"`
	HoursWorked  float64 `json:"hours_worked"`
}

func NewTimesheetCreatedEvent(timesheetID, contractorID, projectName string, hoursWorked float64) *TimesheetCreatedEvent {
	return &TimesheetCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_id":  timesheetID,
				"contractor_id": contractorID,
				"project_name":  projectName,
				"hours_worked":  hoursWorked,
			},
		},
		TimesheetID:  timesheetID,
		ContractorID: contractorID,
		ProjectName:  projectName,
		HoursWorked:  hoursWorked,
	}
}

type TimesheetApprovedEvent struct {
	BaseEvent
	TimesheetID  string `json:"timesheet_id"`
	ContractorID string `json:"contractor_id"`
	ApprovedBy   string `json:"approved_by"`
}

func NewTimesheetApprovedEvent(timesheetID, contractorID, approvedBy string) *TimesheetApprovedEvent {
	return &TimesheetApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_id":  timesheetID,
				"contractor_id": contractorID,
				"approved_by":   approvedBy,
			},
		},
		TimesheetID:  timesheetID,
		ContractorID: contractorID,
		ApprovedBy:   approvedBy,
	}
}

type TimesheetRejectedEvent struct {
	BaseEvent
	TimesheetID  string `json:"timesheet_id"`
	ContractorID string `json:"contractor_id"`
	RejectedBy   string `json:"rejected_by"`
	Reason       string `json:"reason"`
}

func NewTimesheetRejectedEvent(timesheetID, contractorID, rejectedBy, reason string) *TimesheetRejectedEvent {
	return &TimesheetRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_id":  timesheetID,
				"contractor_id": contractorID,
				"rejected_by":   rejectedBy,
				"reason":        reason,
			},
		},
		TimesheetID:  timesheetID,
		ContractorID: contractorID,
		RejectedBy:   rejectedBy,
		Reason:       reason,
	}
}
