package timesheet

import (
	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/user"
)

type Action string

const (
	ActionView    Action = "view"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// CanAct is the single authorization point for timesheet operations.
// Every handler path goes through here so the role matrix lives in one place:
//
//	admin:      view any, no lifecycle actions
//	recruiter:  view/approve/reject timesheets of managed contractors
//	contractor: view/update/delete own timesheets
func CanAct(caller *user.User, ts *Timesheet, action Action) error {
	if caller == nil {
		return internal.ErrForbiddenAccess
	}

	switch action {
	case ActionView:
		if caller.IsAdmin() {
			return nil
		}
		if caller.IsRecruiter() && caller.Manages(ts.ContractorID) {
			return nil
		}
		if caller.IsContractor() && ts.ContractorID == caller.ID {
			return nil
		}
	case ActionUpdate, ActionDelete:
		if caller.IsContractor() && ts.ContractorID == caller.ID {
			return nil
		}
	case ActionApprove, ActionReject:
		// Management membership is checked against the caller's current
		// managed set, loaded at authentication time, not a cached claim.
		if caller.IsRecruiter() && caller.Manages(ts.ContractorID) {
			return nil
		}
	}

	return internal.ErrForbiddenAccess
}
