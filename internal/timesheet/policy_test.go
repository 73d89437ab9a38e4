package timesheet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/timesheet"
	"github.com/contractly/timesheet-management/internal/user"
)

var _ = Describe("CanAct", func() {
	var (
		owned *timesheet.Timesheet

		contractor *user.User
		recruiter  *user.User
		admin      *user.User
	)

	BeforeEach(func() {
		contractor = &user.User{ID: "c-1", Role: user.RoleContractor}
		recruiter = &user.User{ID: "r-1", Role: user.RoleRecruiter, ManagedContractorIDs: []string{"c-1"}}
		admin = &user.User{ID: "a-1", Role: user.RoleAdmin}

		owned = &timesheet.Timesheet{ID: "t-1", ContractorID: "c-1", Status: timesheet.StatusPending}
	})

	It("should deny everything for a nil caller", func() {
		Expect(timesheet.CanAct(nil, owned, timesheet.ActionView)).To(Equal(internal.ErrForbiddenAccess))
	})

	DescribeTable("role matrix",
		func(caller func() *user.User, action timesheet.Action, allowed bool) {
			err := timesheet.CanAct(caller(), owned, action)
			if allowed {
				Expect(err).ToNot(HaveOccurred())
			} else {
				Expect(err).To(Equal(internal.ErrForbiddenAccess))
			}
		},
		Entry("admin can view", func() *user.User { return admin }, timesheet.ActionView, true),
		Entry("admin cannot approve", func() *user.User { return admin }, timesheet.ActionApprove, false),
		Entry("admin cannot reject", func() *user.User { return admin }, timesheet.ActionReject, false),
		Entry("admin cannot update", func() *user.User { return admin }, timesheet.ActionUpdate, false),
		Entry("admin cannot delete", func() *user.User { return admin }, timesheet.ActionDelete, false),
		Entry("owner can view", func() *user.User { return contractor }, timesheet.ActionView, true),
		Entry("owner can update", func() *user.User { return contractor }, timesheet.ActionUpdate, true),
		Entry("owner can delete", func() *user.User { return contractor }, timesheet.ActionDelete, true),
		Entry("owner cannot approve", func() *user.User { return contractor }, timesheet.ActionApprove, false),
		Entry("managing recruiter can view", func() *user.User { return recruiter }, timesheet.ActionView, true),
		Entry("managing recruiter can approve", func() *user.User { return recruiter }, timesheet.ActionApprove, true),
		Entry("managing recruiter can reject", func() *user.User { return recruiter }, timesheet.ActionReject, true),
		Entry("managing recruiter cannot update", func() *user.User { return recruiter }, timesheet.ActionUpdate, false),
	)

	It("should deny a recruiter whose managed set does not include the contractor", func() {
		stranger := &user.User{ID: "r-2", Role: user.RoleRecruiter, ManagedContractorIDs: []string{"c-9"}}
		for _, action := range []timesheet.Action{timesheet.ActionView, timesheet.ActionApprove, timesheet.ActionReject} {
			Expect(timesheet.CanAct(stranger, owned, action)).To(Equal(internal.ErrForbiddenAccess))
		}
	})

	It("should deny another contractor entirely", func() {
		stranger := &user.User{ID: "c-2", Role: user.RoleContractor}
		for _, action := range []timesheet.Action{timesheet.ActionView, timesheet.ActionUpdate, timesheet.ActionDelete} {
			Expect(timesheet.CanAct(stranger, owned, action)).To(Equal(internal.ErrForbiddenAccess))
		}
	})
})
