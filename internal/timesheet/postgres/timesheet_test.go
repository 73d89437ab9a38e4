package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/timesheet"
)

func TestTimesheetRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimesheetRepository Suite")
}

type SQLiteUser struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Role         string    `gorm:"column:role"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsActive     bool      `gorm:"column:is_active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteTimesheet struct {
	ID              string     `gorm:"primaryKey"`
	ContractorID    string     `gorm:"column:contractor_id;not null;uniqueIndex:idx_timesheets_contractor_week"`
	ProjectName     string     `gorm:"column:project_name;not null"`
	HoursWorked     float64    `gorm:"column:hours_worked;not null"`
	Notes           *string    `gorm:"column:notes"`
	WeekStartDate   time.Time  `gorm:"column:week_start_date;not null;uniqueIndex:idx_timesheets_contractor_week"`
	WeekEndDate     time.Time  `gorm:"column:week_end_date;not null;uniqueIndex:idx_timesheets_contractor_week"`
	Status          string     `gorm:"column:status;default:'pending'"`
	ApprovedBy      *string    `gorm:"column:approved_by"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteTimesheet) TableName() string {
	return "timesheets"
}

var _ = Describe("TimesheetRepository", func() {
	var (
		db           *gorm.DB
		repo         *TimesheetRepository
		contractorID string

		weekStart = time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
		weekEnd   = time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	)

	newTimesheet := func(contractor string, start, end time.Time) *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ContractorID:  contractor,
			ProjectName:   "Payments Platform",
			HoursWorked:   40,
			WeekStartDate: start,
			WeekEndDate:   end,
			Status:        timesheet.StatusPending,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteTimesheet{})
		Expect(err).NotTo(HaveOccurred())

		contractorID = uuid.NewString()
		err = db.Create(&SQLiteUser{
			ID:        contractorID,
			Email:     "carla@contractly.io",
			FirstName: "Carla",
			LastName:  "Mendez",
			Role:      "contractor",
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
		Expect(err).NotTo(HaveOccurred())

		repo = NewTimesheetRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("should create a timesheet and assign an id", func() {
			ts := newTimesheet(contractorID, weekStart, weekEnd)

			err := repo.Create(ts)
			Expect(err).NotTo(HaveOccurred())
			Expect(ts.ID).NotTo(BeEmpty())
		})

		It("should map the unique constraint to the duplicate week error", func() {
			Expect(repo.Create(newTimesheet(contractorID, weekStart, weekEnd))).To(Succeed())

			err := repo.Create(newTimesheet(contractorID, weekStart, weekEnd))
			Expect(err).To(Equal(internal.ErrDuplicateWeek))
		})

		It("should allow the same week for different contractors", func() {
			otherID := uuid.NewString()
			err := db.Create(&SQLiteUser{
				ID:       otherID,
				Email:    "chris@contractly.io",
				Role:     "contractor",
				IsActive: true,
			}).Error
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.Create(newTimesheet(contractorID, weekStart, weekEnd))).To(Succeed())
			Expect(repo.Create(newTimesheet(otherID, weekStart, weekEnd))).To(Succeed())
		})
	})

	Describe("GetByID", func() {
		It("should load the contractor association", func() {
			ts := newTimesheet(contractorID, weekStart, weekEnd)
			Expect(repo.Create(ts)).To(Succeed())

			found, err := repo.GetByID(ts.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.Contractor).NotTo(BeNil())
			Expect(found.Contractor.Email).To(Equal("carla@contractly.io"))
		})

		It("should return nil for an unknown id", func() {
			found, err := repo.GetByID(uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetByContractorWeek", func() {
		It("should find a timesheet by its week boundaries", func() {
			ts := newTimesheet(contractorID, weekStart, weekEnd)
			Expect(repo.Create(ts)).To(Succeed())

			found, err := repo.GetByContractorWeek(contractorID, weekStart, weekEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ID).To(Equal(ts.ID))
		})

		It("should return nil when the week is free", func() {
			found, err := repo.GetByContractorWeek(contractorID, weekStart, weekEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("listing", func() {
		BeforeEach(func() {
			for i := 0; i < 3; i++ {
				start := weekStart.AddDate(0, 0, 7*i)
				end := weekEnd.AddDate(0, 0, 7*i)
				ts := newTimesheet(contractorID, start, end)
				ts.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
				Expect(repo.Create(ts)).To(Succeed())
			}
		})

		It("should return newest first with a total count", func() {
			results, total, err := repo.ListAll(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(results).To(HaveLen(3))
			Expect(results[0].CreatedAt.After(results[2].CreatedAt)).To(BeTrue())
		})

		It("should paginate without changing the total", func() {
			results, total, err := repo.ListAll(2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(results).To(HaveLen(1))
		})

		It("should filter by contractor ids", func() {
			results, total, err := repo.ListByContractors([]string{uuid.NewString()}, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(0)))
			Expect(results).To(BeEmpty())

			results, total, err = repo.ListByContractors([]string{contractorID}, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(results).To(HaveLen(3))
		})
	})

	Describe("status transitions", func() {
		var ts *timesheet.Timesheet

		BeforeEach(func() {
			ts = newTimesheet(contractorID, weekStart, weekEnd)
			Expect(repo.Create(ts)).To(Succeed())
		})

		It("should persist approval fields", func() {
			approverID := uuid.NewString()
			approvedAt := time.Now()
			notes := "verified against the contract"

			err := repo.SetApproved(ts.ID, approverID, approvedAt, &notes)
			Expect(err).NotTo(HaveOccurred())

			found, err := repo.GetByID(ts.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal(timesheet.StatusApproved))
			Expect(*found.ApprovedBy).To(Equal(approverID))
			Expect(found.ApprovedAt).NotTo(BeNil())
			Expect(*found.Notes).To(Equal(notes))
		})

		It("should persist only the reason on rejection", func() {
			reason := "hours exceed the weekly cap"

			err := repo.SetRejected(ts.ID, &reason)
			Expect(err).NotTo(HaveOccurred())

			found, err := repo.GetByID(ts.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal(timesheet.StatusRejected))
			Expect(*found.RejectionReason).To(Equal(reason))
			Expect(found.ApprovedBy).To(BeNil())
			Expect(found.ApprovedAt).To(BeNil())
		})
	})

	Describe("Update", func() {
		It("should map week collisions to the duplicate week error", func() {
			first := newTimesheet(contractorID, weekStart, weekEnd)
			Expect(repo.Create(first)).To(Succeed())

			second := newTimesheet(contractorID, weekStart.AddDate(0, 0, 7), weekEnd.AddDate(0, 0, 7))
			Expect(repo.Create(second)).To(Succeed())

			second.WeekStartDate = weekStart
			second.WeekEndDate = weekEnd
			err := repo.Update(second)
			Expect(err).To(Equal(internal.ErrDuplicateWeek))
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			ts := newTimesheet(contractorID, weekStart, weekEnd)
			Expect(repo.Create(ts)).To(Succeed())

			Expect(repo.Delete(ts.ID)).To(Succeed())

			found, err := repo.GetByID(ts.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})
})
