package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/contractly/timesheet-management/internal/timesheet"
	"github.com/contractly/timesheet-management/internal/user"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users, management assignments and timesheets for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"timesheets", "recruiter_contractors", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)

		seedUsers := []struct {
			email     string
			firstName string
			lastName  string
			role      string
		}{
			{"admin@contractly.io", "Ada", "Admin", user.RoleAdmin},
			{"rachel@contractly.io", "Rachel", "Reyes", user.RoleRecruiter},
			{"rob@contractly.io", "Rob", "Tanaka", user.RoleRecruiter},
			{"carla@contractly.io", "Carla", "Mendez", user.RoleContractor},
			{"chris@contractly.io", "Chris", "O'Neill", user.RoleContractor},
			{"cam@contractly.io", "Cam", "Fletcher", user.RoleContractor},
		}

		ids := make(map[string]string, len(seedUsers))
		for _, su := range seedUsers {
			id, err := ensureUser(db, su.email, su.firstName, su.lastName, su.role, string(hash))
			if err != nil {
				log.Fatalf("failed to seed user %s: %v", su.email, err)
			}
			ids[su.email] = id
		}

		assignments := map[string][]string{
			"rachel@contractly.io": {"carla@contractly.io", "chris@contractly.io"},
			"rob@contractly.io":    {"cam@contractly.io"},
		}
		for recruiterEmail, contractorEmails := range assignments {
			for _, contractorEmail := range contractorEmails {
				if err := ensureAssignment(db, ids[recruiterEmail], ids[contractorEmail]); err != nil {
					log.Fatalf("failed to assign %s to %s: %v", contractorEmail, recruiterEmail, err)
				}
			}
		}
		fmt.Println("Seeded recruiter assignments")

		weekStart := mondayOfWeek(time.Now().AddDate(0, 0, -7))
		sampleTimesheets := []struct {
			contractorEmail string
			projectName     string
			hoursWorked     float64
			status          string
		}{
			{"carla@contractly.io", "Payments Platform", 38.5, timesheet.StatusPending},
			{"chris@contractly.io", "Mobile App Rewrite", 40, timesheet.StatusApproved},
			{"cam@contractly.io", "Data Warehouse", 32, timesheet.StatusRejected},
		}
		for _, st := range sampleTimesheets {
			approvedBy := ""
			if st.status == timesheet.StatusApproved {
				approvedBy = ids["rachel@contractly.io"]
			}
			if err := ensureTimesheet(db, ids[st.contractorEmail], st.projectName, st.hoursWorked, st.status, approvedBy, weekStart); err != nil {
				log.Fatalf("failed to seed timesheet for %s: %v", st.contractorEmail, err)
			}
		}
		fmt.Println("Seeded sample timesheets")
	},
}

func ensureUser(db *gorm.DB, email, firstName, lastName, role, passwordHash string) (string, error) {
	var id string
	row := db.Raw("SELECT id FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&id); err == nil {
		fmt.Printf("user %s already exists\n", email)
		return id, nil
	}

	id = uuid.NewString()
	err := db.Exec(
		"INSERT INTO users (id, email, first_name, last_name, role, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
		id, email, firstName, lastName, role, passwordHash,
	).Error
	if err != nil {
		return "", err
	}
	fmt.Printf("Seeded %s user: %s\n", role, email)
	return id, nil
}

func ensureAssignment(db *gorm.DB, recruiterID, contractorID string) error {
	var exists int
	row := db.Raw("SELECT 1 FROM recruiter_contractors WHERE recruiter_id = ? AND contractor_id = ?", recruiterID, contractorID).Row()
	if err := row.Scan(&exists); err == nil {
		return nil
	}
	return db.Exec(
		"INSERT INTO recruiter_contractors (recruiter_id, contractor_id, created_at) VALUES (?, ?, now())",
		recruiterID, contractorID,
	).Error
}

func ensureTimesheet(db *gorm.DB, contractorID, projectName string, hoursWorked float64, status, approvedBy string, weekStart time.Time) error {
	weekEnd := weekStart.AddDate(0, 0, 6)

	var exists int
	row := db.Raw(
		"SELECT 1 FROM timesheets WHERE contractor_id = ? AND week_start_date = ? AND week_end_date = ?",
		contractorID, weekStart, weekEnd,
	).Row()
	if err := row.Scan(&exists); err == nil {
		return nil
	}

	if status == timesheet.StatusApproved && approvedBy != "" {
		return db.Exec(
			"INSERT INTO timesheets (id, contractor_id, project_name, hours_worked, week_start_date, week_end_date, status, approved_by, approved_at, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now(), now())",
			uuid.NewString(), contractorID, projectName, hoursWorked, weekStart, weekEnd, status, approvedBy,
		).Error
	}
	if status == timesheet.StatusRejected {
		return db.Exec(
			"INSERT INTO timesheets (id, contractor_id, project_name, hours_worked, week_start_date, week_end_date, status, rejection_reason, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
			uuid.NewString(), contractorID, projectName, hoursWorked, weekStart, weekEnd, status, "Hours do not match the project log",
		).Error
	}
	return db.Exec(
		"INSERT INTO timesheets (id, contractor_id, project_name, hours_worked, week_start_date, week_end_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())",
		uuid.NewString(), contractorID, projectName, hoursWorked, weekStart, weekEnd, status,
	).Error
}

func mondayOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
