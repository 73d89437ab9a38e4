package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/contractly/timesheet-management/internal/user"
)

// Repository resolves callers for the auth service. Only active accounts are
// visible here; deactivated users cannot authenticate or refresh.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetActiveByEmail(email string) (*user.User, error) {
	return r.getActive("email = ?", email)
}

func (r *Repository) GetActiveByID(id string) (*user.User, error) {
	return r.getActive("id = ?", id)
}

func (r *Repository) getActive(cond string, arg string) (*user.User, error) {
	var u user.User
	query := fmt.Sprintf(`SELECT id, email, first_name, last_name, role, is_active, created_at, updated_at
	         FROM users WHERE %s AND is_active = true`, cond)

	row := r.db.Raw(query, arg).Row()
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	managed, err := r.managedContractorIDs(u.ID)
	if err != nil {
		return nil, err
	}
	u.ManagedContractorIDs = managed
	return &u, nil
}

func (r *Repository) managedContractorIDs(recruiterID string) ([]string, error) {
	rows, err := r.db.Raw(`SELECT contractor_id FROM recruiter_contractors WHERE recruiter_id = ?`, recruiterID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
