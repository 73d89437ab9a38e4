package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;not null"`
	Role         string    `json:"role" gorm:"not null;default:contractor"`
	KeycloakID   *string   `json:"keycloak_id,omitempty" gorm:"column:keycloak_id"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// RecruiterContractor is one management edge between a recruiter and a
// contractor. The original design embedded the contractor ids on the recruiter
// row; a relation table keeps both directions queryable.
type RecruiterContractor struct {
	RecruiterID  string    `json:"recruiter_id" gorm:"primaryKey;type:uuid;column:recruiter_id"`
	ContractorID string    `json:"contractor_id" gorm:"primaryKey;type:uuid;column:contractor_id"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (RecruiterContractor) TableName() string {
	return "recruiter_contractors"
}
