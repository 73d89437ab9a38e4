package user

import (
	"errors"
	"time"

	userDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/user"
)

const (
	RoleAdmin      = "admin"
	RoleRecruiter  = "recruiter"
	RoleContractor = "contractor"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRecruiter, RoleContractor:
		return true
	}
	return false
}

type User struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Role                 string    `json:"role"`
	KeycloakID           *string   `json:"keycloak_id,omitempty"`
	IsActive             bool      `json:"is_active"`
	ManagedContractorIDs []string  `json:"managed_contractor_ids,omitempty"`
	PasswordHash         string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}

func (u *User) IsContractor() bool {
	return u.Role == RoleContractor
}

// Manages reports whether this user is a recruiter managing the given contractor.
func (u *User) Manages(contractorID string) bool {
	if u.Role != RoleRecruiter {
		return false
	}
	for _, id := range u.ManagedContractorIDs {
		if id == contractorID {
			return true
		}
	}
	return false
}

var ErrNotFound = errors.New("user not found")

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		KeycloakID:   u.KeycloakID,
		IsActive:     u.IsActive,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		KeycloakID:   u.KeycloakID,
		IsActive:     u.IsActive,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelWithManaged(u *userDatamodel.User, managedIDs []string) *User {
	domainUser := FromDataModel(u)
	domainUser.ManagedContractorIDs = managedIDs
	return domainUser
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
