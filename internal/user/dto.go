package user

import (
	"errors"
)

// CreateUserDTO represents the request payload for creating a user
type CreateUserDTO struct {
	Email                string   `json:"email" validate:"required,email"`
	FirstName            string   `json:"first_name" validate:"required,min=1,max=100"`
	LastName             string   `json:"last_name" validate:"required,min=1,max=100"`
	Password             string   `json:"password" validate:"required,min=8"`
	Role                 string   `json:"role" validate:"required,oneof=admin recruiter contractor"`
	KeycloakID           *string  `json:"keycloak_id,omitempty"`
	ManagedContractorIDs []string `json:"managed_contractor_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// Validate covers the cross-field rules validator tags cannot express.
func (dto CreateUserDTO) Validate() error {
	if dto.Role != RoleRecruiter && len(dto.ManagedContractorIDs) > 0 {
		return errors.New("managed contractors can only be assigned to recruiters")
	}
	return nil
}

// UpdateUserDTO represents a partial update; absent fields are left unchanged.
type UpdateUserDTO struct {
	Email                *string  `json:"email,omitempty" validate:"omitempty,email"`
	FirstName            *string  `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName             *string  `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Role                 *string  `json:"role,omitempty" validate:"omitempty,oneof=admin recruiter contractor"`
	IsActive             *bool    `json:"is_active,omitempty"`
	ManagedContractorIDs []string `json:"managed_contractor_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID                   string   `json:"id"`
	Email                string   `json:"email"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	FullName             string   `json:"full_name"`
	Role                 string   `json:"role"`
	IsActive             bool     `json:"is_active"`
	ManagedContractorIDs []string `json:"managed_contractor_ids,omitempty"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		FullName:             u.FullName(),
		Role:                 u.Role,
		IsActive:             u.IsActive,
		ManagedContractorIDs: u.ManagedContractorIDs,
	}
}
