package user

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	internal "github.com/contractly/timesheet-management/internal"
)

// Repository defines the data access methods for users
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	List(limit, offset int) ([]*User, int64, error)
	Update(u *User) error
	Delete(id string) error
	GetManagedContractorIDs(recruiterID string) ([]string, error)
	ReplaceManagedContractors(recruiterID string, contractorIDs []string) error
	GetByIDs(ids []string) ([]*User, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "email", dto.Email)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("create user denied: email already registered", "email", dto.Email)
		return nil, internal.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:                dto.Email,
		FirstName:            dto.FirstName,
		LastName:             dto.LastName,
		Role:                 dto.Role,
		KeycloakID:           dto.KeycloakID,
		IsActive:             true,
		PasswordHash:         string(hash),
		ManagedContractorIDs: dto.ManagedContractorIDs,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	if u.Role == RoleRecruiter && len(dto.ManagedContractorIDs) > 0 {
		if err := s.repo.ReplaceManagedContractors(u.ID, dto.ManagedContractorIDs); err != nil {
			s.logger.Error("failed to assign managed contractors", "error", err, "user_id", u.ID)
			return nil, err
		}
	}

	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetByEmail(email string) (*User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) List(limit, offset int) ([]*User, int64, error) {
	users, total, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, 0, err
	}
	return users, total, nil
}

func (s *Service) Update(id string, dto UpdateUserDTO) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != nil {
		u.Email = *dto.Email
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Role != nil {
		u.Role = *dto.Role
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	if dto.ManagedContractorIDs != nil {
		if u.Role != RoleRecruiter {
			return nil, internal.NewValidationError("managed contractors can only be assigned to recruiters", internal.ErrCodeInvalidRole)
		}
		if err := s.repo.ReplaceManagedContractors(u.ID, dto.ManagedContractorIDs); err != nil {
			s.logger.Error("failed to update managed contractors", "error", err, "user_id", id)
			return nil, err
		}
		u.ManagedContractorIDs = dto.ManagedContractorIDs
	}

	s.logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) Delete(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrUserNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// GetManagedContractors returns the contractor users managed by a recruiter.
func (s *Service) GetManagedContractors(recruiterID string) ([]*User, error) {
	recruiter, err := s.repo.GetByID(recruiterID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if recruiter.Role != RoleRecruiter {
		return nil, internal.NewValidationError("user is not a recruiter", internal.ErrCodeInvalidRole)
	}
	if len(recruiter.ManagedContractorIDs) == 0 {
		return []*User{}, nil
	}
	return s.repo.GetByIDs(recruiter.ManagedContractorIDs)
}
