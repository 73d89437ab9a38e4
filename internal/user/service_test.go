package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contractly/timesheet-management/internal"
	"github.com/contractly/timesheet-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "UserService Suite")
}

type mockUserRepository struct {
	users       map[string]*user.User
	byEmail     map[string]*user.User
	managed     map[string][]string
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:   make(map[string]*user.User),
		byEmail: make(map[string]*user.User),
		managed: make(map[string][]string),
	}
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = uuid.NewString()
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) GetByID(id string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.ManagedContractorIDs = m.managed[id]
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) List(limit, offset int) ([]*user.User, int64, error) {
	all := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	if offset >= len(all) {
		return []*user.User{}, int64(len(all)), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) Delete(id string) error {
	u, ok := m.users[id]
	if !ok {
		return errors.New("user not found")
	}
	delete(m.byEmail, u.Email)
	delete(m.users, id)
	delete(m.managed, id)
	return nil
}

func (m *mockUserRepository) GetManagedContractorIDs(recruiterID string) ([]string, error) {
	return m.managed[recruiterID], nil
}

func (m *mockUserRepository) ReplaceManagedContractors(recruiterID string, contractorIDs []string) error {
	m.managed[recruiterID] = contractorIDs
	return nil
}

func (m *mockUserRepository) GetByIDs(ids []string) ([]*user.User, error) {
	result := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	validDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			Email:     "carla@contractly.io",
			FirstName: "Carla",
			LastName:  "Mendez",
			Password:  "secret-password",
			Role:      user.RoleContractor,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, lg)
	})

	Describe("Create", func() {
		It("should create an active user with a hashed password", func() {
			u, err := service.Create(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).ToNot(BeEmpty())
			Expect(u.IsActive).To(BeTrue())
			Expect(u.PasswordHash).ToNot(Equal("secret-password"))
			Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password"))).To(Succeed())
		})

		It("should refuse a duplicate email", func() {
			_, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Create(validDTO())
			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should refuse managed contractors on non-recruiters", func() {
			dto := validDTO()
			dto.ManagedContractorIDs = []string{uuid.NewString()}

			_, err := service.Create(dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should persist managed contractors for recruiters", func() {
			contractorID := uuid.NewString()
			dto := validDTO()
			dto.Email = "rachel@contractly.io"
			dto.Role = user.RoleRecruiter
			dto.ManagedContractorIDs = []string{contractorID}

			u, err := service.Create(dto)
			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.managed[u.ID]).To(Equal([]string{contractorID}))
		})
	})

	Describe("GetByID", func() {
		It("should return not found for unknown ids", func() {
			_, err := service.GetByID(uuid.NewString())
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("Update", func() {
		var created *user.User

		BeforeEach(func() {
			var err error
			created, err = service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should patch only provided fields", func() {
			firstName := "Carlotta"
			u, err := service.Update(created.ID, user.UpdateUserDTO{FirstName: &firstName})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.FirstName).To(Equal(firstName))
			Expect(u.Email).To(Equal("carla@contractly.io"))
		})

		It("should deactivate a user", func() {
			inactive := false
			u, err := service.Update(created.ID, user.UpdateUserDTO{IsActive: &inactive})

			Expect(err).ToNot(HaveOccurred())
			Expect(u.IsActive).To(BeFalse())
		})

		It("should refuse assigning contractors to a non-recruiter", func() {
			_, err := service.Update(created.ID, user.UpdateUserDTO{
				ManagedContractorIDs: []string{uuid.NewString()},
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should rewrite the managed set for recruiters", func() {
			role := user.RoleRecruiter
			_, err := service.Update(created.ID, user.UpdateUserDTO{Role: &role})
			Expect(err).ToNot(HaveOccurred())

			first := uuid.NewString()
			second := uuid.NewString()
			u, err := service.Update(created.ID, user.UpdateUserDTO{
				ManagedContractorIDs: []string{first, second},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(u.ManagedContractorIDs).To(Equal([]string{first, second}))
			Expect(mockRepo.managed[created.ID]).To(Equal([]string{first, second}))
		})
	})

	Describe("Delete", func() {
		It("should remove an existing user", func() {
			created, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())

			_, err = service.GetByID(created.ID)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should return not found for unknown ids", func() {
			Expect(service.Delete(uuid.NewString())).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("GetManagedContractors", func() {
		It("should resolve contractor users for a recruiter", func() {
			contractor, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			recruiterDTO := validDTO()
			recruiterDTO.Email = "rachel@contractly.io"
			recruiterDTO.Role = user.RoleRecruiter
			recruiterDTO.ManagedContractorIDs = []string{contractor.ID}
			recruiter, err := service.Create(recruiterDTO)
			Expect(err).ToNot(HaveOccurred())

			contractors, err := service.GetManagedContractors(recruiter.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(contractors).To(HaveLen(1))
			Expect(contractors[0].ID).To(Equal(contractor.ID))
		})

		It("should refuse non-recruiters", func() {
			contractor, err := service.Create(validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetManagedContractors(contractor.ID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should return an empty list for a recruiter with no contractors", func() {
			dto := validDTO()
			dto.Email = "rob@contractly.io"
			dto.Role = user.RoleRecruiter
			recruiter, err := service.Create(dto)
			Expect(err).ToNot(HaveOccurred())

			contractors, err := service.GetManagedContractors(recruiter.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(contractors).To(BeEmpty())
		})
	})
})
