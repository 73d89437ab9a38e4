package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/contractly/timesheet-management/internal/core/datamodel/user"
	"github.com/contractly/timesheet-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt
	u.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	managed, err := r.GetManagedContractorIDs(dm.ID)
	if err != nil {
		return nil, err
	}
	return user.FromDataModelWithManaged(&dm, managed), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&dm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}

	managed, err := r.GetManagedContractorIDs(dm.ID)
	if err != nil {
		return nil, err
	}
	return user.FromDataModelWithManaged(&dm, managed), nil
}

func (r *UserRepository) List(limit, offset int) ([]*user.User, int64, error) {
	var dms []*userDatamodel.User
	var total int64

	if err := r.db.Model(&userDatamodel.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&dms).Error
	if err != nil {
		return nil, 0, err
	}

	return user.FromDataModelSlice(dms), total, nil
}

func (r *UserRepository) Update(u *user.User) error {
	dm := user.ToDataModel(u)
	dm.UpdatedAt = time.Now()
	return r.db.Save(dm).Error
}

func (r *UserRepository) Delete(id string) error {
	if err := r.db.Where("recruiter_id = ? OR contractor_id = ?", id, id).
		Delete(&userDatamodel.RecruiterContractor{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

func (r *UserRepository) GetManagedContractorIDs(recruiterID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&userDatamodel.RecruiterContractor{}).
		Where("recruiter_id = ?", recruiterID).
		Pluck("contractor_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceManagedContractors rewrites the management edges for a recruiter in
// one transaction so a partial failure cannot leave a mixed set.
func (r *UserRepository) ReplaceManagedContractors(recruiterID string, contractorIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recruiter_id = ?", recruiterID).
			Delete(&userDatamodel.RecruiterContractor{}).Error; err != nil {
			return err
		}
		for _, contractorID := range contractorIDs {
			edge := &userDatamodel.RecruiterContractor{
				RecruiterID:  recruiterID,
				ContractorID: contractorID,
				CreatedAt:    time.Now(),
			}
			if err := tx.Create(edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) GetByIDs(ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var dms []*userDatamodel.User
	if err := r.db.Where("id IN ?", ids).Find(&dms).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}
