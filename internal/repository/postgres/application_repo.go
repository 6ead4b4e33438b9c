package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

// ApplicationRepo implements repository.ApplicationRepository.
type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(application *entity.ServiceApplication) error {
	return r.db.Create(application).Error
}

func (r *ApplicationRepo) GetByID(id uint) (*entity.ServiceApplication, error) {
	var application entity.ServiceApplication
	err := r.db.First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepo) GetByReference(reference string) (*entity.ServiceApplication, error) {
	var application entity.ServiceApplication
	err := r.db.Where("reference = ?", reference).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepo) ListByUser(userID uint, limit, offset int) ([]entity.ServiceApplication, error) {
	var applications []entity.ServiceApplication
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepo) UpdateStatus(id uint, status, remark string) error {
	result := r.db.Model(&entity.ServiceApplication{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"remark":     remark,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
