package repository

import "github.com/smartjanseva/janseva-api/internal/domain/entity"

// ApplicationRepository persists service applications.
type ApplicationRepository interface {
	Create(application *entity.ServiceApplication) error
	GetByID(id uint) (*entity.ServiceApplication, error)
	GetByReference(reference string) (*entity.ServiceApplication, error)
	ListByUser(userID uint, limit, offset int) ([]entity.ServiceApplication, error)
	UpdateStatus(id uint, status, remark string) error
}
