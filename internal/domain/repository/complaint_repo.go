package repository

import "github.com/smartjanseva/janseva-api/internal/domain/entity"

// ComplaintRepository persists citizen complaints.
type ComplaintRepository interface {
	Create(complaint *entity.Complaint) error
	GetByID(id uint) (*entity.Complaint, error)
	GetByReference(reference string) (*entity.Complaint, error)
	ListByUser(userID uint, limit, offset int) ([]entity.Complaint, error)
	List(status string, limit, offset int) ([]entity.Complaint, error)
	UpdateStatus(id uint, status, remark string) error
	CountByStatus() (map[string]int64, error)
}
