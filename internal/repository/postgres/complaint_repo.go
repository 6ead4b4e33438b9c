package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

// ComplaintRepo implements repository.ComplaintRepository.
type ComplaintRepo struct {
	db *gorm.DB
}

func NewComplaintRepo(db *gorm.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

func (r *ComplaintRepo) Create(complaint *entity.Complaint) error {
	return r.db.Create(complaint).Error
}

func (r *ComplaintRepo) GetByID(id uint) (*entity.Complaint, error) {
	var complaint entity.Complaint
	err := r.db.First(&complaint, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepo) GetByReference(reference string) (*entity.Complaint, error) {
	var complaint entity.Complaint
	err := r.db.Where("reference = ?", reference).First(&complaint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepo) ListByUser(userID uint, limit, offset int) ([]entity.Complaint, error) {
	var complaints []entity.Complaint
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&complaints).Error
	return complaints, err
}

// List returns complaints, optionally filtered by status.
func (r *ComplaintRepo) List(status string, limit, offset int) ([]entity.Complaint, error) {
	var complaints []entity.Complaint
	query := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&complaints).Error
	return complaints, err
}

func (r *ComplaintRepo) UpdateStatus(id uint, status, remark string) error {
	result := r.db.Model(&entity.Complaint{}).
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

// CountByStatus returns complaint counts grouped by status, for the admin
// dashboard and reports.
func (r *ComplaintRepo) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&entity.Complaint{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
