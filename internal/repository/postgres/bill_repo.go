package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

// BillRepo implements repository.BillRepository.
type BillRepo struct {
	db *gorm.DB
}

func NewBillRepo(db *gorm.DB) *BillRepo {
	return &BillRepo{db: db}
}

func (r *BillRepo) GetByID(id uint) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.First(&bill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *BillRepo) ListDueByConsumer(consumerNumber string) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.
		Where("consumer_number = ? AND paid = FALSE", consumerNumber).
		Order("due_date ASC").
		Find(&bills).Error
	return bills, err
}

// MarkPaid flips the paid flag only if the bill was still unpaid, so a double
// pay of the same bill is rejected with ErrConflict.
func (r *BillRepo) MarkPaid(id uint) error {
	result := r.db.Model(&entity.Bill{}).
		Where("id = ? AND paid = FALSE", id).
		Updates(map[string]interface{}{
			"paid":       true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *BillRepo) CreatePayment(payment *entity.BillPayment) error {
	return r.db.Create(payment).Error
}

func (r *BillRepo) GetPaymentByReceipt(receipt string) (*entity.BillPayment, error) {
	var payment entity.BillPayment
	err := r.db.Where("receipt = ?", receipt).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *BillRepo) ListPaymentsByUser(userID uint, limit, offset int) ([]entity.BillPayment, error) {
	var payments []entity.BillPayment
	err := r.db.
		Where("user_id = ?", userID).
		Order("paid_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *BillRepo) ListPayments(limit, offset int) ([]entity.BillPayment, error) {
	var payments []entity.BillPayment
	err := r.db.
		Order("paid_at DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}
