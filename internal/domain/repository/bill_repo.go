package repository

import "github.com/smartjanseva/janseva-api/internal/domain/entity"

// BillRepository persists utility bills and their payments.
type BillRepository interface {
	GetByID(id uint) (*entity.Bill, error)
	ListDueByConsumer(consumerNumber string) ([]entity.Bill, error)
	MarkPaid(id uint) error

	CreatePayment(payment *entity.BillPayment) error
	GetPaymentByReceipt(receipt string) (*entity.BillPayment, error)
	ListPaymentsByUser(userID uint, limit, offset int) ([]entity.BillPayment, error)
	ListPayments(limit, offset int) ([]entity.BillPayment, error)
}
