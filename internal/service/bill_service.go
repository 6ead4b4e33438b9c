package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	"github.com/smartjanseva/janseva-api/internal/domain/repository"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

var validPaymentMethods = map[string]bool{
	"upi":  true,
	"card": true,
	"cash": true,
}

// PayBillInput holds the data for recording a bill payment.
type PayBillInput struct {
	UserID uint
	BillID uint
	Method string
}

// BillService looks up due utility bills and records payments.
type BillService struct {
	billRepo  repository.BillRepository
	cacheRepo repository.CacheRepository
}

func NewBillService(billRepo repository.BillRepository, cacheRepo repository.CacheRepository) (*BillService, error) {
	if billRepo == nil {
		return nil, fmt.Errorf("bill repository is required")
	}
	return &BillService{
		billRepo:  billRepo,
		cacheRepo: cacheRepo,
	}, nil
}

// DueBills returns unpaid bills for a consumer number, cached for five
// minutes. The cache is dropped when any of the bills is paid.
func (s *BillService) DueBills(consumerNumber string) ([]entity.Bill, error) {
	consumerNumber = strings.TrimSpace(consumerNumber)
	if consumerNumber == "" {
		return nil, fmt.Errorf("%w: consumer number is required", apperrors.ErrValidation)
	}

	cacheKey := dueBillsCacheKey(consumerNumber)
	if s.cacheRepo != nil {
		var cached []entity.Bill
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[BillService] Due-bills cache read failed for %s: %v", consumerNumber, err)
		}
	}

	bills, err := s.billRepo.ListDueByConsumer(consumerNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list due bills: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, bills, 5*time.Minute); err != nil {
			log.Printf("[BillService] Due-bills cache write failed for %s: %v", consumerNumber, err)
		}
	}
	return bills, nil
}

// Pay records a payment for an unpaid bill and issues a receipt
// (RCPT-XXXXXXXX). Paying an already-paid bill is a conflict.
func (s *BillService) Pay(input PayBillInput) (*entity.BillPayment, error) {
	input.Method = strings.ToLower(strings.TrimSpace(input.Method))
	if !validPaymentMethods[input.Method] {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, input.Method)
	}

	bill, err := s.billRepo.GetByID(input.BillID)
	if err != nil {
		return nil, err
	}
	if bill.Paid {
		return nil, fmt.Errorf("%w: bill %d is already paid", apperrors.ErrConflict, bill.ID)
	}

	if err := s.billRepo.MarkPaid(bill.ID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: bill %d is already paid", apperrors.ErrConflict, bill.ID)
		}
		return nil, fmt.Errorf("failed to mark bill paid: %w", err)
	}

	payment := &entity.BillPayment{
		Receipt:     newReference("RCPT"),
		BillID:      bill.ID,
		UserID:      input.UserID,
		AmountPaise: bill.AmountPaise,
		Method:      input.Method,
		PaidAt:      time.Now(),
	}
	if err := s.billRepo.CreatePayment(payment); err != nil {
		// The bill is flagged paid but the receipt row failed; surface the
		// error so the operator reconciles rather than double-charging.
		log.Printf("[BillService] Payment row creation failed for bill ID=%d after MarkPaid: %v", bill.ID, err)
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(dueBillsCacheKey(bill.ConsumerNumber)); err != nil {
			log.Printf("[BillService] Due-bills cache invalidation failed for %s: %v", bill.ConsumerNumber, err)
		}
	}

	log.Printf("[BillService] Bill ID=%d paid by user ID=%d receipt=%s", bill.ID, input.UserID, payment.Receipt)
	return payment, nil
}

// Receipt returns a payment by its receipt number.
func (s *BillService) Receipt(receipt string) (*entity.BillPayment, error) {
	receipt = strings.ToUpper(strings.TrimSpace(receipt))
	if receipt == "" {
		return nil, fmt.Errorf("%w: receipt is required", apperrors.ErrValidation)
	}
	return s.billRepo.GetPaymentByReceipt(receipt)
}

// MyPayments returns the caller's payment history, newest first.
func (s *BillService) MyPayments(userID uint, limit, offset int) ([]entity.BillPayment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.billRepo.ListPaymentsByUser(userID, limit, offset)
}

func dueBillsCacheKey(consumerNumber string) string {
	return "bills:due:" + consumerNumber
}
