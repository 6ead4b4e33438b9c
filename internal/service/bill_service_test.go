package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

func TestBillService_Pay_Success(t *testing.T) {
	mockRepo := new(MockBillRepository)
	bill := &entity.Bill{
		ID:             9,
		ConsumerNumber: "MH-EL-102938",
		Utility:        "electricity",
		AmountPaise:    145000,
		DueDate:        time.Now().Add(72 * time.Hour),
		Paid:           false,
	}
	mockRepo.On("GetByID", uint(9)).Return(bill, nil)
	mockRepo.On("MarkPaid", uint(9)).Return(nil)

	var payment *entity.BillPayment
	mockRepo.On("CreatePayment", mock.AnythingOfType("*entity.BillPayment")).Run(func(args mock.Arguments) {
		payment = args.Get(0).(*entity.BillPayment)
		payment.ID = 1
	}).Return(nil)

	svc, err := NewBillService(mockRepo, nil)
	require.NoError(t, err)

	result, err := svc.Pay(PayBillInput{UserID: 7, BillID: 9, Method: "UPI"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Receipt, "RCPT-"))
	assert.Equal(t, int64(145000), result.AmountPaise, "payment records the bill amount")
	assert.Equal(t, "upi", result.Method)
	assert.Equal(t, uint(7), result.UserID)
	mockRepo.AssertExpectations(t)
}

func TestBillService_Pay_AlreadyPaid(t *testing.T) {
	mockRepo := new(MockBillRepository)
	bill := &entity.Bill{ID: 9, Paid: true}
	mockRepo.On("GetByID", uint(9)).Return(bill, nil)

	svc, err := NewBillService(mockRepo, nil)
	require.NoError(t, err)

	_, err = svc.Pay(PayBillInput{UserID: 7, BillID: 9, Method: "upi"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "MarkPaid", mock.Anything)
	mockRepo.AssertNotCalled(t, "CreatePayment", mock.Anything)
}

func TestBillService_Pay_ConcurrentMarkPaidConflict(t *testing.T) {
	// The unpaid check passed but another payment won the conditional update.
	mockRepo := new(MockBillRepository)
	bill := &entity.Bill{ID: 9, Paid: false}
	mockRepo.On("GetByID", uint(9)).Return(bill, nil)
	mockRepo.On("MarkPaid", uint(9)).Return(apperrors.ErrConflict)

	svc, err := NewBillService(mockRepo, nil)
	require.NoError(t, err)

	_, err = svc.Pay(PayBillInput{UserID: 7, BillID: 9, Method: "card"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "CreatePayment", mock.Anything)
}

func TestBillService_Pay_UnknownMethod(t *testing.T) {
	svc, err := NewBillService(new(MockBillRepository), nil)
	require.NoError(t, err)

	_, err = svc.Pay(PayBillInput{UserID: 7, BillID: 9, Method: "barter"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBillService_DueBills_CachesResult(t *testing.T) {
	mockRepo := new(MockBillRepository)
	mockCache := new(MockCacheRepository)

	bills := []entity.Bill{{ID: 1, ConsumerNumber: "MH-EL-102938"}}
	mockCache.On("GetJSON", "bills:due:MH-EL-102938", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("ListDueByConsumer", "MH-EL-102938").Return(bills, nil)
	mockCache.On("SetJSON", "bills:due:MH-EL-102938", bills, 5*time.Minute).Return(nil)

	svc, err := NewBillService(mockRepo, mockCache)
	require.NoError(t, err)

	result, err := svc.DueBills("MH-EL-102938")

	require.NoError(t, err)
	assert.Len(t, result, 1)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestBillService_DueBills_MissingConsumerNumber(t *testing.T) {
	svc, err := NewBillService(new(MockBillRepository), nil)
	require.NoError(t, err)

	_, err = svc.DueBills("   ")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
