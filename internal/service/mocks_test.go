package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
)

// ============================================================================
// Shared mocks for the service tests
// ============================================================================

// MockOTPRepository implements repository.OTPRepository
type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Create(record *entity.OTPRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockOTPRepository) GetLatestUnverified(identifier string) (*entity.OTPRecord, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OTPRecord), args.Error(1)
}

func (m *MockOTPRepository) GetActive(identifier string) (*entity.OTPRecord, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OTPRecord), args.Error(1)
}

func (m *MockOTPRepository) IncrementAttempts(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOTPRepository) MarkVerified(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockOTPRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(phone string) (*entity.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}

// MockSMSService implements SMSService
type MockSMSService struct {
	mock.Mock
}

func (m *MockSMSService) SendOTP(ctx context.Context, phone, code string) error {
	args := m.Called(ctx, phone, code)
	return args.Error(0)
}

// MockEmailService implements EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOTP(ctx context.Context, toEmail, code, idempotencyKey string) error {
	args := m.Called(ctx, toEmail, code, idempotencyKey)
	return args.Error(0)
}

// MockCacheRepository implements repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// MockComplaintRepository implements repository.ComplaintRepository
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(complaint *entity.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByID(id uint) (*entity.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) GetByReference(reference string) (*entity.Complaint, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListByUser(userID uint, limit, offset int) ([]entity.Complaint, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) List(status string, limit, offset int) ([]entity.Complaint, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) UpdateStatus(id uint, status, remark string) error {
	args := m.Called(id, status, remark)
	return args.Error(0)
}

func (m *MockComplaintRepository) CountByStatus() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// MockBillRepository implements repository.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) GetByID(id uint) (*entity.Bill, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bill), args.Error(1)
}

func (m *MockBillRepository) ListDueByConsumer(consumerNumber string) ([]entity.Bill, error) {
	args := m.Called(consumerNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Bill), args.Error(1)
}

func (m *MockBillRepository) MarkPaid(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBillRepository) CreatePayment(payment *entity.BillPayment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockBillRepository) GetPaymentByReceipt(receipt string) (*entity.BillPayment, error) {
	args := m.Called(receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BillPayment), args.Error(1)
}

func (m *MockBillRepository) ListPaymentsByUser(userID uint, limit, offset int) ([]entity.BillPayment, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BillPayment), args.Error(1)
}

func (m *MockBillRepository) ListPayments(limit, offset int) ([]entity.BillPayment, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BillPayment), args.Error(1)
}

// MockApplicationRepository implements repository.ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(application *entity.ServiceApplication) error {
	args := m.Called(application)
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(id uint) (*entity.ServiceApplication, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ServiceApplication), args.Error(1)
}

func (m *MockApplicationRepository) GetByReference(reference string) (*entity.ServiceApplication, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ServiceApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListByUser(userID uint, limit, offset int) ([]entity.ServiceApplication, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ServiceApplication), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(id uint, status, remark string) error {
	args := m.Called(id, status, remark)
	return args.Error(0)
}
