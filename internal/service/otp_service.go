package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	"github.com/smartjanseva/janseva-api/internal/domain/repository"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

// IssueResult reports a successful issuance.
type IssueResult struct {
	ExpiresIn int `json:"expiresIn"` // seconds
}

// RateLimitedError carries the remaining cooldown when an active code already
// exists for the identifier.
type RateLimitedError struct {
	RetryAfter int // seconds until the active code expires
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("an OTP was already sent, retry in %d seconds", e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return ErrOTPRateLimited }

// DispatchError carries the channel-specific hint when the gateway refused or
// could not be reached.
type DispatchError struct {
	Channel string
	Hint    string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to dispatch OTP over %s: %s", e.Channel, e.Hint)
}

func (e *DispatchError) Unwrap() error { return ErrOTPDispatchFailed }

// InvalidCodeError carries the attempts left after a mismatch.
type InvalidCodeError struct {
	RemainingAttempts int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid OTP, %d attempts remaining", e.RemainingAttempts)
}

func (e *InvalidCodeError) Unwrap() error { return ErrOTPInvalidCode }

// VerifyResult reports a successful verification. CanLogin is true only when a
// bridge credential was provisioned: phone channel with a matching account.
type VerifyResult struct {
	Identifier string `json:"identifier"`
	Channel    string `json:"type"`
	CanLogin   bool   `json:"canLogin"`
}

// OTPService issues and verifies one-time codes and bridges successful phone
// verifications into password login.
type OTPService struct {
	otpRepo      repository.OTPRepository
	userRepo     repository.UserRepository
	smsService   SMSService
	emailService EmailService
	ttl          time.Duration
	maxAttempts  int
}

func NewOTPService(
	otpRepo repository.OTPRepository,
	userRepo repository.UserRepository,
	smsService SMSService,
	emailService EmailService,
	ttl time.Duration,
	maxAttempts int,
) (*OTPService, error) {
	if otpRepo == nil {
		return nil, fmt.Errorf("otp repository is required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if smsService == nil {
		return nil, fmt.Errorf("sms service is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	return &OTPService{
		otpRepo:      otpRepo,
		userRepo:     userRepo,
		smsService:   smsService,
		emailService: emailService,
		ttl:          ttl,
		maxAttempts:  maxAttempts,
	}, nil
}

// Issue generates, persists and dispatches a fresh 6-digit code. Issuance is
// refused while an active code exists for the identifier. Dispatch is
// synchronous; if it fails the record is deleted again so an undispatchable
// code is never left behind.
func (s *OTPService) Issue(ctx context.Context, identifier, channel string) (*IssueResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", apperrors.ErrValidation)
	}
	if channel != entity.OTPChannelEmail && channel != entity.OTPChannelPhone {
		return nil, fmt.Errorf("%w: channel must be email or phone", apperrors.ErrValidation)
	}

	now := time.Now()
	if active, err := s.otpRepo.GetActive(identifier); err == nil {
		return nil, &RateLimitedError{RetryAfter: retryAfterSeconds(active.ExpiresAt, now)}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active OTP: %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	record := &entity.OTPRecord{
		Identifier:  identifier,
		Code:        code,
		Channel:     channel,
		ExpiresAt:   now.Add(s.ttl),
		Attempts:    0,
		MaxAttempts: s.maxAttempts,
		Verified:    false,
	}
	if err := s.otpRepo.Create(record); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost a race with a concurrent issuance; the conditional insert
			// guarantees the other caller's record is active.
			return nil, &RateLimitedError{RetryAfter: int(s.ttl.Seconds())}
		}
		return nil, fmt.Errorf("failed to persist OTP record: %w", err)
	}

	if err := s.dispatch(ctx, record); err != nil {
		if delErr := s.otpRepo.Delete(record.ID); delErr != nil {
			log.Printf("[OTPService] Failed to roll back OTP record ID=%d after dispatch error: %v", record.ID, delErr)
		}
		log.Printf("[OTPService] Dispatch failed for identifier=%s channel=%s: %v", identifier, channel, err)
		return nil, &DispatchError{Channel: channel, Hint: dispatchHint(channel, err)}
	}

	log.Printf("[OTPService] OTP issued for identifier=%s channel=%s, expires in %ds", identifier, channel, int(s.ttl.Seconds()))
	return &IssueResult{ExpiresIn: int(s.ttl.Seconds())}, nil
}

func (s *OTPService) dispatch(ctx context.Context, record *entity.OTPRecord) error {
	switch record.Channel {
	case entity.OTPChannelPhone:
		return s.smsService.SendOTP(ctx, record.Identifier, record.Code)
	case entity.OTPChannelEmail:
		idempotencyKey := fmt.Sprintf("otp:%s:%d", record.Identifier, record.ID)
		return s.emailService.SendOTP(ctx, record.Identifier, record.Code, idempotencyKey)
	default:
		return fmt.Errorf("unknown channel %q", record.Channel)
	}
}

func dispatchHint(channel string, err error) string {
	switch channel {
	case entity.OTPChannelPhone:
		return "SMS service not configured or unreachable"
	case entity.OTPChannelEmail:
		return "Email service not configured or unreachable"
	default:
		return err.Error()
	}
}

// Verify checks a submitted code against the newest unverified record for the
// identifier. Check order: missing record, expiry, attempt exhaustion, code
// match. A mismatch increments the attempt counter; the failure that reaches
// the limit still reports InvalidCode with zero remaining attempts, and only
// later calls report AttemptsExceeded.
func (s *OTPService) Verify(ctx context.Context, identifier, submittedCode string) (*VerifyResult, error) {
	identifier = strings.TrimSpace(identifier)
	submittedCode = strings.TrimSpace(submittedCode)
	if identifier == "" || submittedCode == "" {
		return nil, fmt.Errorf("%w: identifier and otp are required", apperrors.ErrValidation)
	}

	record, err := s.otpRepo.GetLatestUnverified(identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to look up OTP record: %w", err)
	}

	now := time.Now()
	if record.IsExpired(now) {
		return nil, ErrOTPExpired
	}
	if record.IsExhausted() {
		return nil, ErrOTPAttemptsExceeded
	}

	if subtle.ConstantTimeCompare([]byte(submittedCode), []byte(record.Code)) != 1 {
		if err := s.otpRepo.IncrementAttempts(record.ID); err != nil {
			log.Printf("[OTPService] Failed to increment attempts for OTP ID=%d: %v", record.ID, err)
		}
		remaining := record.MaxAttempts - (record.Attempts + 1)
		if remaining < 0 {
			remaining = 0
		}
		return nil, &InvalidCodeError{RemainingAttempts: remaining}
	}

	if err := s.otpRepo.MarkVerified(record.ID); err != nil {
		return nil, fmt.Errorf("failed to mark OTP verified: %w", err)
	}

	result := &VerifyResult{
		Identifier: identifier,
		Channel:    record.Channel,
	}

	if record.Channel == entity.OTPChannelPhone {
		result.CanLogin = s.bridgeLogin(identifier, submittedCode)
	}

	log.Printf("[OTPService] OTP verified for identifier=%s channel=%s canLogin=%t", identifier, record.Channel, result.CanLogin)
	return result, nil
}

// bridgeLogin provisions the verified code as a one-time password for an
// existing account matching the phone number, so the kiosk can complete a
// standard password sign-in. Returns false when no account matches; failures
// here never fail the verification itself.
func (s *OTPService) bridgeLogin(phone, code string) bool {
	user, err := s.findUserByPhone(phone)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[OTPService] Bridge lookup failed for phone=%s: %v", phone, err)
		}
		return false
	}

	if err := s.userRepo.UpdatePassword(user.ID, code); err != nil {
		log.Printf("[OTPService] Failed to set bridge credential for user ID=%d: %v", user.ID, err)
		return false
	}
	// Flag the account so the next login rotates the password, making the
	// bridge credential single-use.
	if err := s.userRepo.UpdateProfile(user.ID, map[string]interface{}{"bridge_login_pending": true}); err != nil {
		log.Printf("[OTPService] Failed to flag bridge login for user ID=%d: %v", user.ID, err)
	}

	return true
}

// findUserByPhone tries the exact number first, then toggles a leading '+'.
func (s *OTPService) findUserByPhone(phone string) (*entity.User, error) {
	user, err := s.userRepo.GetByPhone(phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	alternate := "+" + phone
	if strings.HasPrefix(phone, "+") {
		alternate = strings.TrimPrefix(phone, "+")
	}
	return s.userRepo.GetByPhone(alternate)
}

func retryAfterSeconds(expiresAt, now time.Time) int {
	remaining := int(math.Ceil(expiresAt.Sub(now).Seconds()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// generateOTPCode produces a uniformly random 6-digit code (100000-999999).
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
