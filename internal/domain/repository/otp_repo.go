package repository

import "github.com/smartjanseva/janseva-api/internal/domain/entity"

// OTPRepository persists issued verification codes.
type OTPRepository interface {
	// Create inserts the record only if no active (unverified, unexpired)
	// record exists for the same identifier. Returns apperrors.ErrConflict
	// when an active record blocked the insert.
	Create(record *entity.OTPRecord) error

	// GetLatestUnverified returns the most recently created unverified record
	// for the identifier, expired or not. apperrors.ErrNotFound when none exists.
	GetLatestUnverified(identifier string) (*entity.OTPRecord, error)

	// GetActive returns the most recent unverified record whose expiry is still
	// in the future. apperrors.ErrNotFound when none exists.
	GetActive(identifier string) (*entity.OTPRecord, error)

	IncrementAttempts(id uint) error
	MarkVerified(id uint) error

	// Delete removes a record. Used as the compensating action when dispatch
	// fails right after creation.
	Delete(id uint) error
}
