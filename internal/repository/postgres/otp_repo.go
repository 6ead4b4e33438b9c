package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

// OTPRepo implements repository.OTPRepository.
type OTPRepo struct {
	db *gorm.DB
}

func NewOTPRepo(db *gorm.DB) *OTPRepo {
	return &OTPRepo{db: db}
}

// Create inserts the record with a conditional INSERT ... WHERE NOT EXISTS over
// active records, so two racing issuance calls for the same identifier cannot
// both insert. The loser gets apperrors.ErrConflict.
func (r *OTPRepo) Create(record *entity.OTPRecord) error {
	result := r.db.Exec(
		`INSERT INTO otp_records (identifier, code, channel, expires_at, attempts, max_attempts, verified, created_at)
		 SELECT ?, ?, ?, ?, ?, ?, FALSE, NOW()
		 WHERE NOT EXISTS (
		     SELECT 1 FROM otp_records
		     WHERE identifier = ? AND verified = FALSE AND expires_at > NOW()
		 )`,
		record.Identifier, record.Code, record.Channel, record.ExpiresAt,
		record.Attempts, record.MaxAttempts, record.Identifier,
	)
	if result.Error != nil {
		return fmt.Errorf("failed to create otp record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrConflict
	}

	// Load the generated id and created_at back into the caller's struct.
	err := r.db.
		Where("identifier = ? AND verified = FALSE", record.Identifier).
		Order("created_at DESC, id DESC").
		First(record).Error
	if err != nil {
		return fmt.Errorf("failed to reload otp record: %w", err)
	}
	return nil
}

// GetLatestUnverified returns the newest unverified record for the identifier,
// expired or not. The verifier needs expired rows to report Expired rather than
// NotFound.
func (r *OTPRepo) GetLatestUnverified(identifier string) (*entity.OTPRecord, error) {
	var record entity.OTPRecord
	err := r.db.
		Where("identifier = ? AND verified = FALSE", identifier).
		Order("created_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest otp record: %w", err)
	}
	return &record, nil
}

// GetActive returns the newest unverified record that has not expired yet.
func (r *OTPRepo) GetActive(identifier string) (*entity.OTPRecord, error) {
	var record entity.OTPRecord
	err := r.db.
		Where("identifier = ? AND verified = FALSE AND expires_at > NOW()", identifier).
		Order("created_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active otp record: %w", err)
	}
	return &record, nil
}

func (r *OTPRepo) IncrementAttempts(id uint) error {
	return r.db.Model(&entity.OTPRecord{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// MarkVerified flips the one-way verified flag.
func (r *OTPRepo) MarkVerified(id uint) error {
	return r.db.Model(&entity.OTPRecord{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *OTPRepo) Delete(id uint) error {
	return r.db.Delete(&entity.OTPRecord{}, id).Error
}
