package entity

import "time"

// OTP channels. The channel decides the dispatch path and whether a successful
// verification can bridge into a password login.
const (
	OTPChannelEmail = "email"
	OTPChannelPhone = "phone"
)

// OTPRecord stores one issued verification code. History is retained; only the
// newest unverified, unexpired row per identifier is considered active.
type OTPRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Identifier  string    `gorm:"size:100;not null;index" json:"identifier"`
	Code        string    `gorm:"size:6;not null" json:"-"`
	Channel     string    `gorm:"size:10;not null" json:"channel"` // email, phone
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	Attempts    int       `gorm:"not null;default:0" json:"attempts"`
	MaxAttempts int       `gorm:"not null;default:5" json:"max_attempts"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OTPRecord) TableName() string {
	return "otp_records"
}

// IsExpired reports whether the record is past its expiry. An expired record is
// invalid regardless of its verified or attempts state.
func (o *OTPRecord) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// IsExhausted reports whether the attempt limit has been reached.
func (o *OTPRecord) IsExhausted() bool {
	return o.Attempts >= o.MaxAttempts
}

// RemainingAttempts never goes below zero.
func (o *OTPRecord) RemainingAttempts() int {
	remaining := o.MaxAttempts - o.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}
