package service

import "errors"

// OTP flow errors. Handlers map these to the distinct user-displayable reasons
// of the send/verify endpoints; none of them is collapsed into a generic 500.
var (
	ErrOTPRateLimited      = errors.New("otp_rate_limited")
	ErrOTPDispatchFailed   = errors.New("otp_dispatch_failed")
	ErrOTPNotFound         = errors.New("otp_not_found")
	ErrOTPExpired          = errors.New("otp_expired")
	ErrOTPAttemptsExceeded = errors.New("otp_attempts_exceeded")
	ErrOTPInvalidCode      = errors.New("otp_invalid_code")
)
