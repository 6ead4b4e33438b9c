package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
	"github.com/smartjanseva/janseva-api/internal/service"
)

// OTPHandler exposes OTP issuance and verification.
type OTPHandler struct {
	otpService *service.OTPService
}

// NewOTPHandler creates a new OTP handler.
func NewOTPHandler(otpService *service.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// SendOTPRequest is the issuance request body.
type SendOTPRequest struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"` // email or phone
}

// VerifyOTPRequest is the verification request body.
type VerifyOTPRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
}

// Send issues a fresh OTP to the given identifier.
func (h *OTPHandler) Send(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Identifier == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing identifier or type"})
		return
	}

	result, err := h.otpService.Issue(c.Request.Context(), req.Identifier, req.Type)
	if err != nil {
		var rateLimited *service.RateLimitedError
		var dispatchFailed *service.DispatchError
		switch {
		case errors.As(err, &rateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      "An OTP was already sent. Please wait before requesting a new one.",
				"retryAfter": rateLimited.RetryAfter,
			})
		case errors.As(err, &dispatchFailed):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to send OTP",
				"details": dispatchFailed.Hint,
			})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing identifier or type"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   fmt.Sprintf("OTP sent to %s", req.Identifier),
		"expiresIn": result.ExpiresIn,
	})
}

// Verify checks a submitted code.
func (h *OTPHandler) Verify(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Identifier == "" || req.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing identifier or otp"})
		return
	}

	result, err := h.otpService.Verify(c.Request.Context(), req.Identifier, req.OTP)
	if err != nil {
		var invalidCode *service.InvalidCodeError
		switch {
		case errors.Is(err, service.ErrOTPNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No OTP found for this identifier. Please request a new one."})
		case errors.Is(err, service.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired. Please request a new one."})
		case errors.Is(err, service.ErrOTPAttemptsExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum verification attempts exceeded. Please request a new OTP."})
		case errors.As(err, &invalidCode):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Invalid OTP",
				"remainingAttempts": invalidCode.RemainingAttempts,
			})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing identifier or otp"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "OTP verified successfully",
		"identifier": result.Identifier,
		"type":       result.Channel,
		"canLogin":   result.CanLogin,
	})
}
