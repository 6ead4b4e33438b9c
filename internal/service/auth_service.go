package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	"github.com/smartjanseva/janseva-api/internal/domain/repository"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
	"github.com/smartjanseva/janseva-api/pkg/auth"
)

// RegisterInput holds the data for citizen registration.
type RegisterInput struct {
	FullName string
	Phone    string
	Email    string
	Password string
	Address  string
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresIn   int          `json:"expiresIn"`
}

// AuthService registers and authenticates citizen accounts.
type AuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	tokenExpiry int // seconds, echoed in responses
}

func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenExpirySeconds int) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required for AuthService")
	}
	if tokenExpirySeconds <= 0 {
		tokenExpirySeconds = 1800
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		tokenExpiry: tokenExpirySeconds,
	}, nil
}

// Register creates a citizen account keyed by phone (and optionally email).
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Phone = normalizePhone(input.Phone)
	input.Email = normalizeEmail(input.Email)

	if input.FullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", apperrors.ErrValidation)
	}
	if input.Phone == "" {
		return nil, fmt.Errorf("%w: phone is required", apperrors.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	_, err := s.userRepo.GetByPhone(input.Phone)
	if err == nil {
		return nil, fmt.Errorf("%w: an account with this phone number already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone existence: %w", err)
	}

	user := &entity.User{
		FullName: input.FullName,
		Phone:    input.Phone,
		Email:    input.Email,
		Password: input.Password,
		Address:  strings.TrimSpace(input.Address),
		Role:     entity.RoleCitizen,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Registered citizen ID=%d phone=%s", user.ID, user.Phone)
	return user, nil
}

// Login authenticates by identifier (phone or email) and password. A login
// that consumes a bridge credential rotates the password to a random value
// afterwards, so the verified OTP code works exactly once.
func (s *AuthService) Login(identifier, password string) (*AuthResponse, error) {
	user, err := s.authenticate(identifier, password)
	if err != nil {
		return nil, err
	}

	if user.BridgeLoginPending {
		if err := s.consumeBridgeCredential(user); err != nil {
			log.Printf("[AuthService] Failed to rotate bridge credential for user ID=%d: %v", user.ID, err)
			// The login itself succeeded; the rotation failure is logged, not
			// surfaced to the citizen.
		}
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Phone, user.Role)
	if err != nil {
		log.Printf("[AuthService] Failed to generate token for user ID=%d: %v", user.ID, err)
		return nil, fmt.Errorf("failed to generate access token")
	}

	log.Printf("[AuthService] User ID=%d logged in", user.ID)
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokenExpiry,
	}, nil
}

// GetUserByID returns the account for profile display.
func (s *AuthService) GetUserByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *AuthService) authenticate(identifier, password string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user *entity.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(normalizeEmail(identifier))
	} else {
		user, err = s.findByPhoneFlexible(normalizePhone(identifier))
	}
	if err != nil {
		log.Printf("[AuthService] Login failed, no account for identifier=%s: %v", identifier, err)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Login failed, wrong password for user ID=%d", user.ID)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}

// findByPhoneFlexible matches the number as given, then with the leading '+'
// toggled, mirroring the bridge lookup on the verification side.
func (s *AuthService) findByPhoneFlexible(phone string) (*entity.User, error) {
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

// consumeBridgeCredential replaces the one-time bridge password with a random
// value and clears the pending flag.
func (s *AuthService) consumeBridgeCredential(user *entity.User) error {
	random := make([]byte, 24)
	if _, err := rand.Read(random); err != nil {
		return fmt.Errorf("failed to generate replacement password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hex.EncodeToString(random)); err != nil {
		return err
	}
	return s.userRepo.UpdateProfile(user.ID, map[string]interface{}{"bridge_login_pending": false})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}
