package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	"github.com/smartjanseva/janseva-api/internal/domain/repository"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

var validServiceTypes = map[string]bool{
	"birth_certificate":  true,
	"death_certificate":  true,
	"income_certificate": true,
	"caste_certificate":  true,
	"ration_card":        true,
	"trade_license":      true,
}

// ApplyInput holds the data for a service application.
type ApplyInput struct {
	UserID      uint
	ServiceType string
	Details     string
}

// ApplicationService manages government service applications.
type ApplicationService struct {
	applicationRepo repository.ApplicationRepository
}

func NewApplicationService(applicationRepo repository.ApplicationRepository) (*ApplicationService, error) {
	if applicationRepo == nil {
		return nil, fmt.Errorf("application repository is required")
	}
	return &ApplicationService{applicationRepo: applicationRepo}, nil
}

// Apply submits a new application with a public reference (APP-XXXXXXXX).
func (s *ApplicationService) Apply(input ApplyInput) (*entity.ServiceApplication, error) {
	input.ServiceType = strings.ToLower(strings.TrimSpace(input.ServiceType))
	if !validServiceTypes[input.ServiceType] {
		return nil, fmt.Errorf("%w: unknown service type %q", apperrors.ErrValidation, input.ServiceType)
	}

	application := &entity.ServiceApplication{
		Reference:   newReference("APP"),
		UserID:      input.UserID,
		ServiceType: input.ServiceType,
		Details:     strings.TrimSpace(input.Details),
		Status:      entity.ApplicationStatusSubmitted,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("[ApplicationService] Application %s submitted by user ID=%d (%s)",
		application.Reference, input.UserID, input.ServiceType)
	return application, nil
}

// ListMine returns the caller's applications, newest first.
func (s *ApplicationService) ListMine(userID uint, limit, offset int) ([]entity.ServiceApplication, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.applicationRepo.ListByUser(userID, limit, offset)
}

// Track returns an application by its public reference number.
func (s *ApplicationService) Track(reference string) (*entity.ServiceApplication, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", apperrors.ErrValidation)
	}
	return s.applicationRepo.GetByReference(reference)
}

// UpdateStatus applies an admin status transition, enforcing the lifecycle.
func (s *ApplicationService) UpdateStatus(id uint, status, remark string) (*entity.ServiceApplication, error) {
	application, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !application.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move application from %s to %s", apperrors.ErrConflict, application.Status, status)
	}

	if err := s.applicationRepo.UpdateStatus(id, status, strings.TrimSpace(remark)); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	log.Printf("[ApplicationService] Application %s moved %s -> %s", application.Reference, application.Status, status)

	application.Status = status
	application.Remark = remark
	return application, nil
}
