package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	"github.com/smartjanseva/janseva-api/internal/domain/repository"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

const complaintStatsCacheKey = "complaints:stats"

var validDepartments = map[string]bool{
	"water":       true,
	"electricity": true,
	"roads":       true,
	"sanitation":  true,
	"other":       true,
}

// FileComplaintInput holds the data for filing a complaint.
type FileComplaintInput struct {
	UserID      uint
	Department  string
	Subject     string
	Description string
	Location    string
}

// ComplaintService manages citizen grievances.
type ComplaintService struct {
	complaintRepo repository.ComplaintRepository
	cacheRepo     repository.CacheRepository
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, cacheRepo repository.CacheRepository) (*ComplaintService, error) {
	if complaintRepo == nil {
		return nil, fmt.Errorf("complaint repository is required")
	}
	// cacheRepo may be nil; stats then always hit the database.
	return &ComplaintService{
		complaintRepo: complaintRepo,
		cacheRepo:     cacheRepo,
	}, nil
}

// File registers a new complaint and returns it with its public reference
// number (CMP-XXXXXXXX).
func (s *ComplaintService) File(input FileComplaintInput) (*entity.Complaint, error) {
	input.Department = strings.ToLower(strings.TrimSpace(input.Department))
	input.Subject = strings.TrimSpace(input.Subject)
	input.Description = strings.TrimSpace(input.Description)

	if !validDepartments[input.Department] {
		return nil, fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, input.Department)
	}
	if input.Subject == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: subject and description are required", apperrors.ErrValidation)
	}

	complaint := &entity.Complaint{
		Reference:   newReference("CMP"),
		UserID:      input.UserID,
		Department:  input.Department,
		Subject:     input.Subject,
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		Status:      entity.ComplaintStatusRegistered,
	}
	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.invalidateStats()
	log.Printf("[ComplaintService] Complaint %s filed by user ID=%d (%s)", complaint.Reference, input.UserID, input.Department)
	return complaint, nil
}

// ListMine returns the caller's complaints, newest first.
func (s *ComplaintService) ListMine(userID uint, limit, offset int) ([]entity.Complaint, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.complaintRepo.ListByUser(userID, limit, offset)
}

// Track returns a complaint by its public reference number.
func (s *ComplaintService) Track(reference string) (*entity.Complaint, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", apperrors.ErrValidation)
	}
	return s.complaintRepo.GetByReference(reference)
}

// List returns complaints for the admin view, optionally filtered by status.
func (s *ComplaintService) List(status string, limit, offset int) ([]entity.Complaint, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.complaintRepo.List(status, limit, offset)
}

// UpdateStatus applies an admin status transition, enforcing the lifecycle.
func (s *ComplaintService) UpdateStatus(id uint, status, remark string) (*entity.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !complaint.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move complaint from %s to %s", apperrors.ErrConflict, complaint.Status, status)
	}

	if err := s.complaintRepo.UpdateStatus(id, status, strings.TrimSpace(remark)); err != nil {
		return nil, fmt.Errorf("failed to update complaint status: %w", err)
	}

	s.invalidateStats()
	log.Printf("[ComplaintService] Complaint %s moved %s -> %s", complaint.Reference, complaint.Status, status)

	complaint.Status = status
	complaint.Remark = remark
	return complaint, nil
}

// Stats returns complaint counts by status, cached for five minutes.
func (s *ComplaintService) Stats() (map[string]int64, error) {
	if s.cacheRepo != nil {
		var cached map[string]int64
		if err := s.cacheRepo.GetJSON(complaintStatsCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ComplaintService] Stats cache read failed: %v", err)
		}
	}

	counts, err := s.complaintRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(complaintStatsCacheKey, counts, 5*time.Minute); err != nil {
			log.Printf("[ComplaintService] Stats cache write failed: %v", err)
		}
	}
	return counts, nil
}

func (s *ComplaintService) invalidateStats() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(complaintStatsCacheKey); err != nil {
		log.Printf("[ComplaintService] Stats cache invalidation failed: %v", err)
	}
}

// newReference builds a short public reference like CMP-1A2B3C4D.
func newReference(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]))
}
