package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartjanseva/janseva-api/internal/domain/entity"
	apperrors "github.com/smartjanseva/janseva-api/internal/pkg/errors"
)

func TestComplaintService_File_Success(t *testing.T) {
	mockRepo := new(MockComplaintRepository)
	mockCache := new(MockCacheRepository)

	var created *entity.Complaint
	mockRepo.On("Create", mock.AnythingOfType("*entity.Complaint")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*entity.Complaint)
		created.ID = 1
	}).Return(nil)
	mockCache.On("Delete", complaintStatsCacheKey).Return(nil)

	svc, err := NewComplaintService(mockRepo, mockCache)
	require.NoError(t, err)

	complaint, err := svc.File(FileComplaintInput{
		UserID:      7,
		Department:  "Water",
		Subject:     "No supply since Monday",
		Description: "The entire lane has had no water supply for three days.",
		Location:    "Ward 12, Shivaji Nagar",
	})

	require.NoError(t, err)
	assert.Equal(t, "water", complaint.Department, "department is lowercased")
	assert.Equal(t, entity.ComplaintStatusRegistered, complaint.Status)
	assert.True(t, strings.HasPrefix(complaint.Reference, "CMP-"))
	assert.Len(t, complaint.Reference, 12)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestComplaintService_File_UnknownDepartment(t *testing.T) {
	svc, err := NewComplaintService(new(MockComplaintRepository), nil)
	require.NoError(t, err)

	_, err = svc.File(FileComplaintInput{
		UserID:      7,
		Department:  "astrology",
		Subject:     "subject",
		Description: "description",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestComplaintService_UpdateStatus_LegalTransition(t *testing.T) {
	mockRepo := new(MockComplaintRepository)
	existing := &entity.Complaint{
		ID:        3,
		Reference: "CMP-AABBCCDD",
		Status:    entity.ComplaintStatusRegistered,
	}
	mockRepo.On("GetByID", uint(3)).Return(existing, nil)
	mockRepo.On("UpdateStatus", uint(3), entity.ComplaintStatusInProgress, "team dispatched").Return(nil)

	svc, err := NewComplaintService(mockRepo, nil)
	require.NoError(t, err)

	complaint, err := svc.UpdateStatus(3, entity.ComplaintStatusInProgress, "team dispatched")

	require.NoError(t, err)
	assert.Equal(t, entity.ComplaintStatusInProgress, complaint.Status)
	mockRepo.AssertExpectations(t)
}

func TestComplaintService_UpdateStatus_IllegalTransition(t *testing.T) {
	mockRepo := new(MockComplaintRepository)
	existing := &entity.Complaint{
		ID:     3,
		Status: entity.ComplaintStatusResolved, // terminal
	}
	mockRepo.On("GetByID", uint(3)).Return(existing, nil)

	svc, err := NewComplaintService(mockRepo, nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(3, entity.ComplaintStatusInProgress, "")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestComplaintService_Stats_FallsBackToDatabase(t *testing.T) {
	mockRepo := new(MockComplaintRepository)
	mockCache := new(MockCacheRepository)

	counts := map[string]int64{"registered": 4, "resolved": 9}
	mockCache.On("GetJSON", complaintStatsCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("CountByStatus").Return(counts, nil)
	mockCache.On("SetJSON", complaintStatsCacheKey, counts, mock.Anything).Return(nil)

	svc, err := NewComplaintService(mockRepo, mockCache)
	require.NoError(t, err)

	stats, err := svc.Stats()

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats["registered"])
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
