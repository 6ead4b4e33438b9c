package entity

import "time"

// Application statuses: submitted -> under_review -> approved | rejected.
const (
	ApplicationStatusSubmitted   = "submitted"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusApproved    = "approved"
	ApplicationStatusRejected    = "rejected"
)

// ServiceApplication is a citizen's application for a government service
// (certificates, licenses, welfare schemes).
type ServiceApplication struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Reference   string    `gorm:"size:20;not null;uniqueIndex" json:"reference"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ServiceType string    `gorm:"size:50;not null" json:"service_type"` // birth_certificate, income_certificate, ration_card, ...
	Details     string    `gorm:"type:text;not null;default:''" json:"details"`
	Status      string    `gorm:"size:20;not null;default:'submitted';index" json:"status"`
	Remark      string    `gorm:"size:500;not null;default:''" json:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ServiceApplication) TableName() string {
	return "service_applications"
}

// CanTransitionTo reports whether a status change is legal.
func (a *ServiceApplication) CanTransitionTo(status string) bool {
	switch a.Status {
	case ApplicationStatusSubmitted:
		return status == ApplicationStatusUnderReview || status == ApplicationStatusApproved || status == ApplicationStatusRejected
	case ApplicationStatusUnderReview:
		return status == ApplicationStatusApproved || status == ApplicationStatusRejected
	default:
		return false
	}
}
