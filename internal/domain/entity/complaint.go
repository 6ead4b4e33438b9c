package entity

import "time"

// Complaint statuses. Transitions are enforced in the service layer:
// registered -> in_progress -> resolved | rejected.
const (
	ComplaintStatusRegistered = "registered"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
)

// Complaint is a citizen grievance filed against a civic department.
type Complaint struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Reference   string    `gorm:"size:20;not null;uniqueIndex" json:"reference"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Department  string    `gorm:"size:50;not null" json:"department"` // water, electricity, roads, sanitation, other
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    string    `gorm:"size:255;not null;default:''" json:"location"`
	Status      string    `gorm:"size:20;not null;default:'registered';index" json:"status"`
	Remark      string    `gorm:"size:500;not null;default:''" json:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// CanTransitionTo reports whether a status change is legal.
func (c *Complaint) CanTransitionTo(status string) bool {
	switch c.Status {
	case ComplaintStatusRegistered:
		return status == ComplaintStatusInProgress || status == ComplaintStatusResolved || status == ComplaintStatusRejected
	case ComplaintStatusInProgress:
		return status == ComplaintStatusResolved || status == ComplaintStatusRejected
	default:
		// resolved and rejected are terminal
		return false
	}
}
