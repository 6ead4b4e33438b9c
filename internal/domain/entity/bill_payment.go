package entity

import "time"

// Bill represents an outstanding utility bill for a consumer number.
type Bill struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConsumerNumber string    `gorm:"size:30;not null;index" json:"consumer_number"`
	Utility        string    `gorm:"size:30;not null" json:"utility"` // electricity, water, property_tax
	BillingPeriod  string    `gorm:"size:20;not null" json:"billing_period"`
	AmountPaise    int64     `gorm:"not null" json:"amount_paise"`
	DueDate        time.Time `gorm:"not null" json:"due_date"`
	Paid           bool      `gorm:"not null;default:false;index" json:"paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Bill) TableName() string {
	return "bills"
}

// BillPayment records a completed payment against a bill.
type BillPayment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Receipt     string    `gorm:"size:20;not null;uniqueIndex" json:"receipt"`
	BillID      uint      `gorm:"not null;index" json:"bill_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	AmountPaise int64     `gorm:"not null" json:"amount_paise"`
	Method      string    `gorm:"size:20;not null" json:"method"` // upi, card, cash
	PaidAt      time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (BillPayment) TableName() string {
	return "bill_payments"
}
