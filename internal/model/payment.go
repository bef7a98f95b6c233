package model

import (
	"time"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusCancelled = "CANCELLED"
	PaymentStatusFailed    = "FAILED"
)

type Payment struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"not null;index" json:"user_id"`
	PlanID          int64     `gorm:"not null;index" json:"plan_id"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status          string    `gorm:"size:20;default:PENDING;index" json:"status"`
	PayPalOrderID   string    `gorm:"column:paypal_order_id;size:100;index" json:"paypal_order_id,omitempty"`
	PayPalCaptureID string    `gorm:"column:paypal_capture_id;size:100" json:"paypal_capture_id,omitempty"`
	PurchaseDate    time.Time `json:"purchase_date"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`

	// Replacement tracking, filled in on capture when the assignment
	// superseded a previous entitlement.
	ReplacedPrevious  bool       `gorm:"default:false" json:"replaced_previous"`
	PreviousPlanID    *int64     `json:"previous_plan_id,omitempty"`
	PreviousExpiredAt *time.Time `json:"previous_expired_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
