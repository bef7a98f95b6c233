package model

import (
	"time"
)

const (
	HistoryStatusActive    = "ACTIVE"
	HistoryStatusExpired   = "EXPIRED"
	HistoryStatusCancelled = "CANCELLED"
)

// MembershipHistory is an append-only event log of previously held plans.
// Rows are written exactly once by the assigner and never updated or deleted.
type MembershipHistory struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	PlanID     int64     `gorm:"not null;index" json:"plan_id"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
	ExpiredAt  time.Time `gorm:"not null" json:"expired_at"`
	Status     string    `gorm:"size:20;default:EXPIRED" json:"status"`
	WasTrial   bool      `gorm:"default:false" json:"was_trial"`
	CreatedAt  time.Time `json:"created_at"`

	Plan *Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (MembershipHistory) TableName() string {
	return "membership_history"
}
