package model

import (
	"time"
)

const (
	PlanStatusActive   = "ACTIVO"
	PlanStatusInactive = "INACTIVO"
)

// Plan is a membership tier. Its identity (name) is stable once referenced
// by history entries; updates are allowed but deletion is blocked while any
// user holds it as current.
type Plan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	IsTrial      bool      `gorm:"default:false" json:"is_trial"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`
	Status       string    `gorm:"size:20;default:ACTIVO;index" json:"status"`
	RoutineID    *int64    `gorm:"index" json:"routine_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Routine *Routine `gorm:"foreignKey:RoutineID" json:"routine,omitempty"`
}

func (Plan) TableName() string {
	return "plans"
}
