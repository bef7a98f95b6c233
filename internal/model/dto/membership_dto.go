package dto

import (
	"time"

	"github.com/soleofit/soleo_go_server/internal/model"
)

// CreatePlanRequest creates a membership plan (admin).
type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"min=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
	IsTrial      bool    `json:"is_trial"`
	IsDefault    bool    `json:"is_default"`
	Status       string  `json:"status" binding:"omitempty,oneof=ACTIVO INACTIVO"`
	RoutineID    *int64  `json:"routine_id"`
}

type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	DurationDays *int     `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	Status       *string  `json:"status,omitempty" binding:"omitempty,oneof=ACTIVO INACTIVO"`
	RoutineID    *int64   `json:"routine_id,omitempty"`
}

// AssignPlanRequest is the admin-triggered assignment.
type AssignPlanRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	PlanID int64 `json:"plan_id" binding:"required"`
}

// AssignResult is the assigner's outcome.
type AssignResult struct {
	PreviousPlan *model.Plan `json:"previous_plan,omitempty"`
	NewPlan      *model.Plan `json:"new_plan"`
	ExpiresAt    time.Time   `json:"expires_at"`
	WasReplaced  bool        `json:"was_replaced"`
}

// CurrentMembership answers "what plan does this user have right now".
type CurrentMembership struct {
	Plan          *model.Plan `json:"plan"`
	ExpiresAt     *time.Time  `json:"expires_at"`
	AssignedAt    *time.Time  `json:"assigned_at"`
	IsActive      bool        `json:"is_active"`
	DaysRemaining int         `json:"days_remaining"`
	IsExpired     bool        `json:"is_expired"`
}

type MembershipStatus struct {
	HasActiveMembership bool               `json:"has_active_membership"`
	CurrentMembership   *CurrentMembership `json:"current_membership"`
}
