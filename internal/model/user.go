package model

import (
	"time"
)

const (
	RoleClient = "CLIENTE"
	RoleAdmin  = "ADMIN"

	UserStatusActive   = "ACTIVO"
	UserStatusInactive = "INACTIVO"
)

type User struct {
	ID              int64    `gorm:"primaryKey" json:"id"`
	Name            string   `gorm:"size:100;not null" json:"name"`
	Email           string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash    string   `gorm:"size:255;not null" json:"-"`
	Role            string   `gorm:"size:20;default:CLIENTE;index" json:"role"`
	Status          string   `gorm:"size:20;default:ACTIVO" json:"status"`
	ProfilePhotoURL string   `gorm:"size:500" json:"profile_photo_url,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	// ExerciseTime is the preferred training time as "HH:MM", used by the
	// workout-reminder job.
	ExerciseTime *string `gorm:"size:5" json:"exercise_time,omitempty"`

	// Streak and progress counters, maintained by the workout service.
	StreakCurrent        int        `gorm:"default:0" json:"streak_current"`
	StreakLongest        int        `gorm:"default:0" json:"streak_longest"`
	LastWorkoutAt        *time.Time `json:"last_workout_at,omitempty"`
	TotalWorkouts        int        `gorm:"default:0" json:"total_workouts"`
	TotalExerciseSeconds int64      `gorm:"default:0" json:"total_exercise_seconds"`
	TotalDurationMinutes int64      `gorm:"default:0" json:"total_duration_minutes"`

	// Entitlement: at most one current plan per user. The expiration is
	// computed once at assignment time and never recomputed implicitly.
	CurrentPlanID        *int64     `gorm:"index" json:"current_plan_id,omitempty"`
	MembershipExpiresAt  *time.Time `json:"membership_expires_at,omitempty"`
	MembershipAssignedAt *time.Time `json:"membership_assigned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CurrentPlan *Plan `gorm:"foreignKey:CurrentPlanID" json:"current_plan,omitempty"`
}

func (User) TableName() string {
	return "users"
}
