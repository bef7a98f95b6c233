package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

// TestUser creates a client user with sane defaults.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	nano := time.Now().UnixNano()
	user := &model.User{
		Name:         fmt.Sprintf("Usuario %d", nano%10000),
		Email:        fmt.Sprintf("test_%d@example.com", nano),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Role:         model.RoleClient,
		Status:       model.UserStatusActive,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

func WithStatus(status string) func(*model.User) {
	return func(u *model.User) {
		u.Status = status
	}
}

// WithMembership sets the user's current plan window directly.
func WithMembership(planID int64, assignedAt, expiresAt time.Time) func(*model.User) {
	return func(u *model.User) {
		u.CurrentPlanID = &planID
		u.MembershipAssignedAt = &assignedAt
		u.MembershipExpiresAt = &expiresAt
	}
}

func WithExerciseTime(hhmm string) func(*model.User) {
	return func(u *model.User) {
		u.ExerciseTime = &hhmm
	}
}

func WithStreak(current, longest int, lastWorkoutAt time.Time) func(*model.User) {
	return func(u *model.User) {
		u.StreakCurrent = current
		u.StreakLongest = longest
		u.LastWorkoutAt = &lastWorkoutAt
	}
}

// TestPlan creates an active paid plan.
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.Plan)) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		Name:         fmt.Sprintf("Plan %d", time.Now().UnixNano()%100000),
		Description:  "Plan de prueba",
		Price:        299.00,
		DurationDays: 30,
		Status:       model.PlanStatusActive,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

func WithPlanName(name string) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Name = name
	}
}

func WithPrice(price float64) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Price = price
	}
}

func WithDuration(days int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.DurationDays = days
	}
}

// WithTrial marks the plan as the default trial.
func WithTrial() func(*model.Plan) {
	return func(p *model.Plan) {
		p.IsTrial = true
		p.IsDefault = true
	}
}

func WithPlanStatus(status string) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Status = status
	}
}

func WithRoutineID(routineID int64) func(*model.Plan) {
	return func(p *model.Plan) {
		p.RoutineID = &routineID
	}
}

// TestMuscleGroup creates a muscle group.
func TestMuscleGroup(t *testing.T, db *gorm.DB, name string) *model.MuscleGroup {
	t.Helper()

	group := &model.MuscleGroup{Name: name}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("Failed to create test muscle group: %v", err)
	}
	return group
}

// TestExercise creates an exercise in the given muscle group.
func TestExercise(t *testing.T, db *gorm.DB, muscleGroupID int64, opts ...func(*model.Exercise)) *model.Exercise {
	t.Helper()

	exercise := &model.Exercise{
		Name:          fmt.Sprintf("Ejercicio %d", time.Now().UnixNano()%100000),
		Description:   "Ejercicio de prueba",
		Series:        4,
		Repetitions:   12,
		MuscleGroupID: muscleGroupID,
	}

	for _, opt := range opts {
		opt(exercise)
	}

	if err := db.Create(exercise).Error; err != nil {
		t.Fatalf("Failed to create test exercise: %v", err)
	}
	return exercise
}

func WithExerciseName(name string) func(*model.Exercise) {
	return func(e *model.Exercise) {
		e.Name = name
	}
}

// TestRoutine creates an active routine.
func TestRoutine(t *testing.T, db *gorm.DB, opts ...func(*model.Routine)) *model.Routine {
	t.Helper()

	routine := &model.Routine{
		Name:   fmt.Sprintf("Rutina %d", time.Now().UnixNano()%100000),
		Status: model.RoutineStatusActive,
	}

	for _, opt := range opts {
		opt(routine)
	}

	if err := db.Create(routine).Error; err != nil {
		t.Fatalf("Failed to create test routine: %v", err)
	}
	return routine
}

// TestPayment creates a payment record.
func TestPayment(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Payment)) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		UserID:        userID,
		PlanID:        planID,
		Amount:        299.00,
		Status:        model.PaymentStatusPending,
		PayPalOrderID: fmt.Sprintf("ORDER-%d", time.Now().UnixNano()),
	}

	for _, opt := range opts {
		opt(payment)
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}
	return payment
}

func WithPaymentStatus(status string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Status = status
	}
}

func WithPaymentExpiration(at time.Time) func(*model.Payment) {
	return func(p *model.Payment) {
		p.ExpirationDate = &at
	}
}
