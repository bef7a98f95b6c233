package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/queue"
	"github.com/soleofit/soleo_go_server/internal/pkg/ws"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrPlanNotFound     = errors.New("plan no encontrado")
	ErrPlanInactive     = errors.New("el plan no está activo")
	ErrNotClient        = errors.New("solo los clientes pueden recibir membresías")
	ErrTrialPlanMissing = errors.New("plan de prueba no configurado")
)

type MembershipService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	planRepo    *repository.PlanRepository
	historyRepo *repository.HistoryRepository

	// Optional collaborators for assignment pushes, nil in tests and in
	// binaries that don't carry them.
	deviceTokenRepo *repository.DeviceTokenRepository
	notifications   *queue.Queue
	hub             *ws.Hub
}

func NewMembershipService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	planRepo *repository.PlanRepository,
	historyRepo *repository.HistoryRepository,
) *MembershipService {
	return &MembershipService{
		db:          db,
		userRepo:    userRepo,
		planRepo:    planRepo,
		historyRepo: historyRepo,
	}
}

// WithNotifier attaches the push collaborators used by NotifyAssigned.
func (s *MembershipService) WithNotifier(deviceTokenRepo *repository.DeviceTokenRepository, notifications *queue.Queue, hub *ws.Hub) *MembershipService {
	s.deviceTokenRepo = deviceTokenRepo
	s.notifications = notifications
	s.hub = hub
	return s
}

// Assign gives the plan to the user, archiving whatever plan was current
// into the history first. Archive and overwrite run in one transaction so a
// crash can never leave a history entry without the matching overwrite.
// Reassigning the plan the user already holds resets the window.
func (s *MembershipService) Assign(userID, planID int64) (*dto.AssignResult, error) {
	var result *dto.AssignResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Preload("CurrentPlan").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.Role != model.RoleClient {
			return ErrNotClient
		}

		var plan model.Plan
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		if plan.Status != model.PlanStatusActive {
			return ErrPlanInactive
		}

		now := time.Now()
		result = &dto.AssignResult{NewPlan: &plan}

		if user.CurrentPlanID != nil {
			assignedAt := now
			if user.MembershipAssignedAt != nil {
				assignedAt = *user.MembershipAssignedAt
			}
			entry := &model.MembershipHistory{
				UserID:     user.ID,
				PlanID:     *user.CurrentPlanID,
				AssignedAt: assignedAt,
				ExpiredAt:  now,
				Status:     model.HistoryStatusExpired,
				WasTrial:   user.CurrentPlan != nil && user.CurrentPlan.IsTrial,
			}
			if err := s.historyRepo.Append(tx, entry); err != nil {
				return err
			}
			result.PreviousPlan = user.CurrentPlan
			result.WasReplaced = true
		}

		expiresAt := now.AddDate(0, 0, plan.DurationDays)
		updates := map[string]interface{}{
			"current_plan_id":        plan.ID,
			"membership_assigned_at": now,
			"membership_expires_at":  expiresAt,
		}
		if err := tx.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return err
		}
		result.ExpiresAt = expiresAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AssignDefault puts the user on the trial plan. When no trial plan is
// configured it fails without touching the user.
func (s *MembershipService) AssignDefault(userID int64) (*dto.AssignResult, error) {
	trial, err := s.planRepo.GetTrial()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrialPlanMissing
		}
		return nil, err
	}
	return s.Assign(userID, trial.ID)
}

// GetCurrent reports the user's membership state. A user who never had a
// plan is distinguishable from one whose plan ran out: the former has a nil
// plan and IsExpired false.
func (s *MembershipService) GetCurrent(userID int64) (*dto.CurrentMembership, error) {
	user, err := s.userRepo.GetByIDWithPlan(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	current := &dto.CurrentMembership{
		Plan:       user.CurrentPlan,
		ExpiresAt:  user.MembershipExpiresAt,
		AssignedAt: user.MembershipAssignedAt,
	}

	now := time.Now()
	current.IsActive = user.MembershipExpiresAt != nil && now.Before(*user.MembershipExpiresAt)
	if current.IsActive {
		remaining := user.MembershipExpiresAt.Sub(now)
		current.DaysRemaining = int(math.Ceil(remaining.Hours() / 24))
	}
	current.IsExpired = !current.IsActive && user.CurrentPlan != nil

	return current, nil
}

// HasActive reports whether the user's membership window is still open.
func (s *MembershipService) HasActive(userID int64) (bool, error) {
	current, err := s.GetCurrent(userID)
	if err != nil {
		return false, err
	}
	return current.IsActive, nil
}

// NotifyAssigned pushes the assignment to the user's open websocket
// connections and enqueues a push notification. Both are fire and forget.
func (s *MembershipService) NotifyAssigned(ctx context.Context, userID int64, result *dto.AssignResult) {
	if s.hub != nil {
		_ = s.hub.SendToUser(userID, &ws.Message{
			Type: ws.EventMembershipAssigned,
			Data: map[string]interface{}{
				"plan":       result.NewPlan.Name,
				"expires_at": result.ExpiresAt,
			},
		})
	}

	if s.notifications == nil || s.deviceTokenRepo == nil {
		return
	}
	tokens, err := s.deviceTokenRepo.ListByUser(userID)
	if err != nil || len(tokens) == 0 {
		return
	}
	msg := &queue.NotificationMessage{
		UserID: userID,
		Tokens: tokens,
		Title:  "Membresía asignada",
		Body:   fmt.Sprintf("Tu plan %s ya está activo", result.NewPlan.Name),
	}
	if err := s.notifications.Push(ctx, msg); err != nil {
		log.Printf("membership: failed to enqueue notification for user %d: %v", userID, err)
	}
}

// History lists the user's archived memberships, oldest first.
func (s *MembershipService) History(userID int64) ([]model.MembershipHistory, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.historyRepo.ListByUser(userID)
}
