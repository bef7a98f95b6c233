package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/paypal"
	"github.com/soleofit/soleo_go_server/internal/pkg/queue"
	"github.com/soleofit/soleo_go_server/internal/pkg/ws"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrPaymentNotFound    = errors.New("pago no encontrado")
	ErrPaymentPermission  = errors.New("el pago pertenece a otro usuario")
	ErrPaymentNotPending  = errors.New("el pago ya fue procesado")
	ErrDuplicatePayment   = errors.New("ya existe un pago vigente para este plan")
	ErrPlanNotPurchasable = errors.New("el plan no se puede comprar")
	ErrOrderNotApproved   = errors.New("el pago aún no ha sido aprobado en PayPal")
	ErrGatewayFailure     = errors.New("la pasarela de pagos no está disponible")
)

type PaymentService struct {
	paymentRepo       *repository.PaymentRepository
	planRepo          *repository.PlanRepository
	userRepo          *repository.UserRepository
	deviceTokenRepo   *repository.DeviceTokenRepository
	membershipService *MembershipService
	gateway           *paypal.Client
	notifications     *queue.Queue
	hub               *ws.Hub
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	planRepo *repository.PlanRepository,
	userRepo *repository.UserRepository,
	deviceTokenRepo *repository.DeviceTokenRepository,
	membershipService *MembershipService,
	gateway *paypal.Client,
	notifications *queue.Queue,
	hub *ws.Hub,
) *PaymentService {
	return &PaymentService{
		paymentRepo:       paymentRepo,
		planRepo:          planRepo,
		userRepo:          userRepo,
		deviceTokenRepo:   deviceTokenRepo,
		membershipService: membershipService,
		gateway:           gateway,
		notifications:     notifications,
		hub:               hub,
	}
}

// Create opens a PayPal order for the plan and records a PENDING payment.
// The payment id travels as custom_id on the order so the two can always
// be correlated.
func (s *PaymentService) Create(ctx context.Context, userID int64, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	plan, err := s.planRepo.GetByID(req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.Status != model.PlanStatusActive {
		return nil, ErrPlanInactive
	}
	if plan.IsTrial || plan.Price <= 0 {
		return nil, ErrPlanNotPurchasable
	}

	duplicate, err := s.paymentRepo.HasActiveCompleted(userID, plan.ID, time.Now())
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicatePayment
	}

	payment := &model.Payment{
		UserID: userID,
		PlanID: plan.ID,
		Amount: plan.Price,
		Status: model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, fmt.Sprintf("%d", payment.ID), plan.Price, plan.Name)
	if err != nil {
		payment.Status = model.PaymentStatusFailed
		if updateErr := s.paymentRepo.Update(payment); updateErr != nil {
			log.Printf("payment: failed to mark payment %d as failed: %v", payment.ID, updateErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	payment.PayPalOrderID = order.ID
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	return &dto.CreatePaymentResponse{
		PaymentID:   payment.ID,
		OrderID:     order.ID,
		ApprovalURL: order.ApprovalURL,
	}, nil
}

// Capture settles the approved order, marks the payment COMPLETED and hands
// the plan to the membership assigner. Notification and websocket pushes are
// fire and forget.
func (s *PaymentService) Capture(ctx context.Context, userID int64, orderID string) (*dto.CapturePaymentResponse, error) {
	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrPaymentPermission
	}
	if payment.Status != model.PaymentStatusPending {
		return nil, ErrPaymentNotPending
	}

	// Snapshot the membership the purchase will replace.
	user, err := s.userRepo.GetByIDWithPlan(payment.UserID)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, paypal.ErrOrderNotApproved) {
			return nil, ErrOrderNotApproved
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	assignResult, err := s.membershipService.Assign(payment.UserID, payment.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.Status = model.PaymentStatusCompleted
	payment.PayPalCaptureID = order.CaptureID
	payment.PurchaseDate = now
	payment.ExpirationDate = &assignResult.ExpiresAt
	payment.ReplacedPrevious = assignResult.WasReplaced
	if assignResult.WasReplaced {
		payment.PreviousPlanID = user.CurrentPlanID
		payment.PreviousExpiredAt = user.MembershipExpiresAt
	}
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	s.notifyPaymentCompleted(ctx, payment, assignResult)

	return &dto.CapturePaymentResponse{
		CaptureID:      order.CaptureID,
		NewPlan:        assignResult.NewPlan,
		ExpiresAt:      assignResult.ExpiresAt,
		ReplacedActive: assignResult.WasReplaced,
	}, nil
}

// Cancel abandons a PENDING payment.
func (s *PaymentService) Cancel(userID int64, orderID string) error {
	payment, err := s.paymentRepo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.UserID != userID {
		return ErrPaymentPermission
	}
	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}

	payment.Status = model.PaymentStatusCancelled
	return s.paymentRepo.Update(payment)
}

// ListMine returns the caller's payments, newest first.
func (s *PaymentService) ListMine(userID int64, page, pageSize int) ([]model.Payment, int64, error) {
	return s.paymentRepo.ListByUser(userID, page, pageSize)
}

// ListAll returns all payments for the admin panel.
func (s *PaymentService) ListAll(userID *int64, page, pageSize int) ([]model.Payment, int64, error) {
	return s.paymentRepo.List(userID, page, pageSize)
}

// Stats aggregates revenue totals and the per-plan breakdown.
func (s *PaymentService) Stats() (*dto.PaymentStats, error) {
	total, err := s.paymentRepo.Count()
	if err != nil {
		return nil, err
	}
	completed, err := s.paymentRepo.CountByStatus(model.PaymentStatusCompleted)
	if err != nil {
		return nil, err
	}
	pending, err := s.paymentRepo.CountByStatus(model.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	revenue, err := s.paymentRepo.SumCompleted()
	if err != nil {
		return nil, err
	}

	rows, err := s.paymentRepo.AggregateCompletedByPlan()
	if err != nil {
		return nil, err
	}

	byPlan := make([]dto.PlanStatsItem, 0, len(rows))
	for _, row := range rows {
		item := dto.PlanStatsItem{
			PlanID:  row.PlanID,
			Count:   row.Count,
			Revenue: row.Revenue,
		}
		if plan, err := s.planRepo.GetByID(row.PlanID); err == nil {
			item.PlanName = plan.Name
		}
		byPlan = append(byPlan, item)
	}

	return &dto.PaymentStats{
		TotalPayments:     total,
		CompletedPayments: completed,
		PendingPayments:   pending,
		TotalRevenue:      revenue,
		ByPlan:            byPlan,
	}, nil
}

func (s *PaymentService) notifyPaymentCompleted(ctx context.Context, payment *model.Payment, result *dto.AssignResult) {
	if s.hub != nil {
		_ = s.hub.SendToUser(payment.UserID, &ws.Message{
			Type: ws.EventPaymentCompleted,
			Data: map[string]interface{}{
				"plan":       result.NewPlan.Name,
				"expires_at": result.ExpiresAt,
			},
		})
	}

	if s.notifications == nil {
		return
	}
	tokens, err := s.deviceTokenRepo.ListByUser(payment.UserID)
	if err != nil || len(tokens) == 0 {
		return
	}
	msg := &queue.NotificationMessage{
		UserID: payment.UserID,
		Tokens: tokens,
		Title:  "Pago confirmado",
		Body:   fmt.Sprintf("Tu plan %s ya está activo", result.NewPlan.Name),
	}
	if err := s.notifications.Push(ctx, msg); err != nil {
		log.Printf("payment: failed to enqueue notification for user %d: %v", payment.UserID, err)
	}
}
