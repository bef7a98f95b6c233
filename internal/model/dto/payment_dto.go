package dto

import (
	"time"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type CreatePaymentRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

type CreatePaymentResponse struct {
	PaymentID   int64  `json:"payment_id"`
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
}

type CapturePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type CapturePaymentResponse struct {
	CaptureID      string      `json:"capture_id"`
	NewPlan        *model.Plan `json:"new_plan"`
	ExpiresAt      time.Time   `json:"expires_at"`
	ReplacedActive bool        `json:"replaced_active"`
}

type CancelPaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// PaymentStats is the admin revenue summary.
type PaymentStats struct {
	TotalPayments     int64           `json:"total_payments"`
	CompletedPayments int64           `json:"completed_payments"`
	PendingPayments   int64           `json:"pending_payments"`
	TotalRevenue      float64         `json:"total_revenue"`
	ByPlan            []PlanStatsItem `json:"by_plan"`
}

type PlanStatsItem struct {
	PlanID   int64   `json:"plan_id"`
	PlanName string  `json:"plan_name"`
	Count    int64   `json:"count"`
	Revenue  float64 `json:"revenue"`
}
