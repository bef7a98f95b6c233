package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Preload("Plan").Preload("User").Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByOrderID(orderID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Preload("Plan").Preload("User").
		Where("paypal_order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

// HasActiveCompleted reports whether the user already has a completed,
// unexpired payment for the plan.
func (r *PaymentRepository) HasActiveCompleted(userID, planID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).
		Where("user_id = ? AND plan_id = ? AND status = ?", userID, planID, model.PaymentStatusCompleted).
		Where("expiration_date > ?", now).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's payments, newest first.
func (r *PaymentRepository) ListByUser(userID int64, page, pageSize int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	q := r.db.Model(&model.Payment{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Plan").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&payments).Error
	return payments, total, err
}

// List returns all payments (admin), optionally filtered by user.
func (r *PaymentRepository) List(userID *int64, page, pageSize int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	q := r.db.Model(&model.Payment{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Plan").Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *PaymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Count(&count).Error
	return count, err
}

func (r *PaymentRepository) SumCompleted() (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// PlanRevenue is one row of the per-plan revenue aggregation.
type PlanRevenue struct {
	PlanID  int64
	Count   int64
	Revenue float64
}

// AggregateCompletedByPlan groups completed payments per plan.
func (r *PaymentRepository) AggregateCompletedByPlan() ([]PlanRevenue, error) {
	var rows []PlanRevenue
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentStatusCompleted).
		Select("plan_id, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS revenue").
		Group("plan_id").
		Scan(&rows).Error
	return rows, err
}
