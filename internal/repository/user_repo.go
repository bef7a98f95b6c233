package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDWithPlan preloads the current plan reference.
func (r *UserRepository) GetByIDWithPlan(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Preload("CurrentPlan").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Preload("CurrentPlan").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&model.User{}, id).Error
}

// ListClients returns all client accounts, newest first.
func (r *UserRepository) ListClients() ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("CurrentPlan").
		Where("role = ?", model.RoleClient).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// CountByCurrentPlan counts users holding the given plan as current. Used to
// block plan deletion while referenced.
func (r *UserRepository) CountByCurrentPlan(planID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("current_plan_id = ?", planID).Count(&count).Error
	return count, err
}

// ListExpiringBetween returns active users whose membership expires within
// the window, for the expiry-alert job.
func (r *UserRepository) ListExpiringBetween(from, to time.Time) ([]model.User, error) {
	var users []model.User
	err := r.db.Preload("CurrentPlan").
		Where("status = ?", model.UserStatusActive).
		Where("membership_expires_at >= ? AND membership_expires_at <= ?", from, to).
		Find(&users).Error
	return users, err
}

// ListWithExerciseTime returns active clients that configured a preferred
// training time, for the workout-reminder job.
func (r *UserRepository) ListWithExerciseTime() ([]model.User, error) {
	var users []model.User
	err := r.db.
		Where("role = ? AND status = ?", model.RoleClient, model.UserStatusActive).
		Where("exercise_time IS NOT NULL AND exercise_time != ''").
		Find(&users).Error
	return users, err
}
