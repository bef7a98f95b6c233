package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(log *model.WorkoutLog) error {
	return r.db.Create(log).Error
}

func (r *WorkoutRepository) GetByID(id int64) (*model.WorkoutLog, error) {
	var log model.WorkoutLog
	err := r.db.Preload("Routine").Preload("MuscleGroup").
		Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// GetOpen returns the user's unfinished session, if any.
func (r *WorkoutRepository) GetOpen(userID int64) (*model.WorkoutLog, error) {
	var log model.WorkoutLog
	err := r.db.Preload("Routine").Preload("MuscleGroup").
		Where("user_id = ? AND end_time IS NULL", userID).
		Order("start_time DESC").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *WorkoutRepository) Update(log *model.WorkoutLog) error {
	return r.db.Save(log).Error
}

func (r *WorkoutRepository) Delete(id int64) error {
	return r.db.Delete(&model.WorkoutLog{}, id).Error
}

// ListByUser returns finished sessions, newest first.
func (r *WorkoutRepository) ListByUser(userID int64, page, pageSize int) ([]model.WorkoutLog, int64, error) {
	var logs []model.WorkoutLog
	var total int64

	q := r.db.Model(&model.WorkoutLog{}).
		Where("user_id = ? AND end_time IS NOT NULL", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Routine").Preload("MuscleGroup").
		Order("start_time DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&logs).Error
	return logs, total, err
}

// ListBetween returns sessions starting inside [from, to).
func (r *WorkoutRepository) ListBetween(userID int64, from, to time.Time) ([]model.WorkoutLog, error) {
	var logs []model.WorkoutLog
	err := r.db.Preload("MuscleGroup").
		Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time").
		Find(&logs).Error
	return logs, err
}

// CountFinishedSince counts finished sessions started at or after the cutoff.
func (r *WorkoutRepository) CountFinishedSince(userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.WorkoutLog{}).
		Where("user_id = ? AND start_time >= ? AND end_time IS NOT NULL", userID, since).
		Count(&count).Error
	return count, err
}
