package repository

import (
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

// HistoryRepository is intentionally append-only: it exposes no update or
// delete operations, so history entries are immutable once written.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append writes one history entry using the given handle, which may be a
// transaction owned by the assigner.
func (r *HistoryRepository) Append(tx *gorm.DB, entry *model.MembershipHistory) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

// ListByUser returns the user's history, oldest first.
func (r *HistoryRepository) ListByUser(userID int64) ([]model.MembershipHistory, error) {
	var entries []model.MembershipHistory
	err := r.db.Preload("Plan").
		Where("user_id = ?", userID).
		Order("assigned_at").
		Find(&entries).Error
	return entries, err
}

func (r *HistoryRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.MembershipHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
