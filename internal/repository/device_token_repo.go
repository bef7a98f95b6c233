package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type DeviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Save registers a token for the user; re-registering the same token is a
// no-op.
func (r *DeviceTokenRepository) Save(userID int64, token string) error {
	var existing model.DeviceToken
	err := r.db.Where("user_id = ? AND token = ?", userID, token).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&model.DeviceToken{UserID: userID, Token: token}).Error
}

func (r *DeviceTokenRepository) ListByUser(userID int64) ([]string, error) {
	var tokens []string
	err := r.db.Model(&model.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}

func (r *DeviceTokenRepository) DeleteByUser(userID int64) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.DeviceToken{}).Error
}
