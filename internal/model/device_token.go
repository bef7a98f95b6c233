package model

import (
	"time"
)

// DeviceToken is an FCM registration token. A user can hold several (one per
// device); duplicates are rejected by the unique index.
type DeviceToken struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_user_token" json:"user_id"`
	Token     string    `gorm:"size:255;not null;uniqueIndex:idx_user_token" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
