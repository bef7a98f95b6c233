package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Int64Array is a JSON-encoded array column.
type Int64Array []int64

func (a Int64Array) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

func (a *Int64Array) Scan(value interface{}) error {
	if value == nil {
		*a = []int64{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return nil
}

type WorkoutLog struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	UserID        int64      `gorm:"not null;index:idx_workout_user_start" json:"user_id"`
	RoutineID     int64      `gorm:"not null" json:"routine_id"`
	MuscleGroupID int64      `gorm:"not null" json:"muscle_group_id"`
	StartTime     time.Time  `gorm:"not null;index:idx_workout_user_start" json:"start_time"`
	EndTime       *time.Time `gorm:"index" json:"end_time,omitempty"`
	// DurationMinutes is wall-clock session length; TotalExerciseSeconds is
	// the summed per-exercise time reported by the client.
	DurationMinutes      int        `gorm:"default:0" json:"duration_minutes"`
	TotalExerciseSeconds int        `gorm:"default:0" json:"total_exercise_seconds"`
	CompletedExercises   Int64Array `gorm:"type:json" json:"completed_exercises"`
	StreakAtFinish       int        `gorm:"default:0" json:"streak_at_finish"`
	Notes                string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Routine     *Routine     `gorm:"foreignKey:RoutineID" json:"routine,omitempty"`
	MuscleGroup *MuscleGroup `gorm:"foreignKey:MuscleGroupID" json:"muscle_group,omitempty"`
}

func (WorkoutLog) TableName() string {
	return "workout_logs"
}
