package model

import (
	"time"
)

const (
	RoutineStatusActive   = "ACTIVO"
	RoutineStatusInactive = "INACTIVO"
)

type MuscleGroup struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MuscleGroup) TableName() string {
	return "muscle_groups"
}

type Exercise struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Series        int       `gorm:"not null" json:"series"`
	Repetitions   int       `gorm:"not null" json:"repetitions"`
	VideoURL      string    `gorm:"size:500" json:"video_url,omitempty"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	MuscleGroupID int64     `gorm:"not null;index" json:"muscle_group_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	MuscleGroup *MuscleGroup `gorm:"foreignKey:MuscleGroupID" json:"muscle_group,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// Routine is an ordered set of muscle-group sections, each holding the
// exercises picked for that section.
type Routine struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Status    string    `gorm:"size:20;default:ACTIVO" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []RoutineSection `gorm:"foreignKey:RoutineID" json:"sections,omitempty"`
}

func (Routine) TableName() string {
	return "routines"
}

type RoutineSection struct {
	ID            int64 `gorm:"primaryKey" json:"id"`
	RoutineID     int64 `gorm:"not null;index" json:"routine_id"`
	MuscleGroupID int64 `gorm:"not null;index" json:"muscle_group_id"`
	Position      int   `gorm:"default:0" json:"position"`

	MuscleGroup *MuscleGroup `gorm:"foreignKey:MuscleGroupID" json:"muscle_group,omitempty"`
	Exercises   []Exercise   `gorm:"many2many:routine_section_exercises" json:"exercises,omitempty"`
}

func (RoutineSection) TableName() string {
	return "routine_sections"
}
