package dto

type CreateMuscleGroupRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
}

type UpdateMuscleGroupRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

type CreateExerciseRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=150"`
	Description   string `json:"description" binding:"required"`
	Series        int    `json:"series" binding:"required,gt=0"`
	Repetitions   int    `json:"repetitions" binding:"required,gt=0"`
	VideoURL      string `json:"video_url"`
	ImageURL      string `json:"image_url"`
	MuscleGroupID int64  `json:"muscle_group_id" binding:"required"`
}

type UpdateExerciseRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=2,max=150"`
	Description   *string `json:"description,omitempty"`
	Series        *int    `json:"series,omitempty" binding:"omitempty,gt=0"`
	Repetitions   *int    `json:"repetitions,omitempty" binding:"omitempty,gt=0"`
	VideoURL      *string `json:"video_url,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	MuscleGroupID *int64  `json:"muscle_group_id,omitempty"`
}

type AddRoutineSectionRequest struct {
	MuscleGroupID int64   `json:"muscle_group_id" binding:"required"`
	ExerciseIDs   []int64 `json:"exercise_ids" binding:"required,min=1"`
}

type UpdateRoutineStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVO INACTIVO"`
}
