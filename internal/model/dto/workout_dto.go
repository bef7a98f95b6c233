package dto

import (
	"time"

	"github.com/soleofit/soleo_go_server/internal/model"
)

type StartWorkoutRequest struct {
	MuscleGroupID int64 `json:"muscle_group_id" binding:"required"`
}

type FinishWorkoutRequest struct {
	CompletedExercises   []int64 `json:"completed_exercises"`
	TotalExerciseSeconds int     `json:"total_exercise_seconds" binding:"min=0"`
	Notes                string  `json:"notes"`
}

type UpdateExercisesRequest struct {
	CompletedExercises []int64 `json:"completed_exercises" binding:"required"`
}

type FinishWorkoutResponse struct {
	Workout *model.WorkoutLog `json:"workout"`
	Streak  int               `json:"streak"`
}

// TodayProgress summarizes the caller's day.
type TodayProgress struct {
	WorkoutsToday   int   `json:"workouts_today"`
	ExercisesDone   int   `json:"exercises_done"`
	DurationMinutes int   `json:"duration_minutes"`
	StreakCurrent   int   `json:"streak_current"`
	HasOpenWorkout  bool  `json:"has_open_workout"`
	OpenWorkoutID   int64 `json:"open_workout_id,omitempty"`
}

// WorkoutStatistics aggregates finished sessions.
type WorkoutStatistics struct {
	TotalWorkouts        int        `json:"total_workouts"`
	TotalDurationMinutes int64      `json:"total_duration_minutes"`
	TotalExerciseSeconds int64      `json:"total_exercise_seconds"`
	WorkoutsThisWeek     int64      `json:"workouts_this_week"`
	WorkoutsThisMonth    int64      `json:"workouts_this_month"`
	StreakCurrent        int        `json:"streak_current"`
	StreakLongest        int        `json:"streak_longest"`
	LastWorkoutAt        *time.Time `json:"last_workout_at,omitempty"`
}
