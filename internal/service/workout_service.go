package service

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrWorkoutNotFound    = errors.New("entrenamiento no encontrado")
	ErrWorkoutPermission  = errors.New("el entrenamiento pertenece a otro usuario")
	ErrWorkoutInProgress  = errors.New("ya hay un entrenamiento en curso")
	ErrNoOpenWorkout      = errors.New("no hay entrenamiento en curso")
	ErrWorkoutFinished    = errors.New("el entrenamiento ya terminó")
	ErrNoRoutineForPlan   = errors.New("el plan actual no tiene rutina asignada")
	ErrMembershipRequired = errors.New("se requiere una membresía activa")
)

// streakMinExercises is the minimum completed exercises for a session to
// count toward the streak.
const streakMinExercises = 3

type WorkoutService struct {
	workoutRepo       *repository.WorkoutRepository
	userRepo          *repository.UserRepository
	planRepo          *repository.PlanRepository
	membershipService *MembershipService
}

func NewWorkoutService(
	workoutRepo *repository.WorkoutRepository,
	userRepo *repository.UserRepository,
	planRepo *repository.PlanRepository,
	membershipService *MembershipService,
) *WorkoutService {
	return &WorkoutService{
		workoutRepo:       workoutRepo,
		userRepo:          userRepo,
		planRepo:          planRepo,
		membershipService: membershipService,
	}
}

// Start opens a session on the routine of the user's current plan. One open
// session per user.
func (s *WorkoutService) Start(userID int64, req *dto.StartWorkoutRequest) (*model.WorkoutLog, error) {
	active, err := s.membershipService.HasActive(userID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrMembershipRequired
	}

	user, err := s.userRepo.GetByIDWithPlan(userID)
	if err != nil {
		return nil, err
	}
	if user.CurrentPlan == nil || user.CurrentPlan.RoutineID == nil {
		return nil, ErrNoRoutineForPlan
	}

	if _, err := s.workoutRepo.GetOpen(userID); err == nil {
		return nil, ErrWorkoutInProgress
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	workout := &model.WorkoutLog{
		UserID:             userID,
		RoutineID:          *user.CurrentPlan.RoutineID,
		MuscleGroupID:      req.MuscleGroupID,
		StartTime:          time.Now(),
		CompletedExercises: model.Int64Array{},
	}
	if err := s.workoutRepo.Create(workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// Current returns the open session, if any.
func (s *WorkoutService) Current(userID int64) (*model.WorkoutLog, error) {
	workout, err := s.workoutRepo.GetOpen(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenWorkout
		}
		return nil, err
	}
	return workout, nil
}

// Finish closes the open session, computes its duration and rolls the streak
// and progress counters forward. Short sessions (fewer than three completed
// exercises) are logged but don't move the streak.
func (s *WorkoutService) Finish(userID int64, req *dto.FinishWorkoutRequest) (*dto.FinishWorkoutResponse, error) {
	workout, err := s.workoutRepo.GetOpen(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenWorkout
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	workout.EndTime = &now
	workout.DurationMinutes = int(math.Round(now.Sub(workout.StartTime).Minutes()))
	workout.TotalExerciseSeconds = req.TotalExerciseSeconds
	workout.CompletedExercises = req.CompletedExercises
	workout.Notes = req.Notes

	if len(req.CompletedExercises) >= streakMinExercises {
		s.advanceStreak(user, now)
	}
	workout.StreakAtFinish = user.StreakCurrent

	user.TotalWorkouts++
	user.TotalExerciseSeconds += int64(req.TotalExerciseSeconds)
	user.TotalDurationMinutes += int64(workout.DurationMinutes)

	if err := s.workoutRepo.Update(workout); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return &dto.FinishWorkoutResponse{
		Workout: workout,
		Streak:  user.StreakCurrent,
	}, nil
}

// advanceStreak applies the consecutive-day rule: a second qualifying
// session the same day changes nothing, a session the day after the last one
// extends the run, anything later restarts it at 1.
func (s *WorkoutService) advanceStreak(user *model.User, now time.Time) {
	today := dateOf(now)
	if user.LastWorkoutAt != nil {
		last := dateOf(*user.LastWorkoutAt)
		switch {
		case last.Equal(today):
			return
		case last.Equal(today.AddDate(0, 0, -1)):
			user.StreakCurrent++
		default:
			user.StreakCurrent = 1
		}
	} else {
		user.StreakCurrent = 1
	}

	if user.StreakCurrent > user.StreakLongest {
		user.StreakLongest = user.StreakCurrent
	}
	user.LastWorkoutAt = &now
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// UpdateExercises replaces the completed-exercise list of the open session.
func (s *WorkoutService) UpdateExercises(userID, workoutID int64, exerciseIDs []int64) (*model.WorkoutLog, error) {
	workout, err := s.getOwned(userID, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.EndTime != nil {
		return nil, ErrWorkoutFinished
	}

	workout.CompletedExercises = exerciseIDs
	if err := s.workoutRepo.Update(workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *WorkoutService) Get(userID, workoutID int64) (*model.WorkoutLog, error) {
	return s.getOwned(userID, workoutID)
}

func (s *WorkoutService) Delete(userID, workoutID int64) error {
	if _, err := s.getOwned(userID, workoutID); err != nil {
		return err
	}
	return s.workoutRepo.Delete(workoutID)
}

// History lists finished sessions, newest first.
func (s *WorkoutService) History(userID int64, page, pageSize int) ([]model.WorkoutLog, int64, error) {
	return s.workoutRepo.ListByUser(userID, page, pageSize)
}

// Today lists sessions that started today.
func (s *WorkoutService) Today(userID int64) ([]model.WorkoutLog, error) {
	now := time.Now()
	start := dateOf(now)
	return s.workoutRepo.ListBetween(userID, start, start.AddDate(0, 0, 1))
}

// TodayProgress summarizes today's activity for the dashboard.
func (s *WorkoutService) TodayProgress(userID int64) (*dto.TodayProgress, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	workouts, err := s.Today(userID)
	if err != nil {
		return nil, err
	}

	progress := &dto.TodayProgress{
		StreakCurrent: user.StreakCurrent,
	}
	for _, w := range workouts {
		if w.EndTime == nil {
			progress.HasOpenWorkout = true
			progress.OpenWorkoutID = w.ID
			continue
		}
		progress.WorkoutsToday++
		progress.ExercisesDone += len(w.CompletedExercises)
		progress.DurationMinutes += w.DurationMinutes
	}
	return progress, nil
}

// Statistics aggregates lifetime, weekly and monthly totals.
func (s *WorkoutService) Statistics(userID int64) (*dto.WorkoutStatistics, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	weekStart := dateOf(now).AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	thisWeek, err := s.workoutRepo.CountFinishedSince(userID, weekStart)
	if err != nil {
		return nil, err
	}
	thisMonth, err := s.workoutRepo.CountFinishedSince(userID, monthStart)
	if err != nil {
		return nil, err
	}

	return &dto.WorkoutStatistics{
		TotalWorkouts:        user.TotalWorkouts,
		TotalDurationMinutes: user.TotalDurationMinutes,
		TotalExerciseSeconds: user.TotalExerciseSeconds,
		WorkoutsThisWeek:     thisWeek,
		WorkoutsThisMonth:    thisMonth,
		StreakCurrent:        user.StreakCurrent,
		StreakLongest:        user.StreakLongest,
		LastWorkoutAt:        user.LastWorkoutAt,
	}, nil
}

func (s *WorkoutService) getOwned(userID, workoutID int64) (*model.WorkoutLog, error) {
	workout, err := s.workoutRepo.GetByID(workoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutPermission
	}
	return workout, nil
}
