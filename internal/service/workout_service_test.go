package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/repository"
	"github.com/soleofit/soleo_go_server/internal/testutil"
)

func setupWorkoutService(t *testing.T) (*WorkoutService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	membershipService := NewMembershipService(db, userRepo, planRepo, repository.NewHistoryRepository(db))

	service := NewWorkoutService(
		repository.NewWorkoutRepository(db),
		userRepo,
		planRepo,
		membershipService,
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

// memberWithRoutine creates a user holding an active plan whose routine and
// muscle group are set up.
func memberWithRoutine(t *testing.T, db *gorm.DB) (*model.User, *model.MuscleGroup) {
	t.Helper()

	routine := testutil.TestRoutine(t, db)
	group := testutil.TestMuscleGroup(t, db, "Pecho")
	plan := testutil.TestPlan(t, db, testutil.WithRoutineID(routine.ID))

	now := time.Now()
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, now, now.AddDate(0, 0, 30)))
	return user, group
}

func TestWorkoutService_Start(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	workout, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	assert.Equal(t, user.ID, workout.UserID)
	assert.Equal(t, group.ID, workout.MuscleGroupID)
	assert.Nil(t, workout.EndTime)
}

func TestWorkoutService_Start_RequiresMembership(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	group := testutil.TestMuscleGroup(t, db, "Espalda")

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	assert.Equal(t, ErrMembershipRequired, err)
}

func TestWorkoutService_Start_OneOpenSession(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	_, err = service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	assert.Equal(t, ErrWorkoutInProgress, err)
}

func TestWorkoutService_Finish(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	resp, err := service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises:   []int64{1, 2, 3, 4},
		TotalExerciseSeconds: 1800,
		Notes:                "buen día",
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Workout.EndTime)
	assert.Equal(t, 1, resp.Streak)
	assert.Equal(t, 1, resp.Workout.StreakAtFinish)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.StreakCurrent)
	assert.Equal(t, 1, fresh.StreakLongest)
	assert.Equal(t, 1, fresh.TotalWorkouts)
	assert.Equal(t, int64(1800), fresh.TotalExerciseSeconds)
	require.NotNil(t, fresh.LastWorkoutAt)
}

func TestWorkoutService_Finish_NoOpenWorkout(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Finish(user.ID, &dto.FinishWorkoutRequest{})
	assert.Equal(t, ErrNoOpenWorkout, err)
}

func TestWorkoutService_Finish_ShortSessionSkipsStreak(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	// Fewer than three exercises: logged, streak untouched.
	resp, err := service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises: []int64{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Streak)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 0, fresh.StreakCurrent)
	assert.Equal(t, 1, fresh.TotalWorkouts)
	assert.Nil(t, fresh.LastWorkoutAt)
}

func TestWorkoutService_Finish_StreakExtendsFromYesterday(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	routine := testutil.TestRoutine(t, db)
	group := testutil.TestMuscleGroup(t, db, "Pierna")
	plan := testutil.TestPlan(t, db, testutil.WithRoutineID(routine.ID))

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, now, now.AddDate(0, 0, 30)),
		testutil.WithStreak(4, 6, yesterday))

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	resp, err := service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises: []int64{1, 2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Streak)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 5, fresh.StreakCurrent)
	assert.Equal(t, 6, fresh.StreakLongest)
}

func TestWorkoutService_Finish_StreakResetsAfterGap(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	routine := testutil.TestRoutine(t, db)
	group := testutil.TestMuscleGroup(t, db, "Hombro")
	plan := testutil.TestPlan(t, db, testutil.WithRoutineID(routine.ID))

	now := time.Now()
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, now, now.AddDate(0, 0, 30)),
		testutil.WithStreak(7, 9, now.AddDate(0, 0, -3)))

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	resp, err := service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises: []int64{1, 2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Streak)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.StreakCurrent)
	// Longest is preserved.
	assert.Equal(t, 9, fresh.StreakLongest)
}

func TestWorkoutService_Finish_SameDayNoDoubleCount(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	for i := 0; i < 2; i++ {
		_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
		require.NoError(t, err)
		_, err = service.Finish(user.ID, &dto.FinishWorkoutRequest{
			CompletedExercises: []int64{1, 2, 3},
		})
		require.NoError(t, err)
	}

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.StreakCurrent)
	assert.Equal(t, 2, fresh.TotalWorkouts)
}

func TestWorkoutService_UpdateExercises(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	workout, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	updated, err := service.UpdateExercises(user.ID, workout.ID, []int64{5, 6})
	require.NoError(t, err)
	assert.Equal(t, model.Int64Array{5, 6}, updated.CompletedExercises)

	// Finished workouts can't be edited.
	_, err = service.Finish(user.ID, &dto.FinishWorkoutRequest{CompletedExercises: []int64{5, 6}})
	require.NoError(t, err)

	_, err = service.UpdateExercises(user.ID, workout.ID, []int64{7})
	assert.Equal(t, ErrWorkoutFinished, err)
}

func TestWorkoutService_Get_Ownership(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)
	other := testutil.TestUser(t, db)

	workout, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	_, err = service.Get(other.ID, workout.ID)
	assert.Equal(t, ErrWorkoutPermission, err)

	_, err = service.Get(user.ID, 99999)
	assert.Equal(t, ErrWorkoutNotFound, err)
}

func TestWorkoutService_TodayProgress(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)
	_, err = service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises: []int64{1, 2, 3, 4},
	})
	require.NoError(t, err)

	// A second open session.
	open, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)

	progress, err := service.TodayProgress(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, progress.WorkoutsToday)
	assert.Equal(t, 4, progress.ExercisesDone)
	assert.Equal(t, 1, progress.StreakCurrent)
	assert.True(t, progress.HasOpenWorkout)
	assert.Equal(t, open.ID, progress.OpenWorkoutID)
}

func TestWorkoutService_Statistics(t *testing.T) {
	service, db, cleanup := setupWorkoutService(t)
	defer cleanup()

	user, group := memberWithRoutine(t, db)

	_, err := service.Start(user.ID, &dto.StartWorkoutRequest{MuscleGroupID: group.ID})
	require.NoError(t, err)
	_, err = service.Finish(user.ID, &dto.FinishWorkoutRequest{
		CompletedExercises:   []int64{1, 2, 3},
		TotalExerciseSeconds: 900,
	})
	require.NoError(t, err)

	stats, err := service.Statistics(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalWorkouts)
	assert.Equal(t, int64(900), stats.TotalExerciseSeconds)
	assert.Equal(t, int64(1), stats.WorkoutsThisMonth)
	assert.Equal(t, 1, stats.StreakCurrent)
	require.NotNil(t, stats.LastWorkoutAt)
}
