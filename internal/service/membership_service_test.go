package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/repository"
	"github.com/soleofit/soleo_go_server/internal/testutil"
)

func setupMembershipService(t *testing.T) (*MembershipService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewMembershipService(
		db,
		repository.NewUserRepository(db),
		repository.NewPlanRepository(db),
		repository.NewHistoryRepository(db),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestMembershipService_Assign_FirstPlan(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithDuration(30))

	result, err := service.Assign(user.ID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, plan.ID, result.NewPlan.ID)
	assert.False(t, result.WasReplaced)
	assert.Nil(t, result.PreviousPlan)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), result.ExpiresAt, 2*time.Second)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.NotNil(t, fresh.CurrentPlanID)
	assert.Equal(t, plan.ID, *fresh.CurrentPlanID)

	// First assignment archives nothing.
	var count int64
	require.NoError(t, db.Model(&model.MembershipHistory{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestMembershipService_Assign_ReplacesPrevious(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	first := testutil.TestPlan(t, db, testutil.WithDuration(30))
	second := testutil.TestPlan(t, db, testutil.WithDuration(90))

	_, err := service.Assign(user.ID, first.ID)
	require.NoError(t, err)

	result, err := service.Assign(user.ID, second.ID)
	require.NoError(t, err)

	assert.True(t, result.WasReplaced)
	require.NotNil(t, result.PreviousPlan)
	assert.Equal(t, first.ID, result.PreviousPlan.ID)

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	require.NotNil(t, fresh.CurrentPlanID)
	assert.Equal(t, second.ID, *fresh.CurrentPlanID)

	var entries []model.MembershipHistory
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, first.ID, entries[0].PlanID)
	assert.Equal(t, model.HistoryStatusExpired, entries[0].Status)
	assert.WithinDuration(t, time.Now(), entries[0].ExpiredAt, 2*time.Second)
}

func TestMembershipService_Assign_SamePlanResetsWindow(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db, testutil.WithDuration(30))
	assignedAt := time.Now().AddDate(0, 0, -20)
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, assignedAt, assignedAt.AddDate(0, 0, 30)))

	result, err := service.Assign(user.ID, plan.ID)
	require.NoError(t, err)

	// The old window lands in the history and the new one starts from today.
	assert.True(t, result.WasReplaced)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), result.ExpiresAt, 2*time.Second)

	var entry model.MembershipHistory
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, plan.ID, entry.PlanID)
	assert.WithinDuration(t, assignedAt, entry.AssignedAt, 2*time.Second)
}

func TestMembershipService_Assign_UserNotFound(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db)

	_, err := service.Assign(99999, plan.ID)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestMembershipService_Assign_PlanNotFound(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.Assign(user.ID, 99999)
	assert.Equal(t, ErrPlanNotFound, err)
}

func TestMembershipService_Assign_PlanInactive(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPlanStatus(model.PlanStatusInactive))

	_, err := service.Assign(user.ID, plan.ID)
	assert.Equal(t, ErrPlanInactive, err)
}

func TestMembershipService_Assign_AdminRejected(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))
	plan := testutil.TestPlan(t, db)

	_, err := service.Assign(admin.ID, plan.ID)
	assert.Equal(t, ErrNotClient, err)
}

func TestMembershipService_AssignDefault(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	trial := testutil.TestPlan(t, db,
		testutil.WithPlanName("SEMILLA"),
		testutil.WithPrice(0),
		testutil.WithDuration(365),
		testutil.WithTrial(),
	)
	user := testutil.TestUser(t, db)

	result, err := service.AssignDefault(user.ID)
	require.NoError(t, err)

	assert.Equal(t, trial.ID, result.NewPlan.ID)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 365), result.ExpiresAt, 2*time.Second)
}

func TestMembershipService_AssignDefault_TrialMissing(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	// A plan exists but it is not a trial.
	testutil.TestPlan(t, db)
	user := testutil.TestUser(t, db)

	_, err := service.AssignDefault(user.ID)
	assert.Equal(t, ErrTrialPlanMissing, err)

	// The user was not touched.
	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Nil(t, fresh.CurrentPlanID)
	assert.Nil(t, fresh.MembershipExpiresAt)
}

func TestMembershipService_GetCurrent_NeverHadPlan(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	current, err := service.GetCurrent(user.ID)
	require.NoError(t, err)

	assert.Nil(t, current.Plan)
	assert.False(t, current.IsActive)
	assert.False(t, current.IsExpired)
	assert.Equal(t, 0, current.DaysRemaining)
}

func TestMembershipService_GetCurrent_Active(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db, testutil.WithDuration(30))
	user := testutil.TestUser(t, db)

	_, err := service.Assign(user.ID, plan.ID)
	require.NoError(t, err)

	current, err := service.GetCurrent(user.ID)
	require.NoError(t, err)

	require.NotNil(t, current.Plan)
	assert.Equal(t, plan.ID, current.Plan.ID)
	assert.True(t, current.IsActive)
	assert.False(t, current.IsExpired)
	assert.Equal(t, 30, current.DaysRemaining)
}

func TestMembershipService_GetCurrent_Expired(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db)
	assignedAt := time.Now().AddDate(0, 0, -60)
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, assignedAt, assignedAt.AddDate(0, 0, 30)))

	current, err := service.GetCurrent(user.ID)
	require.NoError(t, err)

	require.NotNil(t, current.Plan)
	assert.False(t, current.IsActive)
	assert.True(t, current.IsExpired)
	assert.Equal(t, 0, current.DaysRemaining)
}

func TestMembershipService_GetCurrent_UserNotFound(t *testing.T) {
	service, _, cleanup := setupMembershipService(t)
	defer cleanup()

	_, err := service.GetCurrent(99999)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestMembershipService_HasActive(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db)
	user := testutil.TestUser(t, db)

	active, err := service.HasActive(user.ID)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = service.Assign(user.ID, plan.ID)
	require.NoError(t, err)

	active, err = service.HasActive(user.ID)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestMembershipService_History_OldestFirst(t *testing.T) {
	service, db, cleanup := setupMembershipService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	first := testutil.TestPlan(t, db, testutil.WithPlanName("Plan A"))
	second := testutil.TestPlan(t, db, testutil.WithPlanName("Plan B"))
	third := testutil.TestPlan(t, db, testutil.WithPlanName("Plan C"))

	for _, planID := range []int64{first.ID, second.ID, third.ID} {
		_, err := service.Assign(user.ID, planID)
		require.NoError(t, err)
	}

	entries, err := service.History(user.ID)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].PlanID)
	assert.Equal(t, second.ID, entries[1].PlanID)
}

func TestMembershipService_History_UserNotFound(t *testing.T) {
	service, _, cleanup := setupMembershipService(t)
	defer cleanup()

	_, err := service.History(99999)
	assert.Equal(t, ErrUserNotFound, err)
}
