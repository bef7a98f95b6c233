package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/repository"
	"github.com/soleofit/soleo_go_server/internal/testutil"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewUserService(
		repository.NewUserRepository(db),
		repository.NewDeviceTokenRepository(db),
		nil, // no object storage in tests
		&config.Config{},
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestUserService_GetProfile(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db, testutil.WithPlanName("PRO"))
	now := time.Now()
	user := testutil.TestUser(t, db,
		testutil.WithMembership(plan.ID, now, now.AddDate(0, 0, 30)))

	info, err := service.GetProfile(user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.Email, info.Email)
	assert.Equal(t, "PRO", info.Membership)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	service, _, cleanup := setupUserService(t)
	defer cleanup()

	_, err := service.GetProfile(99999)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	weight := 82.5
	exerciseTime := "07:30"
	info, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Weight:       &weight,
		ExerciseTime: &exerciseTime,
	})
	require.NoError(t, err)

	require.NotNil(t, info.Weight)
	assert.Equal(t, 82.5, *info.Weight)
	require.NotNil(t, info.ExerciseTime)
	assert.Equal(t, "07:30", *info.ExerciseTime)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithEmail("taken@example.com"))
	user := testutil.TestUser(t, db)

	email := "taken@example.com"
	_, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Email: &email})
	assert.Equal(t, ErrEmailExists, err)
}

func TestUserService_UpdateStatus(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	require.NoError(t, service.UpdateStatus(user.ID, model.UserStatusInactive))

	var fresh model.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, model.UserStatusInactive, fresh.Status)
}

func TestUserService_Delete(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	require.NoError(t, service.RegisterDeviceToken(user.ID, "tok-1"))

	require.NoError(t, service.Delete(user.ID))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, db.Model(&model.DeviceToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUserService_RegisterDeviceToken_Idempotent(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	require.NoError(t, service.RegisterDeviceToken(user.ID, "tok-1"))
	require.NoError(t, service.RegisterDeviceToken(user.ID, "tok-1"))
	require.NoError(t, service.RegisterDeviceToken(user.ID, "tok-2"))

	var count int64
	require.NoError(t, db.Model(&model.DeviceToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUserService_ListClients(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	testutil.TestUser(t, db)
	testutil.TestUser(t, db)
	testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	clients, err := service.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}
