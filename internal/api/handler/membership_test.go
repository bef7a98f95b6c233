package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soleofit/soleo_go_server/internal/api/middleware"
	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/repository"
	"github.com/soleofit/soleo_go_server/internal/service"
	"github.com/soleofit/soleo_go_server/internal/testutil"
)

func setupMembershipHandler(t *testing.T) (*MembershipHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	planService := service.NewPlanService(planRepo, userRepo)
	membershipService := service.NewMembershipService(db, userRepo, planRepo, historyRepo)
	handler := NewMembershipHandler(planService, membershipService)

	ctx := &testContext{DB: db}
	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestMembershipHandler_ListPlans(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	testutil.TestPlan(t, ctx.DB, testutil.WithPlanName("BÁSICO"))
	testutil.TestPlan(t, ctx.DB, testutil.WithPlanName("PREMIUM"))

	router := gin.New()
	router.GET("/memberships", handler.ListPlans)

	req := httptest.NewRequest("GET", "/memberships", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestMembershipHandler_GetPlan_NotFound(t *testing.T) {
	handler, _, cleanup := setupMembershipHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/memberships/:id", handler.GetPlan)

	req := httptest.NewRequest("GET", "/memberships/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestMembershipHandler_Assign_Success(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPlanName("PREMIUM"), testutil.WithDuration(30))

	router := gin.New()
	router.Use(mockAuth(1, model.RoleAdmin))
	router.POST("/admin/memberships/assign", middleware.Require(middleware.ActionAssignMemberships), handler.Assign)

	w := performRequest(router, "POST", "/admin/memberships/assign", dto.AssignPlanRequest{
		UserID: user.ID,
		PlanID: plan.ID,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)

	var updated model.User
	require.NoError(t, ctx.DB.First(&updated, user.ID).Error)
	require.NotNil(t, updated.CurrentPlanID)
	assert.Equal(t, plan.ID, *updated.CurrentPlanID)
	require.NotNil(t, updated.MembershipExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *updated.MembershipExpiresAt, 5*time.Second)
}

func TestMembershipHandler_Assign_ClientForbidden(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, model.RoleClient))
	router.POST("/admin/memberships/assign", middleware.Require(middleware.ActionAssignMemberships), handler.Assign)

	w := performRequest(router, "POST", "/admin/memberships/assign", dto.AssignPlanRequest{
		UserID: user.ID,
		PlanID: plan.ID,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodePermissionDenied, resp.Code)
}

func TestMembershipHandler_Assign_PlanNotFound(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(1, model.RoleAdmin))
	router.POST("/admin/memberships/assign", handler.Assign)

	w := performRequest(router, "POST", "/admin/memberships/assign", dto.AssignPlanRequest{
		UserID: user.ID,
		PlanID: 9999,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestMembershipHandler_GetStatus_Active(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPlanName("PREMIUM"))
	now := time.Now()
	user := testutil.TestUser(t, ctx.DB, testutil.WithMembership(plan.ID, now, now.AddDate(0, 0, 15)))

	router := gin.New()
	router.Use(mockAuth(user.ID, model.RoleClient))
	router.GET("/membership/status", handler.GetStatus)

	req := httptest.NewRequest("GET", "/membership/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["has_active_membership"])
}

func TestMembershipHandler_GetHistory_Empty(t *testing.T) {
	handler, ctx, cleanup := setupMembershipHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID, model.RoleClient))
	router.GET("/membership/history", handler.GetHistory)

	req := httptest.NewRequest("GET", "/membership/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}
