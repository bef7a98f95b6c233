package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/internal/api/middleware"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/service"
)

type MembershipHandler struct {
	planService       *service.PlanService
	membershipService *service.MembershipService
}

func NewMembershipHandler(planService *service.PlanService, membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		planService:       planService,
		membershipService: membershipService,
	}
}

// ListPlans returns the plan catalog.
// GET /api/v1/memberships
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, plans)
}

// GetPlan returns one plan.
// GET /api/v1/memberships/:id
func (h *MembershipHandler) GetPlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	plan, err := h.planService.Get(id)
	if err != nil {
		if err == service.ErrPlanNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, plan)
}

// GetPlanFullRoutine returns the plan with its complete routine tree.
// GET /api/v1/memberships/:id/full-routine
func (h *MembershipHandler) GetPlanFullRoutine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	plan, err := h.planService.GetWithFullRoutine(id)
	if err != nil {
		if err == service.ErrPlanNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, plan)
}

// CreatePlan creates a plan.
// POST /api/v1/admin/memberships
func (h *MembershipHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.planService.Create(&req)
	if err != nil {
		if err == service.ErrPlanNameExists {
			response.ConflictError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "plan creado", plan)
}

// UpdatePlan updates a plan.
// PUT /api/v1/admin/memberships/:id
func (h *MembershipHandler) UpdatePlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	var req dto.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.planService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrPlanNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPlanNameExists:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "plan actualizado", plan)
}

// DeletePlan removes a plan that no client holds.
// DELETE /api/v1/admin/memberships/:id
func (h *MembershipHandler) DeletePlan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	if err := h.planService.Delete(id); err != nil {
		switch err {
		case service.ErrPlanNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPlanInUse:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "plan eliminado", nil)
}

// Assign hands a plan to a client.
// POST /api/v1/admin/memberships/assign
func (h *MembershipHandler) Assign(c *gin.Context) {
	var req dto.AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.membershipService.Assign(req.UserID, req.PlanID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound, service.ErrPlanNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPlanInactive, service.ErrNotClient:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	h.membershipService.NotifyAssigned(c.Request.Context(), req.UserID, result)
	response.SuccessWithMessage(c, "membresía asignada", result)
}

// GetCurrent returns the caller's membership state.
// GET /api/v1/membership/current
func (h *MembershipHandler) GetCurrent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	current, err := h.membershipService.GetCurrent(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, current)
}

// GetStatus returns a compact active-or-not summary.
// GET /api/v1/membership/status
func (h *MembershipHandler) GetStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	current, err := h.membershipService.GetCurrent(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.MembershipStatus{
		HasActiveMembership: current.IsActive,
		CurrentMembership:   current,
	})
}

// GetHistory returns the caller's archived memberships.
// GET /api/v1/membership/history
func (h *MembershipHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	entries, err := h.membershipService.History(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, entries)
}

// GetClientHistory returns any user's membership history.
// GET /api/v1/admin/memberships/history/:userId
func (h *MembershipHandler) GetClientHistory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	entries, err := h.membershipService.History(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, entries)
}
