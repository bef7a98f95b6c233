package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/internal/api/middleware"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/service"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// Start opens a workout session for a muscle group.
// POST /api/v1/workouts/start
func (h *WorkoutHandler) Start(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	workout, err := h.workoutService.Start(userID, &req)
	if err != nil {
		switch err {
		case service.ErrMembershipRequired:
			response.PermissionError(c, err.Error())
		case service.ErrNoRoutineForPlan:
			response.ParamError(c, err.Error())
		case service.ErrWorkoutInProgress:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "entrenamiento iniciado", workout)
}

// Current returns the open session, if any.
// GET /api/v1/workouts/current
func (h *WorkoutHandler) Current(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	workout, err := h.workoutService.Current(userID)
	if err != nil {
		if err == service.ErrNoOpenWorkout {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, workout)
}

// Finish closes the open session and advances the streak.
// POST /api/v1/workouts/finish
func (h *WorkoutHandler) Finish(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.FinishWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.workoutService.Finish(userID, &req)
	if err != nil {
		if err == service.ErrNoOpenWorkout {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "entrenamiento terminado", result)
}

// UpdateExercises replaces the completed-exercise list of the open session.
// PUT /api/v1/workouts/:id/exercises
func (h *WorkoutHandler) UpdateExercises(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}
	workoutID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	workout, err := h.workoutService.UpdateExercises(userID, workoutID, req.CompletedExercises)
	if err != nil {
		switch err {
		case service.ErrWorkoutNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrWorkoutPermission:
			response.PermissionError(c, err.Error())
		case service.ErrWorkoutFinished:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, workout)
}

// Get returns one of the caller's workouts.
// GET /api/v1/workouts/:id
func (h *WorkoutHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}
	workoutID, ok := parseID(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(userID, workoutID)
	if err != nil {
		switch err {
		case service.ErrWorkoutNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrWorkoutPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, workout)
}

// Delete removes one of the caller's workouts.
// DELETE /api/v1/workouts/:id
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}
	workoutID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(userID, workoutID); err != nil {
		switch err {
		case service.ErrWorkoutNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrWorkoutPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "entrenamiento eliminado", nil)
}

// History lists the caller's past workouts, newest first.
// GET /api/v1/workouts/history
func (h *WorkoutHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := parsePagination(c)
	workouts, total, err := h.workoutService.History(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, workouts)
}

// Today lists the caller's workouts since midnight.
// GET /api/v1/workouts/today
func (h *WorkoutHandler) Today(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	workouts, err := h.workoutService.Today(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, workouts)
}

// TodayProgress summarizes today's activity and the streak.
// GET /api/v1/workouts/today/progress
func (h *WorkoutHandler) TodayProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	progress, err := h.workoutService.TodayProgress(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, progress)
}

// Statistics returns lifetime, weekly and monthly workout totals.
// GET /api/v1/workouts/statistics
func (h *WorkoutHandler) Statistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.workoutService.Statistics(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, stats)
}
