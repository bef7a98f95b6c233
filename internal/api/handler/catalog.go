package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return 0, false
	}
	return id, true
}

// ListMuscleGroups returns every muscle group.
// GET /api/v1/muscle-groups
func (h *CatalogHandler) ListMuscleGroups(c *gin.Context) {
	groups, err := h.catalogService.ListMuscleGroups()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, groups)
}

// GetMuscleGroup returns one muscle group with its exercises.
// GET /api/v1/muscle-groups/:id
func (h *CatalogHandler) GetMuscleGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	group, err := h.catalogService.GetMuscleGroup(id)
	if err != nil {
		if err == service.ErrMuscleGroupNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, group)
}

// CreateMuscleGroup adds a muscle group.
// POST /api/v1/admin/muscle-groups
func (h *CatalogHandler) CreateMuscleGroup(c *gin.Context) {
	var req dto.CreateMuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	group, err := h.catalogService.CreateMuscleGroup(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "grupo muscular creado", group)
}

// UpdateMuscleGroup edits a muscle group.
// PUT /api/v1/admin/muscle-groups/:id
func (h *CatalogHandler) UpdateMuscleGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	group, err := h.catalogService.UpdateMuscleGroup(id, &req)
	if err != nil {
		if err == service.ErrMuscleGroupNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "grupo muscular actualizado", group)
}

// DeleteMuscleGroup removes an empty muscle group.
// DELETE /api/v1/admin/muscle-groups/:id
func (h *CatalogHandler) DeleteMuscleGroup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMuscleGroup(id); err != nil {
		switch err {
		case service.ErrMuscleGroupNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrMuscleGroupInUse:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "grupo muscular eliminado", nil)
}

// ListExercises returns exercises, filtered by muscle group when given.
// GET /api/v1/exercises?muscle_group_id=
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	var groupID *int64
	if raw := c.Query("muscle_group_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.ParamError(c, "muscle_group_id inválido")
			return
		}
		groupID = &id
	}

	exercises, err := h.catalogService.ListExercises(groupID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, exercises)
}

// GetExercise returns one exercise.
// GET /api/v1/exercises/:id
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.catalogService.GetExercise(id)
	if err != nil {
		if err == service.ErrExerciseNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, exercise)
}

// CreateExercise adds an exercise to the catalog.
// POST /api/v1/admin/exercises
func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req dto.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	exercise, err := h.catalogService.CreateExercise(&req)
	if err != nil {
		if err == service.ErrMuscleGroupNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "ejercicio creado", exercise)
}

// UpdateExercise edits an exercise.
// PUT /api/v1/admin/exercises/:id
func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	exercise, err := h.catalogService.UpdateExercise(id, &req)
	if err != nil {
		switch err {
		case service.ErrExerciseNotFound, service.ErrMuscleGroupNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "ejercicio actualizado", exercise)
}

// DeleteExercise removes an exercise.
// DELETE /api/v1/admin/exercises/:id
func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteExercise(id); err != nil {
		if err == service.ErrExerciseNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "ejercicio eliminado", nil)
}

// ListRoutines returns every routine.
// GET /api/v1/routines
func (h *CatalogHandler) ListRoutines(c *gin.Context) {
	routines, err := h.catalogService.ListRoutines()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, routines)
}

// GetRoutine returns one routine with its sections and exercises.
// GET /api/v1/routines/:id
func (h *CatalogHandler) GetRoutine(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	routine, err := h.catalogService.GetRoutine(id)
	if err != nil {
		if err == service.ErrRoutineNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.Success(c, routine)
}

// CreateRoutine adds an empty routine.
// POST /api/v1/admin/routines
func (h *CatalogHandler) CreateRoutine(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=2,max=150"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	routine, err := h.catalogService.CreateRoutine(req.Name)
	if err != nil {
		if err == service.ErrRoutineNameExists {
			response.ConflictError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "rutina creada", routine)
}

// UpdateRoutineStatus toggles a routine between ACTIVO and INACTIVO.
// PUT /api/v1/admin/routines/:id/status
func (h *CatalogHandler) UpdateRoutineStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoutineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	routine, err := h.catalogService.UpdateRoutineStatus(id, req.Status)
	if err != nil {
		if err == service.ErrRoutineNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "rutina actualizada", routine)
}

// AddRoutineSection appends a muscle-group section to a routine.
// POST /api/v1/admin/routines/:id/sections
func (h *CatalogHandler) AddRoutineSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddRoutineSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	routine, err := h.catalogService.AddRoutineSection(id, &req)
	if err != nil {
		switch err {
		case service.ErrRoutineNotFound, service.ErrMuscleGroupNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrUnknownExercises:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "sección agregada", routine)
}

// RemoveRoutineSection drops a muscle-group section from a routine.
// DELETE /api/v1/admin/routines/:id/sections/:muscleGroupId
func (h *CatalogHandler) RemoveRoutineSection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseID(c, "muscleGroupId")
	if !ok {
		return
	}

	if err := h.catalogService.RemoveRoutineSection(id, groupID); err != nil {
		switch err {
		case service.ErrRoutineNotFound, service.ErrSectionNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "sección eliminada", nil)
}
