package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/api/middleware"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	cfg         *config.Config
}

func NewUserHandler(userService *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		userService: userService,
		cfg:         cfg,
	}
}

// GetProfile returns the caller's profile.
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, profile)
}

// UpdateProfile updates the caller's profile.
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		switch err {
		case service.ErrEmailExists:
			response.ConflictError(c, err.Error())
		case service.ErrUserNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "perfil actualizado", profile)
}

// UploadPhoto stores a new profile photo.
// POST /api/v1/user/photo
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "selecciona un archivo")
		return
	}

	maxMB := h.cfg.Upload.MaxPhotoSizeMB
	if maxMB <= 0 {
		maxMB = 5
	}
	if file.Size > int64(maxMB)*1024*1024 {
		response.ParamError(c, "el archivo supera el tamaño máximo")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		response.ParamError(c, "solo se aceptan imágenes jpg/png/webp")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.ServerError(c, "no se pudo leer el archivo")
		return
	}
	defer f.Close()

	photoURL, err := h.userService.UploadProfilePhoto(userID, f, file.Filename)
	if err != nil {
		response.ServerError(c, "no se pudo subir la foto")
		return
	}

	response.SuccessWithMessage(c, "foto actualizada", gin.H{
		"profile_photo_url": photoURL,
	})
}

// RegisterDeviceToken saves an FCM registration token for push delivery.
// POST /api/v1/user/device-token
func (h *UserHandler) RegisterDeviceToken(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.userService.RegisterDeviceToken(userID, req.Token); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "token registrado", nil)
}

// ListClients returns all client accounts.
// GET /api/v1/admin/clients
func (h *UserHandler) ListClients(c *gin.Context) {
	clients, err := h.userService.ListClients()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, clients)
}

// UpdateStatus activates or deactivates an account.
// PUT /api/v1/admin/users/:id/status
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.userService.UpdateStatus(id, req.Status); err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "estado actualizado", nil)
}

// Delete removes an account permanently.
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "id inválido")
		return
	}

	if err := h.userService.Delete(id); err != nil {
		if err == service.ErrUserNotFound {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "usuario eliminado", nil)
}
