package service

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/oss"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var ErrStorageNotConfigured = errors.New("almacenamiento de archivos no configurado")

type UserService struct {
	userRepo        *repository.UserRepository
	deviceTokenRepo *repository.DeviceTokenRepository
	ossClient       *oss.Client
	cfg             *config.Config
}

func NewUserService(
	userRepo *repository.UserRepository,
	deviceTokenRepo *repository.DeviceTokenRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		deviceTokenRepo: deviceTokenRepo,
		ossClient:       ossClient,
		cfg:             cfg,
	}
}

// GetProfile returns the caller's own profile.
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByIDWithPlan(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return buildUserInfo(user), nil
}

// UpdateProfile applies the fields present in the request.
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByIDWithPlan(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			exists, err := s.userRepo.ExistsByEmail(email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailExists
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Weight != nil {
		user.Weight = req.Weight
	}
	if req.ExerciseTime != nil {
		user.ExerciseTime = req.ExerciseTime
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return buildUserInfo(user), nil
}

// UploadProfilePhoto stores the photo in OSS, replaces the user's URL and
// removes the previous object.
func (s *UserService) UploadProfilePhoto(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", ErrStorageNotConfigured
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	photoURL, err := s.ossClient.UploadProfilePhoto(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"profile_photo_url": photoURL,
	}); err != nil {
		return "", err
	}

	if user.ProfilePhotoURL != "" {
		// Old photo removal is best effort.
		_ = s.ossClient.Delete(s.ossClient.ExtractObjectKey(user.ProfilePhotoURL))
	}

	return photoURL, nil
}

// UpdateStatus activates or deactivates an account.
func (s *UserService) UpdateStatus(userID int64, status string) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.UpdateFields(userID, map[string]interface{}{
		"status": status,
	})
}

// Delete removes the account and its device tokens. History and payments
// stay, they are the audit trail.
func (s *UserService) Delete(userID int64) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.deviceTokenRepo.DeleteByUser(userID); err != nil {
		return err
	}
	return s.userRepo.Delete(userID)
}

// RegisterDeviceToken saves an FCM registration token. Re-registering the
// same token is a no-op.
func (s *UserService) RegisterDeviceToken(userID int64, token string) error {
	return s.deviceTokenRepo.Save(userID, token)
}

// ListClients returns every client account for the admin panel.
func (s *UserService) ListClients() ([]*dto.UserInfo, error) {
	users, err := s.userRepo.ListClients()
	if err != nil {
		return nil, err
	}

	infos := make([]*dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, buildUserInfo(&users[i]))
	}
	return infos, nil
}
