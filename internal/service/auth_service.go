package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/soleofit/soleo_go_server/config"
	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/jwt"
	"github.com/soleofit/soleo_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("el correo ya está registrado")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrUserInactive       = errors.New("la cuenta está inactiva")
	ErrUserNotFound       = errors.New("usuario no encontrado")
)

type AuthService struct {
	userRepo          *repository.UserRepository
	membershipService *MembershipService
	cfg               *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, membershipService *MembershipService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		membershipService: membershipService,
		cfg:               cfg,
	}
}

// Register creates a client account and puts it on the trial plan. Trial
// bootstrap is best effort: a missing trial plan is logged, not returned,
// so registration never fails because of seeding problems.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleClient,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if _, err := s.membershipService.AssignDefault(user.ID); err != nil {
		log.Printf("auth: trial bootstrap failed for user %d: %v", user.ID, err)
	}

	return s.buildLoginResponse(user.ID)
}

// RegisterAdmin creates an admin account. Admins never hold memberships.
func (s *AuthService) RegisterAdmin(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.buildLoginResponse(user.ID)
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Status != model.UserStatusActive {
		return nil, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  buildUserInfo(user),
	}, nil
}

func (s *AuthService) buildLoginResponse(userID int64) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByIDWithPlan(userID)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  buildUserInfo(user),
	}, nil
}

// buildUserInfo flattens a user row into the API shape.
func buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		Status:          user.Status,
		ProfilePhotoURL: user.ProfilePhotoURL,
		Weight:          user.Weight,
		ExerciseTime:    user.ExerciseTime,
		StreakCurrent:   user.StreakCurrent,
		StreakLongest:   user.StreakLongest,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
	if user.CurrentPlan != nil {
		info.Membership = user.CurrentPlan.Name
		planID := user.CurrentPlan.ID
		info.MembershipID = &planID
	}
	return info
}
