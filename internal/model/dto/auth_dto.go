package dto

// RegisterRequest creates a client account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	Role  string    `json:"role"`
	User  *UserInfo `json:"user"`
}

// UserInfo is the user shape returned to the frontend.
type UserInfo struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Status          string   `json:"status"`
	ProfilePhotoURL string   `json:"profile_photo_url,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	ExerciseTime    *string  `json:"exercise_time,omitempty"`
	Membership      string   `json:"membership,omitempty"`
	MembershipID    *int64   `json:"membership_id,omitempty"`
	StreakCurrent   int      `json:"streak_current"`
	StreakLongest   int      `json:"streak_longest"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// UpdateProfileRequest updates the caller's own profile.
type UpdateProfileRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Email        *string  `json:"email,omitempty" binding:"omitempty,email"`
	Weight       *float64 `json:"weight,omitempty" binding:"omitempty,gt=0"`
	ExerciseTime *string  `json:"exercise_time,omitempty" binding:"omitempty,len=5"`
}

type RegisterDeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVO INACTIVO"`
}
