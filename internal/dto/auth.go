package dto

import (
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// LoginRequest defines the credentials for any role.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the user data returned to the frontend.
type UserResponse struct {
	UserID   string      `json:"userID"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

// LoginResponse is returned next to the session cookie.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
