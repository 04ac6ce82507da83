package user

import "github.com/kyomei/core/internal/models"

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32,alphanum"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name"     binding:"max=50"`
	Mail     string `json:"mail"     binding:"omitempty,email"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeRequest edits the caller's own profile. Nil fields are left
// untouched.
type UpdateMeRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=50"`
	Mail     *string `json:"mail"     binding:"omitempty,email"`
	Avatar   *string `json:"avatar"   binding:"omitempty,url"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// LoginResult is the token plus the authenticated user.
type LoginResult struct {
	Token string           `json:"token"`
	User  models.UserModel `json:"user"`
}

// MeStats summarizes the caller's activity.
type MeStats struct {
	Topics        int64 `json:"topics"`
	Answers       int64 `json:"answers"`
	LikesReceived int64 `json:"likesReceived"`
}

// MeView is the caller's profile plus activity stats.
type MeView struct {
	models.UserModel
	Stats MeStats `json:"stats"`
}
