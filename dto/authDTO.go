package dto

import "taskflow/model"

type SignupRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken"`
	CaptchaToken     string `json:"captchaToken"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     Optional[string] `json:"name"`
	Email    Optional[string] `json:"email"`
	Password Optional[string] `json:"password"`
}

// AuthResponse is returned by register, login and profile update.
type AuthResponse struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            model.Role `json:"role"`
	ProfileImageURL string     `json:"profileImageUrl"`
	Token           string     `json:"token"`
}

func NewAuthResponse(u *model.User, token string) AuthResponse {
	return AuthResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		Token:           token,
	}
}
