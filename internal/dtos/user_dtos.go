package dtos

import "github.com/avibn/lanten-sub001/internal/models"

// ----------------------
// Requests
// ----------------------

type SignUpRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,password"`
	UserType models.UserType `json:"userType" validate:"required,oneof=LANDLORD TENANT"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ----------------------
// Responses
// ----------------------

type AuthenticatedUser struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"userType"`
}

func NewAuthenticatedUser(u *models.User) AuthenticatedUser {
	return AuthenticatedUser{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}
}
