package handler

import "github.com/hragentic/hr-gateway/internal/core/domain"

type registerRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=6"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
