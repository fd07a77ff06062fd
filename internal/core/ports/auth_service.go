package ports

import (
	"context"

	"github.com/hragentic/hr-gateway/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Role is not
// settable from the outside; every new account starts as an employee.
type RegisterInput struct {
	EmployeeID string
	Name       string
	Email      string
	Password   string
	Department string
	Position   string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Validate(token string) (*domain.Claims, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}
