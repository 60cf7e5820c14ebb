package ports

import (
	"context"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

// RegisterInput carries self-service registration data. Role is optional and
// limited to the non-privileged roles; empty means client.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token. Banned users
	// are rejected regardless of credential validity.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
