package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

type AuthService interface {
	// Register creates the user and, for user and supervisor roles, its employee record.
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// LoginWithGoogle issues a token for the existing user with a verified Google email.
	LoginWithGoogle(ctx context.Context, email string) (TokenResponse, error)
	AdminCount(ctx context.Context) (AdminCountResponse, error)
	// AdminChangePassword sets another user's password. A failed notification is reported,
	// not rolled back.
	AdminChangePassword(ctx context.Context, req AdminChangePasswordRequest) (ChangePasswordResponse, error)
}
