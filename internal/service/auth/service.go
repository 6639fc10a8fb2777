package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service

	tx                database.Transactor
	emailService      email.EmailService
	primaryAdminEmail string
	maxAdmins         int
	defaultQuota      int
	now               func() time.Time
}

func NewAuthService(
	userRepository user.UserRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	tx database.Transactor,
	emailService email.EmailService,
	app config.AppConfig,
	policy config.PolicyConfig,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		tx:                 tx,
		emailService:       emailService,
		primaryAdminEmail:  strings.ToLower(strings.TrimSpace(app.PrimaryAdminEmail)),
		maxAdmins:          app.MaxAdmins,
		defaultQuota:       policy.EmployeeDefaultQuota,
		now:                time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	// Check user already exist or not
	_, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return user.UserResponse{}, user.ErrUserEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	role := user.Role(req.Role)
	if role == user.RoleAdmin {
		admins, err := a.UserRepository.CountByRole(ctx, user.RoleAdmin)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to count admins: %w", err)
		}
		if admins >= a.maxAdmins {
			return user.UserResponse{}, auth.ErrMaxAdminsReached
		}
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = a.UserRepository.Create(txCtx, user.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PasswordHash: hashedPassword,
			Role:         role,
		})
		if err != nil {
			return err
		}

		if !role.HasEmployeeRecord() {
			return nil
		}

		joined := a.now()
		emp, err := a.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:        &created.ID,
			Name:          created.Name,
			Role:          role.Label(),
			Email:         created.Email,
			Status:        employee.EmploymentStatusActive,
			DateOfJoining: &joined,
			LeaveQuota:    a.defaultQuota,
			RemainingDays: a.defaultQuota,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee for user: %w", err)
		}
		created.EmployeeID = &emp.ID
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user registered", "user_id", created.ID, "role", created.Role)
	return user.NewUserResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if userData.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(googleEmail)))
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return a.issueToken(userData)
}

func (a *AuthServiceImpl) issueToken(userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.User = user.NewUserResponse(userData)

	return tokenResponse, nil
}

// AdminCount implements auth.AuthService.
func (a *AuthServiceImpl) AdminCount(ctx context.Context) (auth.AdminCountResponse, error) {
	count, err := a.UserRepository.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return auth.AdminCountResponse{}, fmt.Errorf("failed to count admins: %w", err)
	}
	return auth.AdminCountResponse{Count: count}, nil
}

// AdminChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) AdminChangePassword(ctx context.Context, req auth.AdminChangePasswordRequest) (auth.ChangePasswordResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.ChangePasswordResponse{}, err
	}

	// Without a configured primary admin any admin may reset passwords.
	if a.primaryAdminEmail != "" && !strings.EqualFold(req.AdminEmail, a.primaryAdminEmail) {
		return auth.ChangePasswordResponse{}, auth.ErrNotPrimaryAdmin
	}

	target, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.ChangePasswordResponse{}, err
	}

	hashedPassword, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return auth.ChangePasswordResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.UserRepository.UpdatePassword(ctx, target.ID, hashedPassword); err != nil {
		return auth.ChangePasswordResponse{}, fmt.Errorf("failed to update password: %w", err)
	}
	slog.Info("password changed by admin", "user_id", target.ID, "admin", req.AdminEmail)

	resp := auth.ChangePasswordResponse{Email: target.Email, NotificationSent: true}
	err = a.emailService.SendPasswordChanged(ctx, target.Email, email.PasswordChangedData{
		UserEmail: target.Email,
		Role:      target.Role.Label(),
		ChangedAt: a.now(),
	})
	if err != nil {
		slog.Error("failed to send password change notification", "user_id", target.ID, "error", err)
		resp.NotificationSent = false
	}

	return resp, nil
}
