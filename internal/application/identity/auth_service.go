package identity

import (
	"context"
	"strings"

	"github.com/libris/backend/internal/domain/identity"
	"github.com/libris/backend/internal/domain/shared"
	"github.com/libris/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo       identity.UserRepository
	sessionService *auth.SessionService
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	sessionService *auth.SessionService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		sessionService: sessionService,
		logger:         logger,
	}
}

// Register creates a new user account. Checks run in a fixed order so
// the first failure determines the message the user sees.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	username := strings.TrimSpace(input.Username)

	if username == "" {
		return nil, shared.NewDomainError("MISSING_USERNAME", "Please provide a username")
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if taken {
		s.logger.Warn("Registration attempt with taken username", zap.String("username", username))
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	if input.Password == "" {
		return nil, shared.NewDomainError("MISSING_PASSWORD", "Please provide a password")
	}
	if input.Confirmation == "" {
		return nil, shared.NewDomainError("MISSING_CONFIRMATION", "Please confirm your password")
	}
	if input.Password != input.Confirmation {
		return nil, shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match")
	}

	user, err := identity.NewUser(username, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == shared.ErrAlreadyExists {
			// Lost a race with a concurrent registration
			return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &UserInfo{ID: user.ID, Username: user.Username}, nil
}

// Login authenticates a user and issues a session token. Unknown
// usernames and wrong passwords produce the identical error so the
// response does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)

	if username == "" {
		return nil, shared.NewDomainError("MISSING_USERNAME", "Please provide a username")
	}
	if input.Password == "" {
		return nil, shared.NewDomainError("MISSING_PASSWORD", "Please provide a password")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err != shared.ErrNotFound {
			s.logger.Error("Failed to look up user during login", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to log in")
		}
		s.logger.Warn("Login attempt for unknown user", zap.String("username", username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	token, err := s.sessionService.Issue(user.ID, user.Username)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to log in")
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		User:         UserInfo{ID: user.ID, Username: user.Username},
		SessionToken: token,
	}, nil
}
