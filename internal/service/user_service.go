package service

import (
	"context"
	"fmt"
	"time"

	"github.com/trinitynoble/BudgetBuddyProject/internal/apperr"
	"github.com/trinitynoble/BudgetBuddyProject/internal/auth"
	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
	usermodel "github.com/trinitynoble/BudgetBuddyProject/internal/models/user"
	"github.com/trinitynoble/BudgetBuddyProject/internal/storage"
	"github.com/trinitynoble/BudgetBuddyProject/internal/validation"
)

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// LoginRequest carries the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest carries the forgot-password payload.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *usermodel.User `json:"user"`
}

// UserService owns account lifecycle: signup, login, password reset and
// token validation.
type UserService struct {
	users      storage.UserStore
	tokens     *auth.JWTManager
	bcryptCost int
	log        *logger.Logger
}

func NewUserService(users storage.UserStore, tokens *auth.JWTManager, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        logger.New("user-service"),
	}
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
}

// Register creates a new account. It does not issue a token; clients
// log in separately.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*usermodel.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return nil, invalid(validation.ErrFieldRequired)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePhone(req.Phone); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("register: lookup failed: %v", err)
		return nil, apperr.ErrStorage
	}
	if existing != nil {
		return nil, apperr.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.log.Error("register: hash failed: %v", err)
		return nil, apperr.ErrStorage
	}

	created, err := s.users.Create(ctx, &usermodel.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}, hash)
	if err != nil {
		// The pre-check races with concurrent signups; the unique
		// index is the authority.
		if err == storage.ErrDuplicateEmail {
			return nil, apperr.ErrEmailTaken
		}
		s.log.Error("register: create failed: %v", err)
		return nil, apperr.ErrStorage
	}

	s.log.Info("registered user %s", created.ID)
	return created, nil
}

// Login verifies credentials and issues a signed token. Unknown email
// and wrong password fail identically.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalid(validation.ErrFieldRequired)
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("login: lookup failed: %v", err)
		return nil, apperr.ErrStorage
	}
	if u == nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(u.ID, u.Email, u.TokenVersion)
	if err != nil {
		s.log.Error("login: token generation failed: %v", err)
		return nil, apperr.ErrStorage
	}

	u.PasswordHash = ""
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// ValidateToken checks a bearer token and returns the caller's identity.
// Tokens minted before the user's last password reset are rejected.
func (s *UserService) ValidateToken(ctx context.Context, tokenString string) (*auth.Identity, error) {
	if tokenString == "" {
		return nil, apperr.ErrMissingToken
	}

	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		s.log.Error("validate: lookup failed: %v", err)
		return nil, apperr.ErrStorage
	}
	if u == nil || u.TokenVersion != claims.TokenVersion {
		return nil, apperr.ErrInvalidToken
	}

	return &auth.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// ResetPassword replaces the password for a known email and revokes
// outstanding tokens by bumping the user's token version.
func (s *UserService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if req.Email == "" || req.NewPassword == "" {
		return invalid(validation.ErrFieldRequired)
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return invalid(err)
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		s.log.Error("reset: hash failed: %v", err)
		return apperr.ErrStorage
	}

	updated, err := s.users.UpdatePassword(ctx, req.Email, hash)
	if err != nil {
		s.log.Error("reset: update failed: %v", err)
		return apperr.ErrStorage
	}
	if !updated {
		return apperr.ErrNotFound
	}

	s.log.Info("password reset for %s", req.Email)
	return nil
}

// Profile returns the authenticated user's account without the
// password hash.
func (s *UserService) Profile(ctx context.Context, userID string) (*usermodel.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Error("profile: lookup failed: %v", err)
		return nil, apperr.ErrStorage
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}

	u.PasswordHash = ""
	return u, nil
}
