package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"voltport/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"voltport/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrAdminRequired is returned when valid credentials belong to an account
// without the admin flag.
var ErrAdminRequired = errors.New("admin access required")

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, and one digit.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}

// RegisterUser creates a new user and returns a fresh auth token.
func (s *DefaultUserService) RegisterUser(req SignupRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(&user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.AuthTokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:       user.ID,
		Token:    token,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// AuthenticateUser verifies credentials and returns a fresh auth token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	return s.authenticate(email, password, false)
}

// AuthenticateAdmin verifies credentials and requires the admin flag.
func (s *DefaultUserService) AuthenticateAdmin(email, password string) (*AuthResponse, error) {
	return s.authenticate(email, password, true)
}

func (s *DefaultUserService) authenticate(email, password string, requireAdmin bool) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if requireAdmin && !user.IsAdmin {
		return nil, ErrAdminRequired
	}

	token, err := utils.GenerateToken(user.ID, user.Email, utils.AuthTokenDuration)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	// Clear any stale cached session for this user.
	s.clearAuthCache(user.ID)

	return &AuthResponse{
		ID:       user.ID,
		Token:    token,
		FullName: user.FullName,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}, nil
}

// RevokeUserAuthToken removes the cached session so the next request
// re-validates against the database.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to retrieve user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	s.clearAuthCache(userID)
	return nil
}

func (s *DefaultUserService) clearAuthCache(userID string) {
	cacheKey := utils.AuthCachePrefix + userID
	authCache := utils.GetAuthCacheClient()
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}
