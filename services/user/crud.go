package user

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"voltport/models"
	"voltport/utils"
)

// GetUserByID fetches a user profile.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return user, nil
}

// UpdateUser applies the provided profile changes.
func (s *DefaultUserService) UpdateUser(userID string, req UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, fmt.Errorf("full name cannot be empty")
		}
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailPattern.MatchString(email) {
			return nil, fmt.Errorf("invalid email address")
		}
		if email != user.Email {
			existing, err := s.Repo.GetByEmail(email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if existing != nil {
				return nil, fmt.Errorf("a user with this email already exists")
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		if err := verifyPasswordComplexity(*req.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.GetLogger().Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to update password")
		}
		user.PasswordHash = string(hashed)
	}

	user.UpdatedAt = time.Now()
	if err := s.Repo.Update(user); err != nil {
		utils.GetLogger().Error("Failed to update user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.clearAuthCache(userID)
	return user, nil
}

// DeleteUser removes a user account and its cached session.
func (s *DefaultUserService) DeleteUser(userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}

	if err := s.Repo.Delete(userID); err != nil {
		utils.GetLogger().Error("Failed to delete user", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.clearAuthCache(userID)
	return nil
}
