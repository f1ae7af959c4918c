package user

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"voltport/models"
	"voltport/utils"
)

// GetAllUsers returns every user with their booking, favorite, and
// subscription counts attached for the admin console.
func (s *DefaultUserService) GetAllUsers() ([]models.AdminUserView, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]models.AdminUserView, 0, len(users))
	for _, u := range users {
		view := models.AdminUserView{User: u}

		if view.BookingsCount, err = s.BookingRepo.CountByUser(u.ID); err != nil {
			utils.GetLogger().Error("Failed to count bookings", zap.String("userID", u.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to count bookings: %w", err)
		}
		if view.FavoritesCount, err = s.FavoriteRepo.CountByUser(u.ID); err != nil {
			utils.GetLogger().Error("Failed to count favorites", zap.String("userID", u.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to count favorites: %w", err)
		}
		if view.SubscriptionsCount, err = s.SubscriptionRepo.CountActiveByUser(u.ID); err != nil {
			utils.GetLogger().Error("Failed to count subscriptions", zap.String("userID", u.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to count subscriptions: %w", err)
		}

		views = append(views, view)
	}
	return views, nil
}

// UpdateUserAdmin applies profile changes to any account, including the
// admin flag. Revokes the user's cached session when the flag changes.
func (s *DefaultUserService) UpdateUserAdmin(userID string, req AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.UpdateUser(userID, req.UpdateUserRequest)
	if err != nil {
		return nil, err
	}

	if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
		user.IsAdmin = *req.IsAdmin
		user.UpdatedAt = time.Now()
		if err := s.Repo.Update(user); err != nil {
			utils.GetLogger().Error("Failed to update admin flag", zap.String("userID", userID), zap.Error(err))
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		s.clearAuthCache(userID)
	}
	return user, nil
}
