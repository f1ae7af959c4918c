package favorite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	favoriteRepo "voltport/database/repository/favorite"
	portRepo "voltport/database/repository/port"
	"voltport/models"
	"voltport/utils"
)

// FavoriteView is a favorite with its port attached.
type FavoriteView struct {
	models.Favorite
	Port *models.Port `json:"port"`
}

type FavoriteService interface {
	// AddFavorite saves a port for the user. Adding an already saved port is
	// a no-op and returns the existing record.
	AddFavorite(userID, portID string) (*models.Favorite, error)
	// RemoveFavorite unsaves a port; reports whether it was saved.
	RemoveFavorite(userID, portID string) (bool, error)
	// ListFavorites returns the user's saved ports, newest first.
	ListFavorites(userID string) ([]FavoriteView, error)
	// IsFavorite reports whether the user has saved the port.
	IsFavorite(userID, portID string) (bool, error)
}

// DefaultFavoriteService is the production implementation.
type DefaultFavoriteService struct {
	Repo     favoriteRepo.FavoriteRepository
	PortRepo portRepo.PortRepository
}

func (s *DefaultFavoriteService) AddFavorite(userID, portID string) (*models.Favorite, error) {
	logger := utils.GetLogger().With(zap.String("service", "favorite"))

	port, err := s.PortRepo.GetByID(portID)
	if err != nil {
		logger.Error("failed to fetch port", zap.String("portID", portID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	if port == nil {
		return nil, fmt.Errorf("port with id %s not found", portID)
	}

	existing, err := s.Repo.GetByUserAndPort(userID, portID)
	if err != nil {
		logger.Error("failed to fetch favorite", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch favorite: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	fav := &models.Favorite{
		ID:        uuid.New().String(),
		UserID:    userID,
		PortID:    portID,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(fav); err != nil {
		logger.Error("failed to create favorite", zap.Error(err))
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return fav, nil
}

func (s *DefaultFavoriteService) RemoveFavorite(userID, portID string) (bool, error) {
	removed, err := s.Repo.Delete(userID, portID)
	if err != nil {
		utils.GetLogger().Error("failed to remove favorite",
			zap.String("userID", userID), zap.String("portID", portID), zap.Error(err))
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return removed, nil
}

func (s *DefaultFavoriteService) IsFavorite(userID, portID string) (bool, error) {
	existing, err := s.Repo.GetByUserAndPort(userID, portID)
	if err != nil {
		utils.GetLogger().Error("failed to check favorite",
			zap.String("userID", userID), zap.String("portID", portID), zap.Error(err))
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return existing != nil, nil
}

func (s *DefaultFavoriteService) ListFavorites(userID string) ([]FavoriteView, error) {
	logger := utils.GetLogger().With(zap.String("service", "favorite"))

	favs, err := s.Repo.ListByUser(userID)
	if err != nil {
		logger.Error("failed to list favorites", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	views := make([]FavoriteView, 0, len(favs))
	for _, fav := range favs {
		port, err := s.PortRepo.GetByID(fav.PortID)
		if err != nil {
			logger.Error("failed to fetch port for favorite", zap.String("portID", fav.PortID), zap.Error(err))
			return nil, fmt.Errorf("failed to fetch port: %w", err)
		}
		views = append(views, FavoriteView{Favorite: fav, Port: port})
	}
	return views, nil
}
