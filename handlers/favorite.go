package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voltport/services/favorite"
)

// FavoriteHandler serves saved-port endpoints.
type FavoriteHandler struct {
	Service favorite.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler instance.
func NewFavoriteHandler(svc favorite.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Service: svc}
}

// AddFavoriteHandler saves a port for the authenticated user.
func (h *FavoriteHandler) AddFavoriteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fav, err := h.Service.AddFavorite(userID, c.Param("portId"))
	if err != nil {
		logger.Warn("Failed to add favorite", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, fav)
}

// RemoveFavoriteHandler removes a saved port.
func (h *FavoriteHandler) RemoveFavoriteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	removed, err := h.Service.RemoveFavorite(userID, c.Param("portId"))
	if err != nil {
		logger.Error("Failed to remove favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

// CheckFavoriteHandler reports whether the authenticated user saved a port.
func (h *FavoriteHandler) CheckFavoriteHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	saved, err := h.Service.IsFavorite(userID, c.Param("portId"))
	if err != nil {
		logger.Error("Failed to check favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFavorite": saved})
}

// ListFavoritesHandler returns the authenticated user's saved ports.
func (h *FavoriteHandler) ListFavoritesHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	favs, err := h.Service.ListFavorites(userID)
	if err != nil {
		logger.Error("Failed to list favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}
