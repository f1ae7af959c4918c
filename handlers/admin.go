package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voltport/services/admin"
	"voltport/services/user"
)

// AdminHandler serves the admin console endpoints.
type AdminHandler struct {
	Users user.UserService
	Admin admin.AdminService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(users user.UserService, adminSvc admin.AdminService) *AdminHandler {
	return &AdminHandler{Users: users, Admin: adminSvc}
}

// GetAllUsersHandler lists every user with activity counts.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	logger := getLogger(c)

	users, err := h.Users.GetAllUsers()
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserHandler applies admin edits to an account, including the
// admin flag.
func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req user.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	updated, err := h.Users.UpdateUserAdmin(c.Param("id"), req)
	if err != nil {
		logger.Warn("Failed to update user", zap.String("userID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetAllBookingsHandler lists every booking with user and port joined.
func (h *AdminHandler) GetAllBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	bookings, err := h.Admin.ListAllBookings()
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetStatsHandler returns the dashboard summary.
func (h *AdminHandler) GetStatsHandler(c *gin.Context) {
	logger := getLogger(c)

	stats, err := h.Admin.GetStats()
	if err != nil {
		logger.Error("Failed to compute stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
