package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voltport/services/booking"
	"voltport/services/port"
)

// PortHandler serves charging-port listing and management endpoints.
type PortHandler struct {
	Ports    port.PortService
	Bookings booking.BookingService
}

// NewPortHandler creates a new PortHandler instance.
func NewPortHandler(ports port.PortService, bookings booking.BookingService) *PortHandler {
	return &PortHandler{Ports: ports, Bookings: bookings}
}

// ListPortsHandler returns active ports, optionally filtered by ?city=.
func (h *PortHandler) ListPortsHandler(c *gin.Context) {
	logger := getLogger(c)

	ports, err := h.Ports.ListPorts(c.Query("city"))
	if err != nil {
		logger.Error("Failed to list ports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ports": ports})
}

// GetPortHandler returns a single port with its weekly schedule.
func (h *PortHandler) GetPortHandler(c *gin.Context) {
	logger := getLogger(c)

	p, err := h.Ports.GetPort(c.Param("id"))
	if err != nil {
		logger.Warn("Failed to fetch port", zap.String("portID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetPortSlotsHandler returns the port's hourly slot grid for the next 7 days.
func (h *PortHandler) GetPortSlotsHandler(c *gin.Context) {
	logger := getLogger(c)

	slots, err := h.Bookings.AvailableSlots(c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreatePortHandler registers a new port. Admin only.
func (h *PortHandler) CreatePortHandler(c *gin.Context) {
	logger := getLogger(c)

	var req port.CreatePortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Ports.CreatePort(req)
	if err != nil {
		logger.Warn("Failed to create port", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// UpdatePortHandler applies changes to an existing port. Admin only.
func (h *PortHandler) UpdatePortHandler(c *gin.Context) {
	logger := getLogger(c)

	var req port.UpdatePortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Ports.UpdatePort(c.Param("id"), req)
	if err != nil {
		logger.Warn("Failed to update port", zap.String("portID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePortHandler removes a port. Admin only.
func (h *PortHandler) DeletePortHandler(c *gin.Context) {
	logger := getLogger(c)

	if err := h.Ports.DeletePort(c.Param("id")); err != nil {
		logger.Warn("Failed to delete port", zap.String("portID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "port deleted"})
}
