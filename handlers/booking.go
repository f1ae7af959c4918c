package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voltport/services/booking"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type createBookingRequest struct {
	PortID        string    `json:"portId" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
	PaymentMethod string    `json:"paymentMethod"`
}

type payBookingRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CreateBookingHandler admits a new booking for the authenticated user.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	bk, err := h.Service.CreateBooking(userID, booking.CreateBookingRequest{
		PortID:        req.PortID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, bk)
}

// ListMyBookingsHandler returns the authenticated user's bookings.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.Service.ListUserBookings(userID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// PayBookingHandler settles a pending booking.
func (h *BookingHandler) PayBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Payment method is optional; an empty body defaults to card.
	var req payBookingRequest
	_ = c.ShouldBindJSON(&req)

	bk, err := h.Service.ProcessPayment(userID, c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, bk)
}

// CancelBookingHandler cancels a booking; paid bookings are refunded.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	refunded, err := h.Service.CancelBooking(userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	if refunded {
		c.JSON(http.StatusOK, gin.H{"message": "booking cancelled and refunded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
