package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voltport/services/subscription"
)

// SubscriptionHandler serves subscription plan and quota endpoints.
type SubscriptionHandler struct {
	Service subscription.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler instance.
func NewSubscriptionHandler(svc subscription.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: svc}
}

type subscribeRequest struct {
	PlanID string `json:"planId" binding:"required"`
}

// ListPlansHandler returns the active subscription plans.
func (h *SubscriptionHandler) ListPlansHandler(c *gin.Context) {
	logger := getLogger(c)

	plans, err := h.Service.ListPlans()
	if err != nil {
		logger.Error("Failed to list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// CreatePlanHandler registers a new subscription plan. Admin only.
func (h *SubscriptionHandler) CreatePlanHandler(c *gin.Context) {
	logger := getLogger(c)

	var req subscription.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	plan, err := h.Service.CreatePlan(req)
	if err != nil {
		logger.Warn("Failed to create plan", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// SubscribeHandler puts the authenticated user on a plan.
func (h *SubscriptionHandler) SubscribeHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	view, err := h.Service.Subscribe(userID, req.PlanID)
	if err != nil {
		logger.Warn("Failed to subscribe", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// ListMySubscriptionsHandler returns the user's active subscriptions with usage.
func (h *SubscriptionHandler) ListMySubscriptionsHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.Service.ListUserSubscriptions(userID)
	if err != nil {
		logger.Error("Failed to list subscriptions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": views})
}

// CheckLimitHandler reports whether the user can still book under their plan.
func (h *SubscriptionHandler) CheckLimitHandler(c *gin.Context) {
	logger := getLogger(c)

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.Service.CheckLimit(userID)
	if err != nil {
		logger.Error("Failed to check limit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}
