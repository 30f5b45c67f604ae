package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ciba/services/newsletter"
	"ciba/utils"
)

// NewsletterHandler serves subscription and broadcast endpoints.
type NewsletterHandler struct {
	Service    newsletter.NewsletterService
	AdminToken string
	Logger     *zap.Logger
}

// NewNewsletterHandler constructs a NewsletterHandler.
func NewNewsletterHandler(svc newsletter.NewsletterService, adminToken string, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{Service: svc, AdminToken: adminToken, Logger: logger}
}

// SubscribeHandler records a newsletter subscription.
func (h *NewsletterHandler) SubscribeHandler(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.Subscribe(c.Request.Context(), input.Email); err != nil {
		if errors.Is(err, newsletter.ErrInvalidEmail) {
			utils.JSONError(c, http.StatusBadRequest, "invalid email", err.Error())
			return
		}
		// Anything else is the store failing, not the caller's input.
		utils.JSONError(c, http.StatusServiceUnavailable, "subscription failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}

// BroadcastHandler kicks off a newsletter send. The walk over subscribers
// runs in the background; the caller gets an immediate 202.
func (h *NewsletterHandler) BroadcastHandler(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if h.AdminToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.AdminToken)) != 1 {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid admin token")
		return
	}

	var input struct {
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Subject == "" || input.HTML == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "subject and html are required")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := h.Service.Broadcast(ctx, input.Subject, input.HTML); err != nil {
			h.Logger.Error("newsletter broadcast failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "broadcast started"})
}
