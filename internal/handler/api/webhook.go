package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rinkbook/internal/pkg/config"
	"rinkbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const webhookTolerance = 5 * time.Minute

// WebhookHandler receives Stripe events. No JWT auth on this route; the
// signature verification is the auth.
type WebhookHandler struct {
	paymentCommands commands.PaymentCommands
	cfg             config.StripeConfig
}

func NewWebhookHandler(paymentCommands commands.PaymentCommands, cfg config.StripeConfig) *WebhookHandler {
	return &WebhookHandler{
		paymentCommands: paymentCommands,
		cfg:             cfg,
	}
}

func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	if strings.TrimSpace(h.cfg.WebhookSecret) == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Stripe webhook not configured",
		})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing Stripe-Signature header",
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20)) // 1 MiB hard cap
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.cfg.WebhookSecret, webhookTolerance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid signature",
		})
		return
	}

	slog.Info("payment provider event received",
		"provider", "stripe",
		"provider_event_id", evt.ID,
		"event_type", string(evt.Type),
	)

	if evt.Type == "payment_intent.succeeded" {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
			slog.Error("stripe: invalid payment intent payload", "error", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payload",
			})
			return
		}

		if err := h.paymentCommands.HandlePaymentSucceeded(c.Request.Context(), intent.ID, intent.Amount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to record payment",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
