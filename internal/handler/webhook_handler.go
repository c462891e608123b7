package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type webhookProcessor interface {
	Process(ctx context.Context, event *dto.WompiEvent) *dto.WebhookAck
}

// WebhookHandler receives payment provider events. Every request is answered
// with HTTP 200 so the provider does not retry events that can never
// succeed; the ack body carries the real outcome.
type WebhookHandler struct {
	webhooks webhookProcessor
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(webhooks webhookProcessor) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// Receive godoc
// @Summary Receive a payment provider event
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param payload body dto.WompiEvent true "Provider event"
// @Success 200 {object} dto.WebhookAck
// @Router /webhooks/wompi [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	var event dto.WompiEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.JSON(c, http.StatusOK, dto.WebhookAck{Success: false, Message: "invalid payload"})
		return
	}

	ack := h.webhooks.Process(c.Request.Context(), &event)
	response.JSON(c, http.StatusOK, ack)
}

// Probe godoc
// @Summary Webhook endpoint liveness probe
// @Tags Webhooks
// @Produce json
// @Success 200 {object} map[string]string
// @Router /webhooks/wompi [get]
func (h *WebhookHandler) Probe(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"status": "Webhook endpoint active"})
}
