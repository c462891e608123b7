package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type paymentLinkCreator interface {
	CreateLinkForRequest(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentLinkResponse, error)
}

// PaymentHandler exposes the payment link endpoint.
type PaymentHandler struct {
	payments paymentLinkCreator
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments paymentLinkCreator) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateLink godoc
// @Summary Create a hosted payment link
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.CreatePaymentRequest true "Payment payload"
// @Success 200 {object} dto.PaymentLinkResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /payments [post]
func (h *PaymentHandler) CreateLink(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrInvalidJSON)
		return
	}

	link, err := h.payments.CreateLinkForRequest(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link)
}
