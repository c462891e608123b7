package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type bookingCreator interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
}

// BookingHandler exposes the public booking endpoint.
type BookingHandler struct {
	bookings bookingCreator
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(bookings bookingCreator) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create godoc
// @Summary Book a class slot
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /book [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrInvalidJSON)
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}
