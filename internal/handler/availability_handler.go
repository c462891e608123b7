package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type availabilityChecker interface {
	CheckAvailability(ctx context.Context, classID string) (*dto.AvailabilityResponse, error)
}

// AvailabilityHandler answers per-slot availability queries.
type AvailabilityHandler struct {
	bookings availabilityChecker
}

// NewAvailabilityHandler constructs AvailabilityHandler.
func NewAvailabilityHandler(bookings availabilityChecker) *AvailabilityHandler {
	return &AvailabilityHandler{bookings: bookings}
}

// Check godoc
// @Summary Check availability of one class slot
// @Tags Classes
// @Produce json
// @Param classId query string true "Class slot id (YYYY-MM-DD-HHMM-type)"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	classID := c.Query("classId")
	if classID == "" {
		response.Error(c, appErrors.ErrMissingClassID)
		return
	}

	availability, err := h.bookings.CheckAvailability(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability)
}
