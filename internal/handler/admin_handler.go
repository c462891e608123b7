package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/models"
	"github.com/tu-wellness/booking-api/internal/service"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type bookingAdmin interface {
	ListByClass(ctx context.Context, classID string) ([]models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
}

type rosterExporter interface {
	ClassRoster(ctx context.Context, classID, format string) (*service.ExportResult, error)
}

// AdminHandler exposes the operator endpoints: roster queries, cancellation
// and roster export. All routes sit behind JWT.
type AdminHandler struct {
	bookings bookingAdmin
	exports  rosterExporter
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(bookings bookingAdmin, exports rosterExporter) *AdminHandler {
	return &AdminHandler{bookings: bookings, exports: exports}
}

// ListBookings godoc
// @Summary List bookings by class or customer email
// @Tags Admin
// @Produce json
// @Param classId query string false "Class slot id"
// @Param email query string false "Customer email"
// @Success 200 {array} models.Booking
// @Failure 400 {object} response.ErrorBody
// @Security BearerAuth
// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	classID := c.Query("classId")
	email := c.Query("email")

	switch {
	case classID != "":
		bookings, err := h.bookings.ListByClass(c.Request.Context(), classID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, bookings)
	case email != "":
		bookings, err := h.bookings.ListByEmail(c.Request.Context(), email)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, bookings)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "classId or email query parameter is required"))
	}
}

// CancelBooking godoc
// @Summary Cancel a booking and free its spot
// @Tags Admin
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} models.Booking
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /admin/bookings/{id} [delete]
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking)
}

// ExportRoster godoc
// @Summary Export a class roster as CSV or PDF
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param classId path string true "Class slot id"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Security BearerAuth
// @Router /admin/classes/{classId}/export [get]
func (h *AdminHandler) ExportRoster(c *gin.Context) {
	result, err := h.exports.ClassRoster(c.Request.Context(), c.Param("classId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
