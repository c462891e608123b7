package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type scheduleQuerier interface {
	ForDate(ctx context.Context, date string) (*dto.DaySchedule, error)
	ForRange(ctx context.Context, date, endDate string) (*dto.RangeSchedule, error)
}

// ScheduleHandler exposes the public class listing endpoints.
type ScheduleHandler struct {
	schedules scheduleQuerier
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(schedules scheduleQuerier) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// List godoc
// @Summary List classes for a date or date range
// @Tags Classes
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param endDate query string false "End date for range queries (YYYY-MM-DD)"
// @Success 200 {object} dto.DaySchedule
// @Failure 400 {object} response.ErrorBody
// @Router /classes [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.ErrMissingDate)
		return
	}

	if endDate := c.Query("endDate"); endDate != "" {
		schedule, err := h.schedules.ForRange(c.Request.Context(), date, endDate)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, schedule)
		return
	}

	schedule, err := h.schedules.ForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}
