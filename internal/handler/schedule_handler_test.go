package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type stubScheduler struct {
	day      *dto.DaySchedule
	rangeRes *dto.RangeSchedule
	err      error
}

func (s *stubScheduler) ForDate(ctx context.Context, date string) (*dto.DaySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.day, nil
}

func (s *stubScheduler) ForRange(ctx context.Context, date, endDate string) (*dto.RangeSchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rangeRes, nil
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func scheduleRouter(svc scheduleQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/classes", NewScheduleHandler(svc).List)
	return router
}

func TestScheduleHandlerSingleDate(t *testing.T) {
	router := scheduleRouter(&stubScheduler{day: &dto.DaySchedule{
		Date:         "2026-06-15",
		Classes:      []models.Slot{{ID: "2026-06-15-0700-group"}},
		TotalClasses: 1,
	}})

	req, _ := http.NewRequest(http.MethodGet, "/classes?date=2026-06-15", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var schedule dto.DaySchedule
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &schedule))
	assert.Equal(t, "2026-06-15", schedule.Date)
	assert.Equal(t, 1, schedule.TotalClasses)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
}

func TestScheduleHandlerRange(t *testing.T) {
	router := scheduleRouter(&stubScheduler{rangeRes: &dto.RangeSchedule{
		StartDate: "2026-06-15",
		EndDate:   "2026-06-17",
		TotalDays: 3,
	}})

	req, _ := http.NewRequest(http.MethodGet, "/classes?date=2026-06-15&endDate=2026-06-17", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var schedule dto.RangeSchedule
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &schedule))
	assert.Equal(t, 3, schedule.TotalDays)
}

func TestScheduleHandlerMissingDate(t *testing.T) {
	router := scheduleRouter(&stubScheduler{})

	req, _ := http.NewRequest(http.MethodGet, "/classes", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeError(t, recorder)
	assert.Equal(t, "MISSING_DATE", body.Code)
	assert.Equal(t, "Date parameter is required", body.Error)
}

func TestScheduleHandlerServiceError(t *testing.T) {
	router := scheduleRouter(&stubScheduler{err: appErrors.ErrRangeTooLarge})

	req, _ := http.NewRequest(http.MethodGet, "/classes?date=2026-06-15&endDate=2026-08-15", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "RANGE_TOO_LARGE", decodeError(t, recorder).Code)
}
