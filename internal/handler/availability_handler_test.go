package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/dto"
)

type stubAvailability struct {
	result *dto.AvailabilityResponse
	err    error
	got    string
}

func (s *stubAvailability) CheckAvailability(ctx context.Context, classID string) (*dto.AvailabilityResponse, error) {
	s.got = classID
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func availabilityRouter(svc availabilityChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/availability", NewAvailabilityHandler(svc).Check)
	return router
}

func TestAvailabilityHandlerOK(t *testing.T) {
	stub := &stubAvailability{result: &dto.AvailabilityResponse{
		Available:      true,
		SpotsRemaining: 5,
		CanBook:        true,
		ClassDetails:   dto.ClassDetails{Name: "Morning Vinyasa Flow"},
	}}
	router := availabilityRouter(stub)

	req, _ := http.NewRequest(http.MethodGet, "/availability?classId=2026-06-15-0700-group", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var result dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.Available)
	assert.Equal(t, 5, result.SpotsRemaining)
	assert.Equal(t, "2026-06-15-0700-group", stub.got)
}

func TestAvailabilityHandlerMissingClassID(t *testing.T) {
	router := availabilityRouter(&stubAvailability{})

	req, _ := http.NewRequest(http.MethodGet, "/availability", nil)
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_CLASS_ID", decodeError(t, recorder).Code)
}
