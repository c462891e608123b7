package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

type stubBookingCreator struct {
	result *dto.BookingResponse
	err    error
	got    *dto.CreateBookingRequest
}

func (s *stubBookingCreator) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func bookingRouter(svc bookingCreator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/book", NewBookingHandler(svc).Create)
	return router
}

func TestBookingHandlerCreated(t *testing.T) {
	stub := &stubBookingCreator{result: &dto.BookingResponse{
		Success:    true,
		Booking:    dto.BookingDetails{ID: "TU-20260615-A3B7C"},
		PaymentURL: "https://checkout.wompi.co/l/abc",
	}}
	router := bookingRouter(stub)

	payload := `{"classId":"2026-06-15-0700-group","customerName":"Sarah Johnson","email":"sarah@example.com","whatsapp":"+573001234567","experienceLevel":"intermediate"}`
	req, _ := http.NewRequest(http.MethodPost, "/book", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var result dto.BookingResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "TU-20260615-A3B7C", result.Booking.ID)

	require.NotNil(t, stub.got)
	assert.Equal(t, "2026-06-15-0700-group", stub.got.ClassID)
}

func TestBookingHandlerInvalidJSON(t *testing.T) {
	router := bookingRouter(&stubBookingCreator{})

	req, _ := http.NewRequest(http.MethodPost, "/book", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, recorder).Code)
}

func TestBookingHandlerServiceError(t *testing.T) {
	router := bookingRouter(&stubBookingCreator{err: appErrors.Clone(appErrors.ErrBookingNotAllowed, "This class is fully booked")})

	payload := `{"classId":"2026-06-15-0700-group","customerName":"Sarah Johnson","email":"sarah@example.com","whatsapp":"+573001234567","experienceLevel":"intermediate"}`
	req, _ := http.NewRequest(http.MethodPost, "/book", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeError(t, recorder)
	assert.Equal(t, "BOOKING_NOT_ALLOWED", body.Code)
	assert.Equal(t, "This class is fully booked", body.Error)
}
