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

type stubLoginService struct {
	result *dto.LoginResponse
	err    error
}

func (s *stubLoginService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func authRouter(svc loginService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", NewAuthHandler(svc).Login)
	return router
}

func TestAuthHandlerLoginOK(t *testing.T) {
	router := authRouter(&stubLoginService{result: &dto.LoginResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: "2026-06-15T11:00:00Z",
	}})

	payload := `{"email":"tata@tu-wellness.co","password":"correct-password"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	var result dto.LoginResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, "signed.jwt.token", result.Token)
}

func TestAuthHandlerInvalidCredentials(t *testing.T) {
	router := authRouter(&stubLoginService{err: appErrors.ErrInvalidCredentials})

	payload := `{"email":"tata@tu-wellness.co","password":"wrong-password"}`
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, recorder).Code)
}

func TestAuthHandlerInvalidJSON(t *testing.T) {
	router := authRouter(&stubLoginService{})

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	recorder := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "INVALID_JSON", decodeError(t, recorder).Code)
}
