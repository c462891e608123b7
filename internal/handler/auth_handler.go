package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tu-wellness/booking-api/internal/dto"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/response"
)

type loginService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler exposes the operator login endpoint.
type AuthHandler struct {
	auth loginService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth loginService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Operator login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrInvalidJSON)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
