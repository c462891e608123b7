package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
	"github.com/tu-wellness/booking-api/pkg/config"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// AuthService authenticates the studio operator. There is a single admin
// account configured through the environment; the service issues short-lived
// bearer tokens for the admin endpoints.
type AuthService struct {
	jwtCfg   config.JWTConfig
	admin    config.AdminConfig
	validate *validator.Validate
	logger   *zap.Logger

	now func() time.Time
}

// NewAuthService constructs the authenticator.
func NewAuthService(jwtCfg config.JWTConfig, admin config.AdminConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		jwtCfg:   jwtCfg,
		admin:    admin,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the operator credentials and issues a token. Wrong email and
// wrong password are indistinguishable in the response.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, validationDetails(err))
	}

	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		s.logger.Warn("admin account not configured; rejecting login")
		return nil, appErrors.ErrInvalidCredentials
	}

	if !strings.EqualFold(req.Email, s.admin.Email) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.jwtCfg.Expiration)

	claims := models.JWTClaims{
		Email: s.admin.Email,
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.admin.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}
