package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
	"github.com/tu-wellness/booking-api/pkg/config"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// PaymentService wraps the Wompi payment provider: hosted payment links,
// checkout integrity signatures and webhook checksum verification.
type PaymentService struct {
	cfg      config.WompiConfig
	client   *http.Client
	validate *validator.Validate
	logger   *zap.Logger

	now func() time.Time
}

// NewPaymentService constructs the provider wrapper.
func NewPaymentService(cfg config.WompiConfig, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Configured reports whether the provider credentials needed for payment
// links are present. Without them bookings still work; only payment links
// degrade.
func (s *PaymentService) Configured() bool {
	return s.cfg.PrivateKey != ""
}

// paymentLinkRequest is the provider payload for POST /payment_links.
type paymentLinkRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	SingleUse       bool   `json:"single_use"`
	CollectShipping bool   `json:"collect_shipping"`
	Currency        string `json:"currency"`
	AmountInCents   int    `json:"amount_in_cents"`
	RedirectURL     string `json:"redirect_url"`
	ExpiresAt       string `json:"expires_at"`
	CustomerData    struct {
		CustomerEmail    string `json:"customer_email"`
		CustomerFullName string `json:"customer_full_name"`
	} `json:"customer_data"`
}

type paymentLinkEnvelope struct {
	Data struct {
		ID             string `json:"id"`
		PaymentLinkURL string `json:"payment_link_url"`
		ExpiresAt      string `json:"expires_at"`
	} `json:"data"`
}

// CreateLinkForRequest validates the public payment payload and creates a
// single-use hosted payment link. A missing reference gets generated.
func (s *PaymentService) CreateLinkForRequest(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentLinkResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, validationDetails(err))
	}

	currency := req.Currency
	if currency == "" {
		currency = "COP"
	}
	reference := req.Reference
	if reference == "" {
		reference = NewPaymentReference()
	}
	description := req.Description
	if description == "" {
		description = "TU. Wellness - Yoga Booking"
	}

	redirectURL := strings.TrimRight(s.cfg.AppURL, "/") + "/booking/confirmation?ref=" + url.QueryEscape(reference)

	linkURL, expiresAt, err := s.createPaymentLink(ctx, paymentLinkParams{
		Amount:        req.Amount,
		Currency:      currency,
		Reference:     reference,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Description:   description,
		RedirectURL:   redirectURL,
	})
	if err != nil {
		return nil, err
	}

	return &dto.PaymentLinkResponse{
		Success:    true,
		Reference:  reference,
		PaymentURL: linkURL,
		ExpiresAt:  expiresAt,
	}, nil
}

type paymentLinkParams struct {
	Amount        int
	Currency      string
	Reference     string
	CustomerEmail string
	CustomerName  string
	Description   string
	RedirectURL   string
}

func (s *PaymentService) createPaymentLink(ctx context.Context, params paymentLinkParams) (string, string, error) {
	if !s.Configured() {
		return "", "", appErrors.ErrPaymentNotConfigured
	}

	expiresAt := s.now().UTC().Add(s.cfg.LinkExpiration).Format(time.RFC3339)

	payload := paymentLinkRequest{
		Name:            "Booking " + params.Reference,
		Description:     params.Description,
		SingleUse:       true,
		CollectShipping: false,
		Currency:        params.Currency,
		AmountInCents:   params.Amount,
		RedirectURL:     params.RedirectURL,
		ExpiresAt:       expiresAt,
	}
	payload.CustomerData.CustomerEmail = params.CustomerEmail
	payload.CustomerData.CustomerFullName = params.CustomerName

	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIBaseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.PrivateKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("payment link request failed", zap.String("reference", params.Reference), zap.Error(err))
		return "", "", appErrors.Wrap(err, appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("payment link rejected",
			zap.String("reference", params.Reference),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return "", "", appErrors.Wrap(fmt.Errorf("wompi api status %d", resp.StatusCode),
			appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}

	var envelope paymentLinkEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}
	if envelope.Data.PaymentLinkURL == "" {
		return "", "", appErrors.Wrap(fmt.Errorf("empty payment link url"),
			appErrors.ErrPaymentFailed.Code, appErrors.ErrPaymentFailed.Status, appErrors.ErrPaymentFailed.Message)
	}
	if envelope.Data.ExpiresAt != "" {
		expiresAt = envelope.Data.ExpiresAt
	}

	return envelope.Data.PaymentLinkURL, expiresAt, nil
}

// PaymentURL builds the payment URL for a freshly created booking. When the
// provider API is configured a real link is created; otherwise the hosted
// checkout URL with query parameters serves as fallback so the booking flow
// never fails on the payment leg.
func (s *PaymentService) PaymentURL(ctx context.Context, booking *models.Booking, slot *models.Slot) string {
	description := slot.Name + " - TU. by Tata Umana"

	if s.Configured() {
		redirectURL := strings.TrimRight(s.cfg.AppURL, "/") + "/booking/confirmation?ref=" + url.QueryEscape(booking.ID)
		linkURL, _, err := s.createPaymentLink(ctx, paymentLinkParams{
			Amount:        slot.Price,
			Currency:      "COP",
			Reference:     booking.ID,
			CustomerEmail: booking.Email,
			CustomerName:  booking.CustomerName,
			Description:   description,
			RedirectURL:   redirectURL,
		})
		if err == nil {
			return linkURL
		}
		s.logger.Warn("falling back to hosted checkout url",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	params := url.Values{}
	params.Set("reference", booking.ID)
	params.Set("amount", strconv.Itoa(slot.Price))
	params.Set("currency", "COP")
	params.Set("name", booking.CustomerName)
	params.Set("email", booking.Email)
	params.Set("description", description)
	return s.cfg.CheckoutBaseURL + "?" + params.Encode()
}

// IntegritySignature computes the checkout widget signature:
// SHA256(reference + amountInCents + currency + integrityKey).
func (s *PaymentService) IntegritySignature(reference string, amountInCents int, currency string) string {
	sum := sha256.Sum256([]byte(reference + strconv.Itoa(amountInCents) + currency + s.cfg.IntegrityKey))
	return hex.EncodeToString(sum[:])
}

// VerifyWebhookSignature recomputes the event checksum from the properties
// the provider signed: SHA256(property values + timestamp + events secret).
func (s *PaymentService) VerifyWebhookSignature(event *dto.WompiEvent) bool {
	if s.cfg.EventsSecret == "" {
		s.logger.Error("events secret not configured; rejecting webhook")
		return false
	}

	var builder strings.Builder
	for _, prop := range event.Signature.Properties {
		builder.WriteString(signedPropertyValue(&event.Data.Transaction, prop))
	}
	builder.WriteString(strconv.FormatInt(event.Timestamp, 10))
	builder.WriteString(s.cfg.EventsSecret)

	sum := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(sum[:]) == event.Signature.Checksum
}

// signedPropertyValue resolves one signed property path against the
// transaction. Unknown properties contribute an empty string, matching the
// provider's contract.
func signedPropertyValue(tx *dto.WompiTransaction, property string) string {
	switch property {
	case "transaction.id":
		return tx.ID
	case "transaction.status":
		return tx.Status
	case "transaction.amount_in_cents":
		return strconv.FormatInt(tx.AmountInCents, 10)
	case "transaction.reference":
		return tx.Reference
	case "transaction.currency":
		return tx.Currency
	case "transaction.customer_email":
		return tx.CustomerEmail
	case "transaction.payment_method_type":
		return tx.PaymentMethodType
	default:
		return ""
	}
}

// NewPaymentReference builds a standalone payment reference for link
// requests that arrive without one.
func NewPaymentReference() string {
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return "TU-" + strings.ToUpper(stamp) + "-" + random
}
