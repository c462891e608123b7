package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
)

// signatureVerifier checks the checksum of an incoming provider event.
type signatureVerifier interface {
	VerifyWebhookSignature(event *dto.WompiEvent) bool
}

// paymentRecorder applies a payment outcome to the referenced booking.
type paymentRecorder interface {
	UpdatePaymentStatus(ctx context.Context, reference string, status models.PaymentStatus) (*models.Booking, error)
}

// WebhookService processes payment provider events. Processing never returns
// an error: the provider retries on non-2xx responses, and a retry cannot
// fix a bad signature or an unknown reference, so failures are logged and
// acknowledged.
type WebhookService struct {
	verifier signatureVerifier
	bookings paymentRecorder
	logger   *zap.Logger
}

// NewWebhookService constructs the event processor.
func NewWebhookService(verifier signatureVerifier, bookings paymentRecorder, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{verifier: verifier, bookings: bookings, logger: logger}
}

// Process verifies and applies one event.
func (s *WebhookService) Process(ctx context.Context, event *dto.WompiEvent) *dto.WebhookAck {
	if !s.verifier.VerifyWebhookSignature(event) {
		s.logger.Warn("webhook signature mismatch",
			zap.String("event", event.Event),
			zap.String("reference", event.Data.Transaction.Reference))
		return &dto.WebhookAck{Success: false, Message: "invalid signature"}
	}

	if event.Event != dto.WompiEventTransactionUpdated {
		s.logger.Info("ignoring webhook event", zap.String("event", event.Event))
		return &dto.WebhookAck{Success: true, Message: "event ignored"}
	}

	tx := event.Data.Transaction
	var status models.PaymentStatus
	switch tx.Status {
	case dto.WompiStatusApproved:
		status = models.PaymentCompleted
	case dto.WompiStatusDeclined, dto.WompiStatusVoided, dto.WompiStatusError:
		status = models.PaymentFailed
	case dto.WompiStatusPending:
		s.logger.Info("payment still pending",
			zap.String("reference", tx.Reference),
			zap.String("transactionId", tx.ID))
		return &dto.WebhookAck{Success: true, Message: "pending acknowledged"}
	default:
		s.logger.Warn("unknown transaction status",
			zap.String("status", tx.Status),
			zap.String("reference", tx.Reference))
		return &dto.WebhookAck{Success: true, Message: "status ignored"}
	}

	if _, err := s.bookings.UpdatePaymentStatus(ctx, tx.Reference, status); err != nil {
		s.logger.Error("payment status update failed",
			zap.String("reference", tx.Reference),
			zap.String("status", string(status)),
			zap.Error(err))
		return &dto.WebhookAck{Success: false, Message: "booking update failed"}
	}

	s.logger.Info("payment status recorded",
		zap.String("reference", tx.Reference),
		zap.String("status", string(status)))
	return &dto.WebhookAck{Success: true}
}
