package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
	"github.com/tu-wellness/booking-api/internal/repository"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// slotFinder resolves class ids to slots.
type slotFinder interface {
	FindSlot(ctx context.Context, classID string) (*models.Slot, error)
}

// paymentLinker produces the payment URL attached to a new booking.
type paymentLinker interface {
	PaymentURL(ctx context.Context, booking *models.Booking, slot *models.Slot) string
}

// BookingService owns the booking lifecycle: admission against the
// eligibility rules, payment hand-off, status transitions and roster reads.
type BookingService struct {
	catalog     slotFinder
	eligibility *EligibilityService
	store       repository.BookingStore
	payments    paymentLinker
	cache       *CacheService
	metrics     *MetricsService
	validate    *validator.Validate
	logger      *zap.Logger

	now func() time.Time
}

// NewBookingService constructs the booking orchestrator. payments, cache and
// metrics may be nil; the booking flow degrades gracefully without them.
func NewBookingService(
	catalog slotFinder,
	eligibility *EligibilityService,
	store repository.BookingStore,
	payments paymentLinker,
	cache *CacheService,
	metrics *MetricsService,
	logger *zap.Logger,
) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		catalog:     catalog,
		eligibility: eligibility,
		store:       store,
		payments:    payments,
		cache:       cache,
		metrics:     metrics,
		validate:    validator.New(),
		logger:      logger,
		now:         time.Now,
	}
}

// Create admits a booking for the requested slot. The eligibility rules run
// twice: once up front for a fast rejection with the precise reason, and
// again inside the store's critical section against the locked enrollment
// count, so two concurrent requests can never both take the last spot.
func (s *BookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.WithDetails(appErrors.ErrValidation, validationDetails(err))
	}

	slot, err := s.catalog.FindSlot(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	if outcome := s.eligibility.Check(slot); !outcome.CanBook {
		s.metrics.RecordBooking("rejected")
		return nil, appErrors.Clone(appErrors.ErrBookingNotAllowed, outcome.Reason)
	}

	booking := &models.Booking{
		ID:              s.newBookingID(),
		ClassID:         slot.ID,
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		WhatsApp:        req.WhatsApp,
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		PaymentStatus:   models.PaymentPending,
		Status:          models.BookingPending,
		CreatedAt:       s.now().UTC(),
	}

	gate := func(enrolled int) error {
		if outcome := s.eligibility.CheckWithEnrolled(slot, enrolled); !outcome.CanBook {
			return appErrors.Clone(appErrors.ErrBookingNotAllowed, outcome.Reason)
		}
		return nil
	}

	if err := s.store.CreateBooking(ctx, booking, gate); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			s.metrics.RecordBooking("rejected")
			return nil, appErr
		}
		s.logger.Error("booking persist failed", zap.String("classId", slot.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.metrics.RecordBooking("created")
	s.invalidateSchedule(ctx, slot.Date)

	paymentURL := ""
	if s.payments != nil {
		paymentURL = s.payments.PaymentURL(ctx, booking, slot)
	}

	return &dto.BookingResponse{
		Success:    true,
		Booking:    bookingDetails(booking, slot),
		PaymentURL: paymentURL,
		Message: fmt.Sprintf(
			"Your spot in %s on %s at %s has been reserved. Please complete payment to confirm your booking.",
			slot.Name, slot.Date, slot.Time),
	}, nil
}

// CheckAvailability reports spots and bookability for one slot.
func (s *BookingService) CheckAvailability(ctx context.Context, classID string) (*dto.AvailabilityResponse, error) {
	slot, err := s.catalog.FindSlot(ctx, classID)
	if err != nil {
		return nil, err
	}

	outcome := s.eligibility.Check(slot)
	spots := s.eligibility.SpotsRemaining(slot, slot.Enrolled)

	return &dto.AvailabilityResponse{
		Available:      spots > 0,
		SpotsRemaining: spots,
		CanBook:        outcome.CanBook,
		Reason:         outcome.Reason,
		ClassDetails: dto.ClassDetails{
			Name:       slot.Name,
			Time:       slot.Time,
			Date:       slot.Date,
			Instructor: slot.Instructor,
			Style:      string(slot.Style),
			Level:      string(slot.Level),
		},
	}, nil
}

// Cancel cancels a booking and frees its spot.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBookingNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.metrics.RecordBooking("cancelled")
	if date, ok := models.ClassIDDate(booking.ClassID); ok {
		s.invalidateSchedule(ctx, date)
	}
	return booking, nil
}

// UpdatePaymentStatus records a payment outcome against the booking the
// payment reference points at. Unknown references are reported as not found
// so webhook processing can log and move on.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, reference string, status models.PaymentStatus) (*models.Booking, error) {
	booking, err := s.store.UpdatePaymentStatus(ctx, reference, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrBookingNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return booking, nil
}

// ListByClass returns the roster of one slot.
func (s *BookingService) ListByClass(ctx context.Context, classID string) ([]models.Booking, error) {
	if _, ok := models.ClassIDDate(classID); !ok {
		return nil, appErrors.ErrInvalidClassID
	}
	start := s.now()
	bookings, err := s.store.ListByClass(ctx, classID)
	s.metrics.ObserveDBQuery("bookings_by_class", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return bookings, nil
}

// ListByEmail returns all bookings of one customer.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	start := s.now()
	bookings, err := s.store.ListByEmail(ctx, email)
	s.metrics.ObserveDBQuery("bookings_by_email", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return bookings, nil
}

// invalidateSchedule drops the cached schedule of the affected date so the
// next listing reflects the new enrollment count.
func (s *BookingService) invalidateSchedule(ctx context.Context, date string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, "schedule:day:"+date); err != nil {
		s.logger.Warn("schedule invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

// newBookingID builds ids of the shape TU-YYYYMMDD-XXXXX.
func (s *BookingService) newBookingID() string {
	datePart := s.now().UTC().Format("20060102")
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
	return "TU-" + datePart + "-" + randomPart
}

func bookingDetails(booking *models.Booking, slot *models.Slot) dto.BookingDetails {
	return dto.BookingDetails{
		ID:              booking.ID,
		ClassID:         booking.ClassID,
		ClassName:       slot.Name,
		ClassDate:       slot.Date,
		ClassTime:       slot.Time,
		CustomerName:    booking.CustomerName,
		Email:           booking.Email,
		WhatsApp:        booking.WhatsApp,
		ExperienceLevel: string(booking.ExperienceLevel),
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt.Format(time.RFC3339),
	}
}

// validationDetails flattens validator errors into per-field messages that
// clients can render next to their form inputs.
func validationDetails(err error) []appErrors.FieldError {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return nil
	}

	details := make([]appErrors.FieldError, 0, len(invalid))
	for _, fieldErr := range invalid {
		details = append(details, appErrors.FieldError{
			Field:   fieldErr.Field(),
			Message: validationMessage(fieldErr),
		})
	}
	return details
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return "Invalid email address"
	case "e164":
		return "Invalid WhatsApp number. Include country code (e.g., +57300123456)"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
