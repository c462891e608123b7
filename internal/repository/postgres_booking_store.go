package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tu-wellness/booking-api/internal/models"
)

// PostgresBookingStore persists bookings in PostgreSQL. Enrollment counts are
// kept in a per-slot counter row that is row-locked while a booking is
// admitted, so the capacity gate and the insert are a single atomic step.
type PostgresBookingStore struct {
	db *sqlx.DB
}

// NewPostgresBookingStore constructs the store.
func NewPostgresBookingStore(db *sqlx.DB) *PostgresBookingStore {
	return &PostgresBookingStore{db: db}
}

// CreateBooking inserts the booking inside a transaction. The slot's counter
// row is created if missing, then locked with FOR UPDATE; the gate sees the
// locked count, and the increment commits together with the insert.
func (s *PostgresBookingStore) CreateBooking(ctx context.Context, booking *models.Booking, gate EnrollmentGate) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO slot_enrollments (class_id, enrolled) VALUES ($1, 0)
		 ON CONFLICT (class_id) DO NOTHING`, booking.ClassID); err != nil {
		return fmt.Errorf("init slot counter: %w", err)
	}

	var enrolled int
	if err := tx.GetContext(ctx, &enrolled,
		`SELECT enrolled FROM slot_enrollments WHERE class_id = $1 FOR UPDATE`,
		booking.ClassID); err != nil {
		return fmt.Errorf("lock slot counter: %w", err)
	}

	if gate != nil {
		if err := gate(enrolled); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID, booking.ClassID, booking.CustomerName, booking.Email, booking.WhatsApp,
		booking.ExperienceLevel, booking.PaymentStatus, booking.Status, booking.CreatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE slot_enrollments SET enrolled = enrolled + 1 WHERE class_id = $1`,
		booking.ClassID); err != nil {
		return fmt.Errorf("increment slot counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}
	return nil
}

// FindByID loads one booking. Absent rows surface as sql.ErrNoRows.
func (s *PostgresBookingStore) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.GetContext(ctx, &booking,
		`SELECT id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at
		 FROM bookings WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByClass returns the bookings for one slot, oldest first.
func (s *PostgresBookingStore) ListByClass(ctx context.Context, classID string) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	if err := s.db.SelectContext(ctx, &bookings,
		`SELECT id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at
		 FROM bookings WHERE class_id = $1 ORDER BY created_at ASC, id ASC`, classID); err != nil {
		return nil, fmt.Errorf("list bookings by class: %w", err)
	}
	return bookings, nil
}

// ListByEmail returns the customer's bookings, matching email case-insensitively.
func (s *PostgresBookingStore) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	if err := s.db.SelectContext(ctx, &bookings,
		`SELECT id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at
		 FROM bookings WHERE LOWER(email) = LOWER($1) ORDER BY created_at ASC, id ASC`, email); err != nil {
		return nil, fmt.Errorf("list bookings by email: %w", err)
	}
	return bookings, nil
}

// UpdatePaymentStatus records the payment outcome; a completed payment also
// confirms a still-pending booking.
func (s *PostgresBookingStore) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.GetContext(ctx, &booking,
		`UPDATE bookings SET payment_status = $2,
		        status = CASE WHEN $2 = 'completed' AND status = 'pending' THEN 'confirmed' ELSE status END
		 WHERE id = $1
		 RETURNING id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at`,
		id, status); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel marks the booking cancelled and releases its spot. Re-cancelling is
// a no-op so the counter is only decremented once per booking.
func (s *PostgresBookingStore) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	var booking models.Booking
	if err := tx.GetContext(ctx, &booking,
		`SELECT id, class_id, customer_name, email, whatsapp, experience_level, payment_status, status, created_at
		 FROM bookings WHERE id = $1 FOR UPDATE`, id); err != nil {
		return nil, err
	}

	if booking.Status == models.BookingCancelled {
		return &booking, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled' WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE slot_enrollments SET enrolled = GREATEST(enrolled - 1, 0) WHERE class_id = $1`,
		booking.ClassID); err != nil {
		return nil, fmt.Errorf("release slot spot: %w", err)
	}

	booking.Status = models.BookingCancelled
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}
	return &booking, nil
}

// EnrolledCount returns how many active bookings a slot holds.
func (s *PostgresBookingStore) EnrolledCount(ctx context.Context, classID string) (int, error) {
	var enrolled int
	err := s.db.GetContext(ctx, &enrolled,
		`SELECT COALESCE((SELECT enrolled FROM slot_enrollments WHERE class_id = $1), 0)`, classID)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return enrolled, nil
}
