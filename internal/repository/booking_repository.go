package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-wellness/booking-api/internal/models"
)

// EnrollmentGate is evaluated inside the store's critical section for a slot,
// with the current enrollment count. Returning an error aborts the creation
// without admitting the booking, so capacity can never be oversubscribed even
// under concurrent requests for the same slot.
type EnrollmentGate func(enrolled int) error

// BookingStore persists bookings and maintains per-slot enrollment counts.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking, gate EnrollmentGate) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByClass(ctx context.Context, classID string) ([]models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	EnrolledCount(ctx context.Context, classID string) (int, error)
}

// MemoryBookingStore keeps bookings in process memory. It is the default
// store and is suitable for a single instance; enrollment counts reset on
// restart together with the bookings that produced them.
type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	enrolled map[string]int

	lockMu sync.Mutex
	slotMu map[string]*sync.Mutex
}

// NewMemoryBookingStore returns an empty in-memory store.
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		bookings: make(map[string]models.Booking),
		enrolled: make(map[string]int),
		slotMu:   make(map[string]*sync.Mutex),
	}
}

// slotLock returns the mutex guarding one slot's enrollment count, creating
// it on first use. Serializing per slot keeps unrelated classes concurrent.
func (s *MemoryBookingStore) slotLock(classID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	mu, ok := s.slotMu[classID]
	if !ok {
		mu = &sync.Mutex{}
		s.slotMu[classID] = mu
	}
	return mu
}

// CreateBooking admits the booking if the gate accepts the slot's current
// enrollment. The count check and the insert happen under the slot's lock.
func (s *MemoryBookingStore) CreateBooking(ctx context.Context, booking *models.Booking, gate EnrollmentGate) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	mu := s.slotLock(booking.ClassID)
	mu.Lock()
	defer mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gate != nil {
		if err := gate(s.enrolled[booking.ClassID]); err != nil {
			return err
		}
	}

	s.bookings[booking.ID] = *booking
	s.enrolled[booking.ClassID]++
	return nil
}

// FindByID returns a copy of the booking or sql.ErrNoRows when absent.
func (s *MemoryBookingStore) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &booking, nil
}

// ListByClass returns the bookings for one slot, oldest first.
func (s *MemoryBookingStore) ListByClass(ctx context.Context, classID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Booking, 0)
	for _, booking := range s.bookings {
		if booking.ClassID == classID {
			result = append(result, booking)
		}
	}
	sortBookings(result)
	return result, nil
}

// ListByEmail returns the customer's bookings, matching email case-insensitively.
func (s *MemoryBookingStore) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Booking, 0)
	for _, booking := range s.bookings {
		if strings.EqualFold(booking.Email, email) {
			result = append(result, booking)
		}
	}
	sortBookings(result)
	return result, nil
}

// UpdatePaymentStatus records the payment outcome; a completed payment also
// confirms the booking.
func (s *MemoryBookingStore) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	booking.PaymentStatus = status
	if status == models.PaymentCompleted && booking.Status == models.BookingPending {
		booking.Status = models.BookingConfirmed
	}
	s.bookings[id] = booking
	return &booking, nil
}

// Cancel marks the booking cancelled and releases its enrollment spot.
// Cancelling an already-cancelled booking is a no-op so the count is never
// decremented twice.
func (s *MemoryBookingStore) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if booking.Status == models.BookingCancelled {
		return &booking, nil
	}

	booking.Status = models.BookingCancelled
	s.bookings[id] = booking

	if s.enrolled[booking.ClassID] > 0 {
		s.enrolled[booking.ClassID]--
	}
	return &booking, nil
}

// EnrolledCount returns how many active bookings a slot holds.
func (s *MemoryBookingStore) EnrolledCount(ctx context.Context, classID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enrolled[classID], nil
}

func sortBookings(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
