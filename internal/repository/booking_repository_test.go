package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

func newTestBooking(id, classID, email string) *models.Booking {
	return &models.Booking{
		ID:              id,
		ClassID:         classID,
		CustomerName:    "Test Customer",
		Email:           email,
		WhatsApp:        "+573001234567",
		ExperienceLevel: models.ExperienceBeginner,
		PaymentStatus:   models.PaymentPending,
		Status:          models.BookingPending,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestMemoryStoreCreateAndFind(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()

	booking := newTestBooking("bk-1", "2026-06-15-0700-group", "a@example.com")
	require.NoError(t, store.CreateBooking(ctx, booking, nil))

	found, err := store.FindByID(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-15-0700-group", found.ClassID)

	enrolled, err := store.EnrolledCount(ctx, "2026-06-15-0700-group")
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled)

	_, err = store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryStoreGateRejection(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()

	gate := func(enrolled int) error {
		if enrolled >= 1 {
			return appErrors.ErrBookingNotAllowed
		}
		return nil
	}

	require.NoError(t, store.CreateBooking(ctx, newTestBooking("bk-1", "slot", "a@example.com"), gate))
	err := store.CreateBooking(ctx, newTestBooking("bk-2", "slot", "b@example.com"), gate)
	assert.ErrorIs(t, err, appErrors.ErrBookingNotAllowed)

	// The rejected booking must not exist or count.
	_, err = store.FindByID(ctx, "bk-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	enrolled, err := store.EnrolledCount(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, 1, enrolled)
}

func TestMemoryStoreConcurrentAdmission(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()
	const capacity = 8
	const attempts = 50

	gate := func(enrolled int) error {
		if enrolled >= capacity {
			return appErrors.ErrBookingNotAllowed
		}
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			booking := newTestBooking(fmt.Sprintf("bk-%d", n), "hot-slot", fmt.Sprintf("c%d@example.com", n))
			if err := store.CreateBooking(ctx, booking, gate); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacity, admitted)
	enrolled, err := store.EnrolledCount(ctx, "hot-slot")
	require.NoError(t, err)
	assert.Equal(t, capacity, enrolled)
}

func TestMemoryStoreCancelIdempotent(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()

	require.NoError(t, store.CreateBooking(ctx, newTestBooking("bk-1", "slot", "a@example.com"), nil))

	cancelled, err := store.Cancel(ctx, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	enrolled, err := store.EnrolledCount(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, 0, enrolled)

	// Cancelling again must not decrement below zero.
	_, err = store.Cancel(ctx, "bk-1")
	require.NoError(t, err)
	enrolled, err = store.EnrolledCount(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, 0, enrolled)

	_, err = store.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryStoreUpdatePaymentStatus(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()

	require.NoError(t, store.CreateBooking(ctx, newTestBooking("bk-1", "slot", "a@example.com"), nil))

	updated, err := store.UpdatePaymentStatus(ctx, "bk-1", models.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, updated.PaymentStatus)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	// Failure does not confirm.
	require.NoError(t, store.CreateBooking(ctx, newTestBooking("bk-2", "slot", "b@example.com"), nil))
	updated, err = store.UpdatePaymentStatus(ctx, "bk-2", models.PaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, updated.PaymentStatus)
	assert.Equal(t, models.BookingPending, updated.Status)

	_, err = store.UpdatePaymentStatus(ctx, "missing", models.PaymentCompleted)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryStoreListQueries(t *testing.T) {
	store := NewMemoryBookingStore()
	ctx := context.Background()

	first := newTestBooking("bk-1", "slot-a", "shared@example.com")
	first.CreatedAt = time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	second := newTestBooking("bk-2", "slot-a", "other@example.com")
	second.CreatedAt = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	third := newTestBooking("bk-3", "slot-b", "SHARED@example.com")

	require.NoError(t, store.CreateBooking(ctx, first, nil))
	require.NoError(t, store.CreateBooking(ctx, second, nil))
	require.NoError(t, store.CreateBooking(ctx, third, nil))

	byClass, err := store.ListByClass(ctx, "slot-a")
	require.NoError(t, err)
	require.Len(t, byClass, 2)
	assert.Equal(t, "bk-1", byClass[0].ID)
	assert.Equal(t, "bk-2", byClass[1].ID)

	byEmail, err := store.ListByEmail(ctx, "shared@EXAMPLE.com")
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)
}
