package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/models"
)

func fixedClock(value string) func() time.Time {
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func groupSlot(date, timeOfDay string, enrolled int) *models.Slot {
	return &models.Slot{
		ID:       models.SlotID(date, timeOfDay, models.ClassTypeGroup),
		Date:     date,
		Time:     timeOfDay,
		Type:     models.ClassTypeGroup,
		Capacity: 8,
		Enrolled: enrolled,
	}
}

func TestEligibilityPastClass(t *testing.T) {
	svc := NewEligibilityService(2, time.UTC, nil)
	svc.now = fixedClock("2026-06-15 12:00:00")

	outcome := svc.Check(groupSlot("2026-06-15", "07:00", 0))
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "This class has already started or ended", outcome.Reason)

	// Exactly at start counts as started.
	outcome = svc.Check(groupSlot("2026-06-15", "12:00", 0))
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "This class has already started or ended", outcome.Reason)
}

func TestEligibilityAdvanceWindow(t *testing.T) {
	svc := NewEligibilityService(2, time.UTC, nil)

	// Exactly on the cutoff is rejected.
	svc.now = fixedClock("2026-06-15 15:30:00")
	outcome := svc.Check(groupSlot("2026-06-15", "17:30", 0))
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "Bookings close 2 hours before class starts", outcome.Reason)

	// One second earlier is allowed.
	svc.now = fixedClock("2026-06-15 15:29:59")
	outcome = svc.Check(groupSlot("2026-06-15", "17:30", 0))
	assert.True(t, outcome.CanBook)
	assert.Empty(t, outcome.Reason)
}

func TestEligibilityCapacity(t *testing.T) {
	svc := NewEligibilityService(2, time.UTC, nil)
	svc.now = fixedClock("2026-06-15 08:00:00")

	outcome := svc.Check(groupSlot("2026-06-15", "17:30", 8))
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "This class is fully booked", outcome.Reason)

	outcome = svc.Check(groupSlot("2026-06-15", "17:30", 7))
	assert.True(t, outcome.CanBook)

	private := &models.Slot{
		ID:       models.SlotID("2026-06-15", "16:00", models.ClassTypePrivate),
		Date:     "2026-06-15",
		Time:     "16:00",
		Type:     models.ClassTypePrivate,
		Capacity: 1,
		Enrolled: 1,
	}
	outcome = svc.Check(private)
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "This class is fully booked", outcome.Reason)
}

func TestEligibilityRuleOrder(t *testing.T) {
	svc := NewEligibilityService(2, time.UTC, nil)
	svc.now = fixedClock("2026-06-16 12:00:00")

	// A past class that is also full reports the time reason.
	outcome := svc.Check(groupSlot("2026-06-15", "07:00", 8))
	assert.Equal(t, "This class has already started or ended", outcome.Reason)

	// Inside the window and full reports the window reason.
	svc.now = fixedClock("2026-06-16 16:30:00")
	outcome = svc.Check(groupSlot("2026-06-16", "17:30", 8))
	assert.Equal(t, "Bookings close 2 hours before class starts", outcome.Reason)
}

func TestEligibilityTimezone(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	svc := NewEligibilityService(2, bogota, nil)
	// 13:00 UTC is 08:00 in Bogota; the 09:30 class is inside the window.
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 13, 0, 0, 0, time.UTC)
	}

	outcome := svc.Check(groupSlot("2026-06-15", "09:30", 0))
	assert.False(t, outcome.CanBook)
	assert.Equal(t, "Bookings close 2 hours before class starts", outcome.Reason)

	// The 12:00 class is still outside the window in Bogota.
	outcome = svc.Check(groupSlot("2026-06-15", "12:00", 0))
	assert.True(t, outcome.CanBook)
}

func TestSpotsRemaining(t *testing.T) {
	svc := NewEligibilityService(2, time.UTC, nil)

	assert.Equal(t, 5, svc.SpotsRemaining(groupSlot("2026-06-15", "07:00", 3), 3))
	assert.Equal(t, 0, svc.SpotsRemaining(groupSlot("2026-06-15", "07:00", 9), 9))
}
