package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

type stubCounter struct {
	counts map[string]int
	err    error
}

func (s *stubCounter) EnrolledCount(ctx context.Context, classID string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[classID], nil
}

func TestCatalogSlotsForDate(t *testing.T) {
	catalog := NewCatalogService(&stubCounter{}, 8, nil)

	slots, err := catalog.SlotsForDate(context.Background(), "2026-06-15")
	require.NoError(t, err)
	require.Len(t, slots, 9)

	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.Time)
	}
	assert.Equal(t, []string{"07:00", "08:30", "09:30", "10:30", "12:00", "14:00", "16:00", "17:30", "19:00"}, times)

	first := slots[0]
	assert.Equal(t, "2026-06-15-0700-group", first.ID)
	assert.Equal(t, models.ClassTypeGroup, first.Type)
	assert.Equal(t, "Morning Vinyasa Flow", first.Name)
	assert.Equal(t, "Flujo Vinyasa Matutino", first.NameEs)
	assert.Equal(t, models.StyleVinyasa, first.Style)
	assert.Equal(t, 45000, first.Price)
	assert.Equal(t, 75, first.Duration)
	assert.Equal(t, 8, first.Capacity)
	assert.Equal(t, "Tata", first.Instructor)
	assert.Equal(t, "TU. Wellness Center", first.Location)

	private := slots[1]
	assert.Equal(t, "2026-06-15-0830-private", private.ID)
	assert.Equal(t, models.ClassTypePrivate, private.Type)
	assert.Equal(t, 1, private.Capacity)
	assert.Equal(t, 150000, private.Price)
	assert.Equal(t, "Private Session", private.Name)
	assert.Equal(t, models.LevelAll, private.Level)
}

func TestCatalogEnrollmentJoin(t *testing.T) {
	counts := &stubCounter{counts: map[string]int{
		"2026-06-15-0700-group":   3,
		"2026-06-15-1030-private": 1,
	}}
	catalog := NewCatalogService(counts, 8, nil)

	slots, err := catalog.SlotsForDate(context.Background(), "2026-06-15")
	require.NoError(t, err)

	byID := make(map[string]models.Slot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	assert.Equal(t, 3, byID["2026-06-15-0700-group"].Enrolled)
	assert.Equal(t, 1, byID["2026-06-15-1030-private"].Enrolled)
	assert.Equal(t, 0, byID["2026-06-15-1900-group"].Enrolled)
}

func TestCatalogCapacityClamp(t *testing.T) {
	catalog := NewCatalogService(&stubCounter{}, 50, nil)

	slots, err := catalog.SlotsForDate(context.Background(), "2026-06-15")
	require.NoError(t, err)
	for _, slot := range slots {
		if slot.Type == models.ClassTypeGroup {
			assert.Equal(t, 8, slot.Capacity)
		}
	}

	small := NewCatalogService(&stubCounter{}, 5, nil)
	slots, err = small.SlotsForDate(context.Background(), "2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, 5, slots[0].Capacity)
}

func TestCatalogFindSlot(t *testing.T) {
	catalog := NewCatalogService(&stubCounter{}, 8, nil)

	slot, err := catalog.FindSlot(context.Background(), "2026-06-15-1730-group")
	require.NoError(t, err)
	assert.Equal(t, "Sunset Yin", slot.Name)
	assert.Equal(t, 90, slot.Duration)

	_, err = catalog.FindSlot(context.Background(), "not-a-class-id")
	assert.ErrorIs(t, err, appErrors.ErrInvalidClassID)

	// Well-formed id with no matching timetable entry.
	_, err = catalog.FindSlot(context.Background(), "2026-06-15-0800-group")
	assert.ErrorIs(t, err, appErrors.ErrClassNotFound)
}
