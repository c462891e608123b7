package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

func newScheduleService(clock func() time.Time) *ScheduleService {
	catalog := NewCatalogService(&stubCounter{}, 8, nil)
	svc := NewScheduleService(catalog, nil, time.Minute, time.UTC, nil)
	if clock != nil {
		svc.now = clock
	}
	return svc
}

func TestScheduleForDateValidation(t *testing.T) {
	svc := newScheduleService(nil)

	_, err := svc.ForDate(context.Background(), "06/15/2026")
	assert.ErrorIs(t, err, appErrors.ErrInvalidDateFormat)

	_, err = svc.ForDate(context.Background(), "2026-6-15")
	assert.ErrorIs(t, err, appErrors.ErrInvalidDateFormat)

	_, err = svc.ForDate(context.Background(), "2026-02-30")
	assert.ErrorIs(t, err, appErrors.ErrInvalidDate)
}

func TestScheduleFutureDateKeepsAllSlots(t *testing.T) {
	svc := newScheduleService(fixedClock("2026-06-15 10:00:00"))

	schedule, err := svc.ForDate(context.Background(), "2026-06-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-20", schedule.Date)
	assert.Equal(t, 9, schedule.TotalClasses)
	assert.Len(t, schedule.Classes, 9)
}

func TestSchedulePastDateIsEmpty(t *testing.T) {
	svc := newScheduleService(fixedClock("2026-06-15 10:00:00"))

	schedule, err := svc.ForDate(context.Background(), "2026-06-14")
	require.NoError(t, err)
	assert.Equal(t, 0, schedule.TotalClasses)
	assert.Empty(t, schedule.Classes)
}

func TestScheduleTodayFiltersElapsedSlots(t *testing.T) {
	// At 12:00 the 07:00, 08:30, 09:30, 10:30 and 12:00 slots are gone.
	svc := newScheduleService(fixedClock("2026-06-15 12:00:00"))

	schedule, err := svc.ForDate(context.Background(), "2026-06-15")
	require.NoError(t, err)
	require.Equal(t, 4, schedule.TotalClasses)
	assert.Equal(t, "14:00", schedule.Classes[0].Time)
	assert.Equal(t, "19:00", schedule.Classes[3].Time)
}

func TestScheduleRange(t *testing.T) {
	svc := newScheduleService(fixedClock("2026-06-01 05:00:00"))

	schedule, err := svc.ForRange(context.Background(), "2026-06-10", "2026-06-12")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-10", schedule.StartDate)
	assert.Equal(t, "2026-06-12", schedule.EndDate)
	assert.Equal(t, 3, schedule.TotalDays)
	require.Len(t, schedule.Schedules, 3)
	assert.Equal(t, "2026-06-11", schedule.Schedules[1].Date)
	assert.Len(t, schedule.Schedules[1].Classes, 9)
}

func TestScheduleRangeSameDay(t *testing.T) {
	svc := newScheduleService(fixedClock("2026-06-01 05:00:00"))

	schedule, err := svc.ForRange(context.Background(), "2026-06-10", "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 1, schedule.TotalDays)
}

func TestScheduleRangeValidation(t *testing.T) {
	svc := newScheduleService(nil)

	_, err := svc.ForRange(context.Background(), "2026-06-10", "2026-06-09")
	assert.ErrorIs(t, err, appErrors.ErrInvalidDateRange)

	_, err = svc.ForRange(context.Background(), "2026-06-10", "2026-07-15")
	assert.ErrorIs(t, err, appErrors.ErrRangeTooLarge)

	_, err = svc.ForRange(context.Background(), "2026-06-10", "15-07-2026")
	assert.ErrorIs(t, err, appErrors.ErrInvalidEndDateFormat)

	_, err = svc.ForRange(context.Background(), "2026-06-10", "2026-13-01")
	assert.ErrorIs(t, err, appErrors.ErrInvalidEndDate)

	// 30 days exactly is still accepted.
	svc.now = fixedClock("2026-06-01 05:00:00")
	schedule, err := svc.ForRange(context.Background(), "2026-06-10", "2026-07-10")
	require.NoError(t, err)
	assert.Equal(t, 31, schedule.TotalDays)
}
