package service

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/dto"
	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// maxRangeDays bounds date-range queries; anything wider gets rejected
// instead of silently truncated.
const maxRangeDays = 30

var dateShapePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// slotCatalog produces the slots of one calendar date.
type slotCatalog interface {
	SlotsForDate(ctx context.Context, date string) ([]models.Slot, error)
}

// ScheduleService answers the public schedule queries. Generated day
// schedules are cached unfiltered; past-slot filtering is applied after
// retrieval so cached entries stay valid as the day progresses.
type ScheduleService struct {
	catalog slotCatalog
	cache   *CacheService
	ttl     time.Duration
	loc     *time.Location
	logger  *zap.Logger

	now func() time.Time
}

// NewScheduleService constructs the schedule query service.
func NewScheduleService(catalog slotCatalog, cache *CacheService, ttl time.Duration, loc *time.Location, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ScheduleService{
		catalog: catalog,
		cache:   cache,
		ttl:     ttl,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// ForDate returns the schedule of one date with slots that are already over
// for today filtered out.
func (s *ScheduleService) ForDate(ctx context.Context, date string) (*dto.DaySchedule, error) {
	day, err := parseDate(date, appErrors.ErrInvalidDateFormat, appErrors.ErrInvalidDate)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotsForDay(ctx, date)
	if err != nil {
		return nil, err
	}
	slots = s.filterPast(day, slots)

	return &dto.DaySchedule{
		Date:         date,
		Classes:      slots,
		TotalClasses: len(slots),
	}, nil
}

// ForRange returns the schedules of every date between date and endDate
// inclusive. The end must not precede the start and the span must not exceed
// maxRangeDays.
func (s *ScheduleService) ForRange(ctx context.Context, date, endDate string) (*dto.RangeSchedule, error) {
	start, err := parseDate(date, appErrors.ErrInvalidDateFormat, appErrors.ErrInvalidDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate, appErrors.ErrInvalidEndDateFormat, appErrors.ErrInvalidEndDate)
	if err != nil {
		return nil, err
	}

	if end.Before(start) {
		return nil, appErrors.ErrInvalidDateRange
	}
	if int(end.Sub(start).Hours()/24) > maxRangeDays {
		return nil, appErrors.ErrRangeTooLarge
	}

	schedules := make([]dto.DayEntry, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayStr := day.Format("2006-01-02")
		slots, err := s.slotsForDay(ctx, dayStr)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, dto.DayEntry{
			Date:    dayStr,
			Classes: s.filterPast(day, slots),
		})
	}

	return &dto.RangeSchedule{
		StartDate: date,
		EndDate:   endDate,
		Schedules: schedules,
		TotalDays: len(schedules),
	}, nil
}

// slotsForDay serves the unfiltered slot list of a date, through the cache
// when one is wired.
func (s *ScheduleService) slotsForDay(ctx context.Context, date string) ([]models.Slot, error) {
	key := "schedule:day:" + date

	if s.cache.Enabled() {
		var cached []models.Slot
		hit, err := s.cache.Get(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	slots, err := s.catalog.SlotsForDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, slots, s.ttl); err != nil {
			s.logger.Warn("schedule cache write failed", zap.String("date", date), zap.Error(err))
		}
	}
	return slots, nil
}

// filterPast drops slots whose start time has passed. Past dates come back
// empty, future dates untouched; for today the comparison is on time of day
// at minute granularity, strictly after the current minute.
func (s *ScheduleService) filterPast(day time.Time, slots []models.Slot) []models.Slot {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")
	date := day.Format("2006-01-02")

	if date < today {
		return []models.Slot{}
	}
	if date > today {
		return slots
	}

	nowClock := now.Format("15:04")
	remaining := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.Time > nowClock {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

// parseDate enforces the YYYY-MM-DD shape before checking calendar validity,
// so "06/15/2024" and "2024-02-30" report different error codes.
func parseDate(value string, formatErr, calendarErr *appErrors.Error) (time.Time, error) {
	if !dateShapePattern.MatchString(value) {
		return time.Time{}, formatErr
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, calendarErr
	}
	return day, nil
}
