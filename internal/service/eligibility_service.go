package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/models"
)

// Reasons surfaced to customers when a slot cannot be booked. Exact wording
// is part of the API contract; clients render these verbatim.
const (
	ReasonClassStarted = "This class has already started or ended"
	ReasonFullyBooked  = "This class is fully booked"
)

// Eligibility is the outcome of checking one slot against booking rules.
type Eligibility struct {
	CanBook bool
	Reason  string
}

// EligibilityService applies the time and capacity rules that decide whether
// a slot accepts bookings. All clock math happens in the studio's timezone.
type EligibilityService struct {
	advanceHours int
	loc          *time.Location
	logger       *zap.Logger

	now func() time.Time
}

// NewEligibilityService constructs the rule checker. loc must be the studio
// timezone; advanceHours below 1 falls back to the 2-hour default.
func NewEligibilityService(advanceHours int, loc *time.Location, logger *zap.Logger) *EligibilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if advanceHours < 1 {
		advanceHours = 2
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EligibilityService{
		advanceHours: advanceHours,
		loc:          loc,
		logger:       logger,
		now:          time.Now,
	}
}

// cutoffReason phrases the advance-booking rejection with the configured
// window.
func (s *EligibilityService) cutoffReason() string {
	return fmt.Sprintf("Bookings close %d hours before class starts", s.advanceHours)
}

// Check evaluates a slot using its embedded enrollment count.
func (s *EligibilityService) Check(slot *models.Slot) Eligibility {
	return s.CheckWithEnrolled(slot, slot.Enrolled)
}

// CheckWithEnrolled evaluates the rules in fixed order: already started,
// inside the advance window, fully booked. The first failing rule wins so a
// past full class reports the time reason, not the capacity one.
func (s *EligibilityService) CheckWithEnrolled(slot *models.Slot, enrolled int) Eligibility {
	start, err := s.SlotStart(slot)
	if err != nil {
		s.logger.Warn("unparseable slot start", zap.String("classId", slot.ID), zap.Error(err))
		return Eligibility{CanBook: false, Reason: ReasonClassStarted}
	}

	now := s.now().In(s.loc)
	if !now.Before(start) {
		return Eligibility{CanBook: false, Reason: ReasonClassStarted}
	}

	cutoff := start.Add(-time.Duration(s.advanceHours) * time.Hour)
	if !now.Before(cutoff) {
		return Eligibility{CanBook: false, Reason: s.cutoffReason()}
	}

	if enrolled >= s.EffectiveCapacity(slot) {
		return Eligibility{CanBook: false, Reason: ReasonFullyBooked}
	}

	return Eligibility{CanBook: true}
}

// EffectiveCapacity is the bookable headcount of a slot: always 1 for
// private sessions, the configured (room-clamped) capacity for group classes.
func (s *EligibilityService) EffectiveCapacity(slot *models.Slot) int {
	if slot.Type == models.ClassTypePrivate {
		return 1
	}
	capacity := slot.Capacity
	if capacity <= 0 || capacity > 8 {
		capacity = 8
	}
	return capacity
}

// SpotsRemaining never goes negative even if the stored count drifts above
// capacity.
func (s *EligibilityService) SpotsRemaining(slot *models.Slot, enrolled int) int {
	remaining := s.EffectiveCapacity(slot) - enrolled
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SlotStart resolves the slot's wall-clock start in the studio timezone.
func (s *EligibilityService) SlotStart(slot *models.Slot) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", slot.Date+" "+slot.Time, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start %s %s: %w", slot.Date, slot.Time, err)
	}
	return start, nil
}
