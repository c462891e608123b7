package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

// Class prices in COP.
const (
	priceGroupVinyasa     = 45000
	priceGroupRestorative = 40000
	priceGroupPower       = 50000
	priceGroupYin         = 45000
	priceGroupKundalini   = 55000
	pricePrivateSession   = 150000
)

const (
	defaultInstructor = "Tata"
	defaultLocation   = "TU. Wellness Center"

	// maxGroupCapacity caps the studio room size regardless of configuration.
	maxGroupCapacity = 8
	privateCapacity  = 1
)

// templateSlot is one entry of the weekly timetable. The same timetable
// repeats every day; slots materialize per date on demand.
type templateSlot struct {
	Time          string
	Style         models.YogaStyle
	Name          string
	NameEs        string
	Description   string
	DescriptionEs string
	Duration      int
	Level         models.Level
	Price         int
}

var groupSchedule = []templateSlot{
	{
		Time:          "07:00",
		Style:         models.StyleVinyasa,
		Name:          "Morning Vinyasa Flow",
		NameEs:        "Flujo Vinyasa Matutino",
		Description:   "Start your day with breath-synchronized movement",
		DescriptionEs: "Comienza tu día con movimiento sincronizado con la respiración",
		Duration:      75,
		Level:         models.LevelAll,
		Price:         priceGroupVinyasa,
	},
	{
		Time:          "09:30",
		Style:         models.StyleRestorative,
		Name:          "Gentle Restore",
		NameEs:        "Restauración Suave",
		Description:   "Slow, nurturing practice with extended holds",
		DescriptionEs: "Práctica lenta y nutritiva con posturas prolongadas",
		Duration:      60,
		Level:         models.LevelBeginner,
		Price:         priceGroupRestorative,
	},
	{
		Time:          "12:00",
		Style:         models.StylePower,
		Name:          "Power Yoga",
		NameEs:        "Yoga de Poder",
		Description:   "Dynamic, strength-building practice",
		DescriptionEs: "Práctica dinámica para fortalecer el cuerpo",
		Duration:      60,
		Level:         models.LevelIntermediate,
		Price:         priceGroupPower,
	},
	{
		Time:          "17:30",
		Style:         models.StyleYin,
		Name:          "Sunset Yin",
		NameEs:        "Yin al Atardecer",
		Description:   "Deep stretching and meditation as the sun sets",
		DescriptionEs: "Estiramiento profundo y meditación al atardecer",
		Duration:      90,
		Level:         models.LevelAll,
		Price:         priceGroupYin,
	},
	{
		Time:          "19:00",
		Style:         models.StyleKundalini,
		Name:          "Kundalini Awakening",
		NameEs:        "Despertar Kundalini",
		Description:   "Energy work, breathwork, and kriyas",
		DescriptionEs: "Trabajo energético, pranayama y kriyas",
		Duration:      90,
		Level:         models.LevelAdvanced,
		Price:         priceGroupKundalini,
	},
}

var privateTimes = []string{"08:30", "10:30", "14:00", "16:00"}

// enrollmentCounter reads the current enrollment of a slot.
type enrollmentCounter interface {
	EnrolledCount(ctx context.Context, classID string) (int, error)
}

// CatalogService materializes bookable slots from the weekly timetable. Slots
// are never persisted; identity is derived from date, time and type, and the
// enrollment count is joined in from the booking store on every read.
type CatalogService struct {
	counts        enrollmentCounter
	groupCapacity int
	logger        *zap.Logger
}

// NewCatalogService constructs the catalog. groupCapacity values above the
// studio room size are clamped.
func NewCatalogService(counts enrollmentCounter, groupCapacity int, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if groupCapacity <= 0 || groupCapacity > maxGroupCapacity {
		groupCapacity = maxGroupCapacity
	}
	return &CatalogService{counts: counts, groupCapacity: groupCapacity, logger: logger}
}

// SlotsForDate returns every slot of one calendar date ordered by start time:
// the five group classes interleaved with the four private session windows.
func (s *CatalogService) SlotsForDate(ctx context.Context, date string) ([]models.Slot, error) {
	slots := make([]models.Slot, 0, len(groupSchedule)+len(privateTimes))

	for _, tmpl := range groupSchedule {
		slot, err := s.buildGroupSlot(ctx, date, tmpl)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	for _, timeOfDay := range privateTimes {
		slot, err := s.buildPrivateSlot(ctx, date, timeOfDay)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	sortSlotsByTime(slots)
	return slots, nil
}

// FindSlot resolves a slot id back to its slot. Malformed ids return
// INVALID_CLASS_ID; well-formed ids that match no timetable entry return
// CLASS_NOT_FOUND.
func (s *CatalogService) FindSlot(ctx context.Context, classID string) (*models.Slot, error) {
	date, ok := models.ClassIDDate(classID)
	if !ok {
		return nil, appErrors.ErrInvalidClassID
	}

	slots, err := s.SlotsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == classID {
			return &slots[i], nil
		}
	}
	return nil, appErrors.ErrClassNotFound
}

func (s *CatalogService) buildGroupSlot(ctx context.Context, date string, tmpl templateSlot) (models.Slot, error) {
	id := models.SlotID(date, tmpl.Time, models.ClassTypeGroup)
	enrolled, err := s.enrolled(ctx, id)
	if err != nil {
		return models.Slot{}, err
	}
	return models.Slot{
		ID:            id,
		Date:          date,
		Time:          tmpl.Time,
		Type:          models.ClassTypeGroup,
		Style:         tmpl.Style,
		Name:          tmpl.Name,
		NameEs:        tmpl.NameEs,
		Description:   tmpl.Description,
		DescriptionEs: tmpl.DescriptionEs,
		Instructor:    defaultInstructor,
		Level:         tmpl.Level,
		Location:      defaultLocation,
		Capacity:      s.groupCapacity,
		Enrolled:      enrolled,
		Price:         tmpl.Price,
		Duration:      tmpl.Duration,
	}, nil
}

func (s *CatalogService) buildPrivateSlot(ctx context.Context, date, timeOfDay string) (models.Slot, error) {
	id := models.SlotID(date, timeOfDay, models.ClassTypePrivate)
	enrolled, err := s.enrolled(ctx, id)
	if err != nil {
		return models.Slot{}, err
	}
	return models.Slot{
		ID:            id,
		Date:          date,
		Time:          timeOfDay,
		Type:          models.ClassTypePrivate,
		Style:         models.StylePrivate,
		Name:          "Private Session",
		NameEs:        "Sesión Privada",
		Description:   "Personalized one-on-one practice with Tata",
		DescriptionEs: "Práctica personalizada uno a uno con Tata",
		Instructor:    defaultInstructor,
		Level:         models.LevelAll,
		Location:      defaultLocation,
		Capacity:      privateCapacity,
		Enrolled:      enrolled,
		Price:         pricePrivateSession,
		Duration:      60,
	}, nil
}

func (s *CatalogService) enrolled(ctx context.Context, classID string) (int, error) {
	if s.counts == nil {
		return 0, nil
	}
	enrolled, err := s.counts.EnrolledCount(ctx, classID)
	if err != nil {
		return 0, fmt.Errorf("enrollment for %s: %w", classID, err)
	}
	return enrolled, nil
}

// sortSlotsByTime orders slots by their "HH:MM" start; the fixed timetable
// never has ties across types at the same time.
func sortSlotsByTime(slots []models.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})
}
