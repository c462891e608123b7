package models

import (
	"regexp"
	"strings"
)

// ClassType distinguishes shared-capacity classes from one-on-one sessions.
type ClassType string

const (
	ClassTypeGroup   ClassType = "group"
	ClassTypePrivate ClassType = "private"
)

// YogaStyle is the practice style taught in a slot.
type YogaStyle string

const (
	StyleVinyasa     YogaStyle = "vinyasa"
	StyleHatha       YogaStyle = "hatha"
	StyleYin         YogaStyle = "yin"
	StyleKundalini   YogaStyle = "kundalini"
	StyleRestorative YogaStyle = "restorative"
	StylePower       YogaStyle = "power"
	StylePrivate     YogaStyle = "private"
)

// Level is the practice level a slot is aimed at.
type Level string

const (
	LevelAll          Level = "all"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Slot is a single bookable occurrence of a class or private session on a
// specific date. Slots are derived on every read from the weekly template
// plus the current enrollment count; they are never persisted.
type Slot struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Type          ClassType `json:"type"`
	Style         YogaStyle `json:"style"`
	Name          string    `json:"name"`
	NameEs        string    `json:"nameEs"`
	Description   string    `json:"description"`
	DescriptionEs string    `json:"descriptionEs"`
	Instructor    string    `json:"instructor"`
	Level         Level     `json:"level"`
	Location      string    `json:"location"`
	Capacity      int       `json:"capacity"`
	Enrolled      int       `json:"enrolled"`
	Price         int       `json:"price"`
	Duration      int       `json:"duration"`
}

// classIDDatePattern extracts the leading calendar date from a slot id.
var classIDDatePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-\d{4}-(group|private)$`)

// SlotID builds the deterministic identifier for a slot. It is stable and
// reconstructible from its parts, so lookups never need a database.
// Example: SlotID("2024-06-01", "07:00", ClassTypeGroup) == "2024-06-01-0700-group".
func SlotID(date, timeOfDay string, classType ClassType) string {
	return date + "-" + strings.ReplaceAll(timeOfDay, ":", "") + "-" + string(classType)
}

// ClassIDDate returns the calendar date encoded in a slot id, reporting
// whether the id has the expected shape.
func ClassIDDate(classID string) (string, bool) {
	match := classIDDatePattern.FindStringSubmatch(classID)
	if match == nil {
		return "", false
	}
	return match[1], true
}
