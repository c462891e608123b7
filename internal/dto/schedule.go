package dto

import "github.com/tu-wellness/booking-api/internal/models"

// DaySchedule is the single-date listing payload.
type DaySchedule struct {
	Date         string        `json:"date"`
	Classes      []models.Slot `json:"classes"`
	TotalClasses int           `json:"totalClasses"`
}

// DayEntry pairs a date with its (past-filtered) slots inside a range reply.
type DayEntry struct {
	Date    string        `json:"date"`
	Classes []models.Slot `json:"classes"`
}

// RangeSchedule is the date-range listing payload.
type RangeSchedule struct {
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Schedules []DayEntry `json:"schedules"`
	TotalDays int        `json:"totalDays"`
}
