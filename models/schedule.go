package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MinuteTime is a local time-of-day stored as minutes from midnight
// (e.g., 540 for 9:00 AM). It marshals as "HH:MM" in JSON.
type MinuteTime int

func (m MinuteTime) Hour() int   { return int(m) / 60 }
func (m MinuteTime) Minute() int { return int(m) % 60 }

func (m MinuteTime) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

func (m MinuteTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MinuteTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteTime(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMinuteTime parses "HH:MM" (24-hour) into a MinuteTime.
func ParseMinuteTime(s string) (MinuteTime, error) {
	var h, min int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &min); err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return MinuteTime(h*60 + min), nil
}

func mtPtr(m MinuteTime) *MinuteTime { return &m }

// DayOfWeek matches the upper-case day names used throughout the API.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// WeekDays lists all seven days in schedule order, Monday first.
var WeekDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOfWeekFromWeekday converts a time.Weekday to the API enum.
func DayOfWeekFromWeekday(wd time.Weekday) DayOfWeek {
	return DayOfWeek(strings.ToUpper(wd.String()))
}

func (d DayOfWeek) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// DaySchedule is one day's entry in a doctor's weekly availability template.
// When Available is false all four time fields must be nil.
type DaySchedule struct {
	DayOfWeek      DayOfWeek   `bson:"dayOfWeek" json:"dayOfWeek"`
	Available      bool        `bson:"available" json:"available"`
	StartTime      *MinuteTime `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime        *MinuteTime `bson:"endTime,omitempty" json:"endTime,omitempty"`
	BreakStartTime *MinuteTime `bson:"breakStartTime,omitempty" json:"breakStartTime,omitempty"`
	BreakEndTime   *MinuteTime `bson:"breakEndTime,omitempty" json:"breakEndTime,omitempty"`
}

// HasBreak reports whether the day carries a non-empty break window.
func (d DaySchedule) HasBreak() bool {
	return d.BreakStartTime != nil && d.BreakEndTime != nil && *d.BreakStartTime < *d.BreakEndTime
}

// Availability is a doctor's recurring weekly template plus slot length.
type Availability struct {
	WeekSchedule []DaySchedule `bson:"weekSchedule" json:"weekSchedule"`
	SlotDuration int           `bson:"slotDuration" json:"slotDuration"` // minutes
}

// Default business-hours template applied when a day is switched on
// without explicit times.
const (
	defaultStartTime    = MinuteTime(9 * 60)     // 09:00
	defaultEndTime      = MinuteTime(17 * 60)    // 17:00
	defaultBreakStart   = MinuteTime(13 * 60)    // 13:00
	defaultBreakEnd     = MinuteTime(13*60 + 60) // 14:00
	DefaultSlotDuration = 30
)

// DayFor resolves the template entry for the given day, or nil if absent.
func (a *Availability) DayFor(day DayOfWeek) *DaySchedule {
	for i := range a.WeekSchedule {
		if a.WeekSchedule[i].DayOfWeek == day {
			return &a.WeekSchedule[i]
		}
	}
	return nil
}

// Normalize enforces the shape the rest of the core relies on: unavailable
// days get their time fields cleared, newly-available days without times get
// the business-hours default, and a zero SlotDuration falls back to 30.
func (a *Availability) Normalize() {
	for i := range a.WeekSchedule {
		day := &a.WeekSchedule[i]
		if !day.Available {
			day.StartTime = nil
			day.EndTime = nil
			day.BreakStartTime = nil
			day.BreakEndTime = nil
			continue
		}
		if day.StartTime == nil || day.EndTime == nil {
			day.StartTime = mtPtr(defaultStartTime)
			day.EndTime = mtPtr(defaultEndTime)
			day.BreakStartTime = mtPtr(defaultBreakStart)
			day.BreakEndTime = mtPtr(defaultBreakEnd)
		}
		// A zero-length break means no break at all.
		if day.BreakStartTime != nil && day.BreakEndTime != nil && *day.BreakStartTime == *day.BreakEndTime {
			day.BreakStartTime = nil
			day.BreakEndTime = nil
		}
	}
	if a.SlotDuration == 0 {
		a.SlotDuration = DefaultSlotDuration
	}
}

// ValidationError reports a malformed availability template.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the weekly template invariants. Callers should Normalize
// first; Validate does not trust them to have done so and re-checks the
// unavailable-day rule anyway.
func (a *Availability) Validate() error {
	if a.SlotDuration <= 0 {
		return &ValidationError{Field: "slotDuration", Message: "must be a positive number of minutes"}
	}
	if len(a.WeekSchedule) != len(WeekDays) {
		return &ValidationError{Field: "weekSchedule", Message: "must contain exactly seven days"}
	}
	seen := make(map[DayOfWeek]bool, len(WeekDays))
	for _, day := range a.WeekSchedule {
		if !day.DayOfWeek.IsValid() {
			return &ValidationError{Field: "weekSchedule", Message: fmt.Sprintf("unknown day %q", day.DayOfWeek)}
		}
		if seen[day.DayOfWeek] {
			return &ValidationError{Field: "weekSchedule", Message: fmt.Sprintf("duplicate day %s", day.DayOfWeek)}
		}
		seen[day.DayOfWeek] = true

		if err := day.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d DaySchedule) validate() error {
	field := strings.ToLower(string(d.DayOfWeek))

	if !d.Available {
		if d.StartTime != nil || d.EndTime != nil || d.BreakStartTime != nil || d.BreakEndTime != nil {
			return &ValidationError{Field: field, Message: "unavailable day must not carry working hours"}
		}
		return nil
	}

	if d.StartTime == nil || d.EndTime == nil {
		return &ValidationError{Field: field, Message: "available day requires startTime and endTime"}
	}
	if *d.StartTime >= *d.EndTime {
		return &ValidationError{Field: field, Message: "startTime must be before endTime"}
	}

	// Break fields come in pairs.
	if (d.BreakStartTime == nil) != (d.BreakEndTime == nil) {
		return &ValidationError{Field: field, Message: "breakStartTime and breakEndTime must be set together"}
	}
	if d.BreakStartTime != nil {
		if *d.BreakStartTime >= *d.BreakEndTime {
			return &ValidationError{Field: field, Message: "breakStartTime must be before breakEndTime"}
		}
		if *d.BreakStartTime < *d.StartTime || *d.BreakEndTime > *d.EndTime {
			return &ValidationError{Field: field, Message: "break window must fall within working hours"}
		}
	}
	return nil
}
