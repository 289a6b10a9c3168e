// File: services/availability/generator.go
package availability

import (
	"time"

	"docnet/models"
)

// DateFormat is the calendar-date layout used across the API.
const DateFormat = "2006-01-02"

// GenerateSlots expands one day of a doctor's weekly template into concrete
// slot candidates for the given date, in ascending start-time order.
//
// Candidates step from startTime in duration-sized increments. A candidate
// overlapping the break window at all is dropped whole (the walk resumes at
// breakEnd), and no candidate may run past endTime, so a window that the
// duration does not divide evenly simply leaves the remainder unused.
func GenerateSlots(doctorID string, date time.Time, day models.DaySchedule, duration int) []models.Slot {
	if !day.Available || day.StartTime == nil || day.EndTime == nil || duration <= 0 {
		return nil
	}

	start := *day.StartTime
	end := *day.EndTime
	dateStr := date.Format(DateFormat)

	var slots []models.Slot
	step := models.MinuteTime(duration)

	for current := start; current+step <= end; {
		if day.HasBreak() && current < *day.BreakEndTime && current+step > *day.BreakStartTime {
			current = *day.BreakEndTime
			continue
		}

		slots = append(slots, models.Slot{
			DoctorID:  doctorID,
			Date:      dateStr,
			StartTime: current,
			EndTime:   current + step,
			Available: true,
		})
		current += step
	}

	return slots
}

// GenerateForDate resolves the template day matching the date's weekday and
// expands it. A closed or missing day yields no slots.
func GenerateForDate(doctorID string, date time.Time, av *models.Availability) []models.Slot {
	if av == nil {
		return nil
	}
	day := av.DayFor(models.DayOfWeekFromWeekday(date.Weekday()))
	if day == nil {
		return nil
	}
	return GenerateSlots(doctorID, date, *day, av.SlotDuration)
}
