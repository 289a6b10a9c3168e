package models

import (
	"encoding/json"
	"testing"
)

func mt(h, m int) MinuteTime   { return MinuteTime(h*60 + m) }
func mtp(h, m int) *MinuteTime { v := mt(h, m); return &v }

func openDay(d DayOfWeek) DaySchedule {
	return DaySchedule{DayOfWeek: d, Available: true, StartTime: mtp(9, 0), EndTime: mtp(17, 0)}
}

func fullWeek() Availability {
	av := Availability{SlotDuration: 30}
	for _, d := range WeekDays {
		av.WeekSchedule = append(av.WeekSchedule, openDay(d))
	}
	return av
}

func TestMinuteTimeJSON(t *testing.T) {
	raw, err := json.Marshal(mt(9, 5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"09:05"` {
		t.Fatalf("expected \"09:05\", got %s", raw)
	}

	var parsed MinuteTime
	if err := json.Unmarshal([]byte(`"13:45"`), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed != mt(13, 45) {
		t.Fatalf("expected 825, got %d", parsed)
	}

	if err := json.Unmarshal([]byte(`"25:00"`), &parsed); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
	if err := json.Unmarshal([]byte(`"nine"`), &parsed); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	av := Availability{
		WeekSchedule: []DaySchedule{
			{DayOfWeek: Monday, Available: true}, // no times given
		},
	}
	av.Normalize()

	day := av.DayFor(Monday)
	if day.StartTime == nil || *day.StartTime != mt(9, 0) {
		t.Fatalf("expected default start 09:00, got %v", day.StartTime)
	}
	if *day.EndTime != mt(17, 0) {
		t.Fatalf("expected default end 17:00, got %v", *day.EndTime)
	}
	if *day.BreakStartTime != mt(13, 0) || *day.BreakEndTime != mt(14, 0) {
		t.Fatal("expected default lunch break 13:00-14:00")
	}
	if av.SlotDuration != DefaultSlotDuration {
		t.Fatalf("expected default slot duration %d, got %d", DefaultSlotDuration, av.SlotDuration)
	}
}

func TestNormalizeClearsUnavailableDay(t *testing.T) {
	av := Availability{
		SlotDuration: 30,
		WeekSchedule: []DaySchedule{
			{DayOfWeek: Sunday, Available: false, StartTime: mtp(9, 0), EndTime: mtp(17, 0)},
		},
	}
	av.Normalize()

	day := av.DayFor(Sunday)
	if day.StartTime != nil || day.EndTime != nil || day.BreakStartTime != nil || day.BreakEndTime != nil {
		t.Fatal("unavailable day must have all time fields cleared")
	}
}

func TestNormalizeDropsZeroLengthBreak(t *testing.T) {
	av := fullWeek()
	day := av.DayFor(Monday)
	day.BreakStartTime = mtp(12, 0)
	day.BreakEndTime = mtp(12, 0)

	av.Normalize()
	if av.DayFor(Monday).HasBreak() {
		t.Fatal("zero-length break should be treated as no break")
	}
	if av.DayFor(Monday).BreakStartTime != nil {
		t.Fatal("zero-length break fields should be cleared")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Availability)
		wantErr bool
	}{
		{"valid full week", func(av *Availability) {}, false},
		{"valid with break", func(av *Availability) {
			d := av.DayFor(Tuesday)
			d.BreakStartTime = mtp(13, 0)
			d.BreakEndTime = mtp(14, 0)
		}, false},
		{"zero duration", func(av *Availability) { av.SlotDuration = 0 }, true},
		{"six days only", func(av *Availability) { av.WeekSchedule = av.WeekSchedule[:6] }, true},
		{"duplicate day", func(av *Availability) { av.WeekSchedule[1].DayOfWeek = Monday }, true},
		{"unknown day", func(av *Availability) { av.WeekSchedule[0].DayOfWeek = "FUNDAY" }, true},
		{"start after end", func(av *Availability) {
			d := av.DayFor(Monday)
			d.StartTime = mtp(18, 0)
		}, true},
		{"start equals end", func(av *Availability) {
			d := av.DayFor(Monday)
			d.EndTime = mtp(9, 0)
		}, true},
		{"half break pair", func(av *Availability) {
			av.DayFor(Monday).BreakStartTime = mtp(13, 0)
		}, true},
		{"break outside hours", func(av *Availability) {
			d := av.DayFor(Monday)
			d.BreakStartTime = mtp(8, 0)
			d.BreakEndTime = mtp(10, 0)
		}, true},
		{"inverted break", func(av *Availability) {
			d := av.DayFor(Monday)
			d.BreakStartTime = mtp(14, 0)
			d.BreakEndTime = mtp(13, 0)
		}, true},
		{"unavailable with hours", func(av *Availability) {
			av.WeekSchedule[6] = DaySchedule{DayOfWeek: Sunday, Available: false, StartTime: mtp(9, 0)}
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			av := fullWeek()
			tc.mutate(&av)
			err := av.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewPageArithmetic(t *testing.T) {
	p := NewPage(nil, 0, 10, 25)
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 25/10, got %d", p.TotalPages)
	}
	if p.TotalElements != 25 {
		t.Fatalf("expected 25 elements, got %d", p.TotalElements)
	}
	if empty := NewPage(nil, 0, 10, 0); empty.TotalPages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", empty.TotalPages)
	}
	if exact := NewPage(nil, 0, 10, 30); exact.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 30/10, got %d", exact.TotalPages)
	}
}
