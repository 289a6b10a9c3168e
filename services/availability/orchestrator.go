// File: services/availability/orchestrator.go
package availability

import (
	"context"
	"fmt"
	"time"

	"docnet/models"
	"docnet/utils"

	"go.uber.org/zap"
)

func (s *DefaultAvailabilityService) SaveSchedule(ctx context.Context, doctorID string, av models.Availability) error {
	av.Normalize()
	if err := av.Validate(); err != nil {
		return err
	}
	if err := s.DoctorRepo.SetAvailability(ctx, doctorID, &av); err != nil {
		return fmt.Errorf("failed to persist schedule: %w", err)
	}
	return nil
}

func (s *DefaultAvailabilityService) UpdateAvailability(ctx context.Context, doctorID string, av models.Availability) (*models.RegenerationReport, error) {
	av.Normalize()
	if err := av.Validate(); err != nil {
		return nil, err
	}

	mu := s.lockDoctor(doctorID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.DoctorRepo.SetAvailability(ctx, doctorID, &av); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}

	report := &models.RegenerationReport{}
	today := time.Now()
	for i := 0; i < s.horizon(); i++ {
		date := today.AddDate(0, 0, i)
		if err := s.reconcileDate(ctx, doctorID, date, &av, report); err != nil {
			return nil, err
		}
	}

	utils.GetLogger().Info("availability regenerated",
		zap.String("doctorId", doctorID),
		zap.Int("added", report.SlotsAdded),
		zap.Int("removed", report.SlotsRemoved),
		zap.Int("conflicts", len(report.Conflicts)))

	s.invalidateSlotCache(ctx, doctorID)
	return report, nil
}

// reconcileDate diffs the generated candidates for one date against the
// stored slots, keyed on the full [start, end) interval so a slot-duration
// change replaces stale free slots instead of keeping them. Free slots that
// no longer match a candidate are removed, missing candidates are created,
// and booked slots are left exactly as they are: when the new template
// would not generate a booked slot's interval it goes into the conflict
// list instead of being dropped, and no candidate is inserted on top of its
// start.
func (s *DefaultAvailabilityService) reconcileDate(ctx context.Context, doctorID string, date time.Time, av *models.Availability, report *models.RegenerationReport) error {
	type interval struct {
		start, end models.MinuteTime
	}

	candidates := GenerateForDate(doctorID, date, av)
	wanted := make(map[interval]bool, len(candidates))
	for _, c := range candidates {
		wanted[interval{c.StartTime, c.EndTime}] = true
	}

	existing, err := s.SlotRepo.GetByDoctorAndDate(ctx, doctorID, date.Format(DateFormat))
	if err != nil {
		return err
	}

	// Starts still taken after the free-slot cleanup. A kept slot owns its
	// start exclusively: the doctor+date+start index allows no second slot
	// there.
	occupied := make(map[models.MinuteTime]bool, len(existing))
	for _, slot := range existing {
		if wanted[interval{slot.StartTime, slot.EndTime}] {
			occupied[slot.StartTime] = true
			continue
		}
		if slot.Booked() {
			occupied[slot.StartTime] = true
			report.Conflicts = append(report.Conflicts, models.SlotRef{
				SlotID:    slot.ID,
				Date:      slot.Date,
				StartTime: slot.StartTime,
			})
			continue
		}
		if err := s.SlotRepo.DeleteFree(ctx, slot.ID); err != nil {
			return err
		}
		report.SlotsRemoved++
	}

	var missing []models.Slot
	for _, c := range candidates {
		if !occupied[c.StartTime] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		if _, err := s.SlotRepo.CreateMany(ctx, missing); err != nil {
			return err
		}
		report.SlotsAdded += len(missing)
	}
	return nil
}

// ExtendHorizon keeps the rolling window populated: for each doctor it fills
// any date in the window missing its generated slots. Existing slots, booked
// or free, are left alone.
func (s *DefaultAvailabilityService) ExtendHorizon(ctx context.Context) error {
	doctors, err := s.DoctorRepo.ListWithAvailability(ctx)
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	today := time.Now()
	for _, doc := range doctors {
		if doc.Availability == nil {
			continue
		}
		mu := s.lockDoctor(doc.ID)
		mu.Lock()
		report := &models.RegenerationReport{}
		for i := 0; i < s.horizon(); i++ {
			if err := s.topUpDate(ctx, doc.ID, today.AddDate(0, 0, i), doc.Availability, report); err != nil {
				mu.Unlock()
				return fmt.Errorf("horizon top-up for doctor failed: %w", err)
			}
		}
		mu.Unlock()

		if report.SlotsAdded > 0 {
			logger.Info("slot horizon extended", zap.String("doctorId", doc.ID), zap.Int("added", report.SlotsAdded))
			s.invalidateSlotCache(ctx, doc.ID)
		}
	}
	return nil
}

// topUpDate adds missing candidates only; it never removes anything, so a
// schedule the doctor has hand-pruned keeps its gaps until the next explicit
// regeneration.
func (s *DefaultAvailabilityService) topUpDate(ctx context.Context, doctorID string, date time.Time, av *models.Availability, report *models.RegenerationReport) error {
	candidates := GenerateForDate(doctorID, date, av)
	if len(candidates) == 0 {
		return nil
	}

	existing, err := s.SlotRepo.GetByDoctorAndDate(ctx, doctorID, date.Format(DateFormat))
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if _, err := s.SlotRepo.CreateMany(ctx, candidates); err != nil {
		return err
	}
	report.SlotsAdded += len(candidates)
	return nil
}

func (s *DefaultAvailabilityService) horizon() int {
	if s.HorizonDays > 0 {
		return s.HorizonDays
	}
	return 30
}
