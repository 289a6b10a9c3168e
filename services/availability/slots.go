// File: services/availability/slots.go
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docnet/models"
	"docnet/utils"

	"go.uber.org/zap"
)

// DefaultSlotCacheTTL bounds how stale a cached open-slot listing may get
// when no TTL is configured.
const DefaultSlotCacheTTL = 60 * time.Second

func (s *DefaultAvailabilityService) cacheTTL() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return DefaultSlotCacheTTL
}

func slotCacheKey(doctorID, date string) string {
	return utils.SlotCachePrefix + doctorID + ":" + date
}

// ListSlots returns all of a doctor's slots for one date, ascending by start
// time. Listings are cached briefly; every mutation path invalidates.
func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, doctorID, date string) ([]models.Slot, error) {
	key := slotCacheKey(doctorID, date)
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var cached []models.Slot
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	slots, err := s.SlotRepo.GetByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, key, raw, s.cacheTTL()).Err(); err != nil {
				utils.GetLogger().Debug("slot cache set failed", zap.Error(err))
			}
		}
	}
	return slots, nil
}

// DeleteSlot removes one free slot after checking the caller owns it.
func (s *DefaultAvailabilityService) DeleteSlot(ctx context.Context, principal models.Principal, slotID string) error {
	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if err := s.authorizeDoctor(ctx, principal, slot.DoctorID); err != nil {
		return err
	}
	if err := s.SlotRepo.DeleteFree(ctx, slotID); err != nil {
		return err
	}
	s.invalidateSlotCacheDate(ctx, slot.DoctorID, slot.Date)
	return nil
}

// BulkDeleteSlots removes the caller's free slots among slotIDs: booked ones
// are skipped and reported back rather than failing the whole request.
func (s *DefaultAvailabilityService) BulkDeleteSlots(ctx context.Context, principal models.Principal, slotIDs []string) (*models.BulkDeleteResult, error) {
	doc, err := s.DoctorRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.SlotRepo.DeleteFreeByIDs(ctx, doc.ID, slotIDs)
	if err != nil {
		return nil, fmt.Errorf("bulk delete failed: %w", err)
	}

	gone := make(map[string]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}
	var skipped []string
	for _, id := range slotIDs {
		if !gone[id] {
			skipped = append(skipped, id)
		}
	}

	s.invalidateSlotCache(ctx, doc.ID)
	return &models.BulkDeleteResult{Deleted: len(deleted), SkippedIDs: skipped}, nil
}

// authorizeDoctor resolves the caller to their doctor profile and verifies
// ownership of the target.
func (s *DefaultAvailabilityService) authorizeDoctor(ctx context.Context, principal models.Principal, doctorID string) error {
	if !principal.IsDoctor() {
		return ErrNotSlotOwner
	}
	doc, err := s.DoctorRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return err
	}
	if doc.ID != doctorID {
		return ErrNotSlotOwner
	}
	return nil
}

// invalidateSlotCache drops every cached listing for the doctor.
func (s *DefaultAvailabilityService) invalidateSlotCache(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	pattern := utils.SlotCachePrefix + doctorID + ":*"
	keys, err := s.Cache.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) invalidateSlotCacheDate(ctx context.Context, doctorID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, slotCacheKey(doctorID, date)).Err(); err != nil {
		utils.GetLogger().Debug("slot cache invalidation failed", zap.Error(err))
	}
}
