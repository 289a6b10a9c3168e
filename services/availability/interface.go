// File: services/availability/interface.go
package availability

import (
	"context"
	"sync"
	"time"

	doctorRepo "docnet/database/repository/doctor"
	slotRepo "docnet/database/repository/slot"
	"docnet/models"

	"github.com/go-redis/redis/v8"
)

// AvailabilityService owns the weekly template and the concrete slot set
// derived from it: saving a schedule, regenerating the forward window, and
// the doctor-facing slot listing and delete operations.
type AvailabilityService interface {
	// UpdateAvailability validates and persists the weekly template, then
	// reconciles the forward slot window against it. Booked slots are never
	// touched; ones the new template would drop are reported as conflicts.
	UpdateAvailability(ctx context.Context, doctorID string, av models.Availability) (*models.RegenerationReport, error)

	// SaveSchedule validates and persists the template without regenerating.
	SaveSchedule(ctx context.Context, doctorID string, av models.Availability) error

	// ExtendHorizon tops up the rolling forward window for every doctor that
	// carries a template. Run daily.
	ExtendHorizon(ctx context.Context) error

	ListSlots(ctx context.Context, doctorID, date string) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, principal models.Principal, slotID string) error
	BulkDeleteSlots(ctx context.Context, principal models.Principal, slotIDs []string) (*models.BulkDeleteResult, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	DoctorRepo  doctorRepo.DoctorRepository
	SlotRepo    slotRepo.SlotRepository
	Cache       *redis.Client
	HorizonDays int
	CacheTTL    time.Duration

	// regeneration is serialized per doctor so a double-submitted schedule
	// save cannot race itself into duplicate slots
	doctorLocks sync.Map // doctorID -> *sync.Mutex
}

func (s *DefaultAvailabilityService) lockDoctor(doctorID string) *sync.Mutex {
	mu, _ := s.doctorLocks.LoadOrStore(doctorID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
