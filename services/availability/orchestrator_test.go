package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	slotRepo "docnet/database/repository/slot"
	"docnet/models"
)

// fakeSlotRepo is an in-memory SlotRepository whose guards mirror the mongo
// implementation: deletes refuse booked slots and the bind is a mutex-held
// check-and-set.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
	seq   int
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*models.Slot)}
}

func (f *fakeSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, s := range slots {
		f.seq++
		s.ID = fmt.Sprintf("slot-%d", f.seq)
		copied := s
		f.slots[s.ID] = &copied
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, slotID string) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSlotRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date == date {
			out = append(out, *s)
		}
	}
	// The mongo repo sorts by start time; listings depend on that.
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeSlotRepo) GetByDoctorDateStart(ctx context.Context, doctorID, date string, start models.MinuteTime) (*models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date == date && s.StartTime == start {
			copied := *s
			return &copied, nil
		}
	}
	return nil, slotRepo.ErrNotFound
}

func (f *fakeSlotRepo) DeleteFree(ctx context.Context, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return slotRepo.ErrNotFound
	}
	if s.Booked() {
		return slotRepo.ErrSlotBooked
	}
	delete(f.slots, slotID)
	return nil
}

func (f *fakeSlotRepo) DeleteFreeByIDs(ctx context.Context, doctorID string, ids []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted []string
	for _, id := range ids {
		s, ok := f.slots[id]
		if !ok || s.DoctorID != doctorID || s.Booked() {
			continue
		}
		delete(f.slots, id)
		deleted = append(deleted, id)
	}
	return deleted, nil
}

func (f *fakeSlotRepo) BindAppointment(ctx context.Context, slotID, appointmentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotID]
	if !ok {
		return slotRepo.ErrNotFound
	}
	if !s.Available {
		return slotRepo.ErrSlotUnavailable
	}
	s.Available = false
	s.AppointmentID = appointmentID
	return nil
}

func (f *fakeSlotRepo) Release(ctx context.Context, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[slotID]; ok {
		s.Available = true
		s.AppointmentID = ""
	}
	return nil
}

func (f *fakeSlotRepo) all() []models.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Slot
	for _, s := range f.slots {
		out = append(out, *s)
	}
	return out
}

// fakeDoctorRepo is the minimal DoctorRepository the availability service
// touches.
type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func newFakeDoctorRepo(docs ...*models.Doctor) *fakeDoctorRepo {
	f := &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, d := range docs {
		f.doctors[d.ID] = d
	}
	return f
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, fmt.Errorf("doctor %s not seeded", doctorID)
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, fmt.Errorf("no doctor for user %s", userID)
}

func (f *fakeDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doctors[doctor.ID] = doctor
	return nil
}

func (f *fakeDoctorRepo) SetAvailability(ctx context.Context, doctorID string, availability *models.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.doctors[doctorID]; ok {
		d.Availability = availability
	}
	return nil
}

func (f *fakeDoctorRepo) Search(ctx context.Context, specialization, city string, page, size int) ([]models.Doctor, int64, error) {
	return nil, 0, nil
}

func (f *fakeDoctorRepo) ListWithAvailability(ctx context.Context) ([]models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Doctor
	for _, d := range f.doctors {
		if d.Availability != nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

func allDaysOpen(start, end models.MinuteTime, duration int) models.Availability {
	av := models.Availability{SlotDuration: duration}
	for _, d := range models.WeekDays {
		s, e := start, end
		av.WeekSchedule = append(av.WeekSchedule, models.DaySchedule{
			DayOfWeek: d, Available: true, StartTime: &s, EndTime: &e,
		})
	}
	return av
}

func newTestService(horizon int) (*DefaultAvailabilityService, *fakeSlotRepo, *fakeDoctorRepo) {
	slots := newFakeSlotRepo()
	doctors := newFakeDoctorRepo(&models.Doctor{ID: "doc-1", UserID: "user-1", AcceptingPatients: true})
	svc := &DefaultAvailabilityService{
		DoctorRepo:  doctors,
		SlotRepo:    slots,
		HorizonDays: horizon,
	}
	return svc, slots, doctors
}

func TestUpdateAvailabilityGeneratesWindow(t *testing.T) {
	svc, slots, _ := newTestService(3)
	av := allDaysOpen(mt(9, 0), mt(10, 0), 30) // 2 slots per day

	report, err := svc.UpdateAvailability(context.Background(), "doc-1", av)
	if err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if report.SlotsAdded != 6 {
		t.Fatalf("expected 6 slots over a 3-day window, got %d", report.SlotsAdded)
	}
	if report.SlotsRemoved != 0 || len(report.Conflicts) != 0 {
		t.Fatalf("fresh generation should remove nothing: %+v", report)
	}
	if got := len(slots.all()); got != 6 {
		t.Fatalf("expected 6 stored slots, got %d", got)
	}
}

func TestUpdateAvailabilityIsIdempotent(t *testing.T) {
	svc, slots, _ := newTestService(3)
	av := allDaysOpen(mt(9, 0), mt(10, 0), 30)

	if _, err := svc.UpdateAvailability(context.Background(), "doc-1", av); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := len(slots.all())

	report, err := svc.UpdateAvailability(context.Background(), "doc-1", av)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.SlotsAdded != 0 || report.SlotsRemoved != 0 || len(report.Conflicts) != 0 {
		t.Fatalf("re-running the same template must be a no-op, got %+v", report)
	}
	if got := len(slots.all()); got != before {
		t.Fatalf("slot count changed from %d to %d on identical rerun", before, got)
	}
}

func TestUpdateAvailabilityPreservesBookedAndReportsConflicts(t *testing.T) {
	svc, slots, _ := newTestService(2)
	ctx := context.Background()

	if _, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(9, 0), mt(10, 0), 30)); err != nil {
		t.Fatalf("initial generation: %v", err)
	}

	// Book one of tomorrow's slots.
	tomorrow := time.Now().AddDate(0, 0, 1).Format(DateFormat)
	booked, err := slots.GetByDoctorDateStart(ctx, "doc-1", tomorrow, mt(9, 0))
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if err := slots.BindAppointment(ctx, booked.ID, "appt-1"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	// The new working hours no longer cover 09:00.
	report, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(10, 0), mt(11, 0), 30))
	if err != nil {
		t.Fatalf("regeneration: %v", err)
	}

	if len(report.Conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d", len(report.Conflicts))
	}
	if report.Conflicts[0].SlotID != booked.ID {
		t.Fatalf("conflict should name the booked slot, got %+v", report.Conflicts[0])
	}

	// The booked slot survives, still bound; every free 09:00-10:00 slot is gone.
	kept, err := slots.GetByID(ctx, booked.ID)
	if err != nil {
		t.Fatalf("booked slot was deleted: %v", err)
	}
	if kept.Available || kept.AppointmentID != "appt-1" {
		t.Fatalf("booked slot binding was disturbed: %+v", kept)
	}
	for _, s := range slots.all() {
		if s.ID == booked.ID {
			continue
		}
		if s.StartTime < mt(10, 0) {
			t.Fatalf("free slot outside the new hours survived: %+v", s)
		}
	}
	// 3 free old slots removed (2 days x 2 slots minus the booked one).
	if report.SlotsRemoved != 3 {
		t.Fatalf("expected 3 removals, got %d", report.SlotsRemoved)
	}
	if report.SlotsAdded != 4 {
		t.Fatalf("expected 4 additions for the new hours, got %d", report.SlotsAdded)
	}
}

func TestUpdateAvailabilityReplacesSlotsOnDurationChange(t *testing.T) {
	svc, slots, _ := newTestService(1)
	ctx := context.Background()

	if _, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(9, 0), mt(11, 0), 30)); err != nil {
		t.Fatalf("initial generation: %v", err)
	}
	if got := len(slots.all()); got != 4 {
		t.Fatalf("expected 4 half-hour slots, got %d", got)
	}

	// Same hours, hour-long slots now. Every stored half-hour slot is stale.
	report, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(9, 0), mt(11, 0), 60))
	if err != nil {
		t.Fatalf("duration change: %v", err)
	}
	if report.SlotsRemoved != 4 {
		t.Fatalf("expected all 4 stale slots removed, got %d", report.SlotsRemoved)
	}
	if report.SlotsAdded != 2 {
		t.Fatalf("expected 2 hour slots added, got %d", report.SlotsAdded)
	}
	for _, s := range slots.all() {
		if s.EndTime-s.StartTime != 60 {
			t.Fatalf("stale slot %s-%s survived the duration change", s.StartTime, s.EndTime)
		}
	}
}

func TestDurationChangeKeepsBookedSlotAndSuppressesOverlap(t *testing.T) {
	svc, slots, _ := newTestService(1)
	ctx := context.Background()

	if _, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(9, 0), mt(11, 0), 30)); err != nil {
		t.Fatalf("initial generation: %v", err)
	}
	today := time.Now().Format(DateFormat)
	booked, err := slots.GetByDoctorDateStart(ctx, "doc-1", today, mt(9, 0))
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if err := slots.BindAppointment(ctx, booked.ID, "appt-1"); err != nil {
		t.Fatalf("bind: %v", err)
	}

	report, err := svc.UpdateAvailability(ctx, "doc-1", allDaysOpen(mt(9, 0), mt(11, 0), 60))
	if err != nil {
		t.Fatalf("duration change: %v", err)
	}

	// The booked 09:00-09:30 slot no longer matches any hour-long candidate.
	if len(report.Conflicts) != 1 || report.Conflicts[0].SlotID != booked.ID {
		t.Fatalf("expected the booked slot as the sole conflict, got %+v", report.Conflicts)
	}
	kept, err := slots.GetByID(ctx, booked.ID)
	if err != nil {
		t.Fatalf("booked slot was deleted: %v", err)
	}
	if kept.Available || kept.AppointmentID != "appt-1" || kept.EndTime != mt(9, 30) {
		t.Fatalf("booked slot was disturbed: %+v", kept)
	}

	// No hour slot may be created at 09:00 while the booked slot holds that
	// start; only the 10:00 candidate lands.
	if _, err := slots.GetByDoctorDateStart(ctx, "doc-1", today, mt(10, 0)); err != nil {
		t.Fatalf("expected the 10:00 hour slot: %v", err)
	}
	if report.SlotsAdded != 1 {
		t.Fatalf("expected 1 addition, got %d", report.SlotsAdded)
	}
	if report.SlotsRemoved != 3 {
		t.Fatalf("expected the 3 free half-hour slots removed, got %d", report.SlotsRemoved)
	}
	if got := len(slots.all()); got != 2 {
		t.Fatalf("expected the booked slot plus one hour slot, got %d", got)
	}
}

func TestUpdateAvailabilitySerializesPerDoctor(t *testing.T) {
	svc, slots, _ := newTestService(3)
	av := allDaysOpen(mt(9, 0), mt(10, 0), 30)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.UpdateAvailability(context.Background(), "doc-1", av); err != nil {
				t.Errorf("concurrent update: %v", err)
			}
		}()
	}
	wg.Wait()

	// Concurrent identical submissions must not duplicate slots.
	seen := make(map[string]bool)
	for _, s := range slots.all() {
		key := s.Date + "/" + s.StartTime.String()
		if seen[key] {
			t.Fatalf("duplicate slot generated for %s", key)
		}
		seen[key] = true
	}
	if got := len(slots.all()); got != 6 {
		t.Fatalf("expected 6 slots, got %d", got)
	}
}

func TestExtendHorizonTopsUpEmptyDatesOnly(t *testing.T) {
	svc, slots, doctors := newTestService(2)
	ctx := context.Background()
	av := allDaysOpen(mt(9, 0), mt(10, 0), 30)

	if _, err := svc.UpdateAvailability(ctx, "doc-1", av); err != nil {
		t.Fatalf("initial generation: %v", err)
	}

	// Doctor hand-prunes one of today's slots; top-up must not restore it.
	today := time.Now().Format(DateFormat)
	pruned, err := slots.GetByDoctorDateStart(ctx, "doc-1", today, mt(9, 0))
	if err != nil {
		t.Fatalf("seed lookup: %v", err)
	}
	if err := slots.DeleteFree(ctx, pruned.ID); err != nil {
		t.Fatalf("prune: %v", err)
	}

	// A second doctor with a template but no slots yet gets a full window.
	fresh := &models.Doctor{ID: "doc-2", UserID: "user-2", Availability: &av}
	doctors.doctors["doc-2"] = fresh

	if err := svc.ExtendHorizon(ctx); err != nil {
		t.Fatalf("ExtendHorizon: %v", err)
	}

	if _, err := slots.GetByDoctorDateStart(ctx, "doc-1", today, mt(9, 0)); err == nil {
		t.Fatal("top-up restored a hand-pruned slot on a non-empty date")
	}
	freshSlots, err := slots.GetByDoctorAndDate(ctx, "doc-2", today)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(freshSlots) != 2 {
		t.Fatalf("expected the new doctor's empty date to be filled with 2 slots, got %d", len(freshSlots))
	}
}

func TestUpdateAvailabilityRejectsInvalidTemplate(t *testing.T) {
	svc, _, _ := newTestService(2)

	av := allDaysOpen(mt(9, 0), mt(10, 0), 30)
	av.WeekSchedule = av.WeekSchedule[:5]

	_, err := svc.UpdateAvailability(context.Background(), "doc-1", av)
	if err == nil {
		t.Fatal("expected a validation error for a five-day template")
	}
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
