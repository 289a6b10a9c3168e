package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"docnet/config"
	appointmentRepo "docnet/database/repository/appointment"
	"docnet/models"
	"docnet/services/availability"
	"docnet/services/notification"
	"docnet/services/tasks"
	"docnet/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker bundles the background side of the scheduler: the asynq server
// consuming reminder tasks and the periodic entries that keep the slot
// window and appointment statuses current.
type Worker struct {
	ApptRepo     appointmentRepo.AppointmentRepository
	Availability availability.AvailabilityService
	Notifier     notification.NotificationService
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewClient returns an asynq client on the shared queue, for enqueuing
// reminders from the request path.
func NewClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// Start runs the async worker and the periodic scheduler in background.
func (w *Worker) Start() {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, w.handleReminder)
	mux.HandleFunc(tasks.TypeReminderSweep, w.handleReminderSweep)
	mux.HandleFunc(tasks.TypeExtendSlots, w.handleExtendSlots)
	mux.HandleFunc(tasks.TypeCompleteElapsed, w.handleCompleteElapsed)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] failed to start async worker: %v", err)
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Location: time.Local})
	// Daily at 01:00: extend the rolling slot window.
	if _, err := scheduler.Register("0 1 * * *", asynq.NewTask(tasks.TypeExtendSlots, nil)); err != nil {
		log.Fatalf("[Worker] failed to register slot extension job: %v", err)
	}
	// Daily at 09:00: batch reminder fallback for tomorrow's visits.
	if _, err := scheduler.Register("0 9 * * *", asynq.NewTask(tasks.TypeReminderSweep, nil)); err != nil {
		log.Fatalf("[Worker] failed to register reminder sweep job: %v", err)
	}
	// Daily at 02:00: mark elapsed scheduled appointments completed.
	if _, err := scheduler.Register("0 2 * * *", asynq.NewTask(tasks.TypeCompleteElapsed, nil)); err != nil {
		log.Fatalf("[Worker] failed to register appointment sweep job: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Worker] failed to start scheduler: %v", err)
		}
	}()
}

// handleReminder delivers one queued appointment reminder, skipping
// appointments that left the SCHEDULED state since the task was enqueued.
func (w *Worker) handleReminder(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	appt, err := w.ApptRepo.GetByID(ctx, payload.AppointmentID)
	if err != nil {
		// The appointment may have been cancelled and cleaned up; nothing to do.
		utils.GetLogger().Debug("reminder target missing", zap.String("appointmentId", payload.AppointmentID))
		return nil
	}
	if appt.Status != models.StatusScheduled || appt.ReminderSentAt != nil {
		return nil
	}

	if err := w.Notifier.AppointmentReminder(ctx, appt); err != nil {
		return err
	}
	now := time.Now()
	appt.ReminderSentAt = &now
	return w.ApptRepo.Save(ctx, appt)
}

// handleReminderSweep is the batch fallback behind the per-appointment
// reminder tasks: approvals that happened after their reminder would have
// fired get caught here the morning before the visit.
func (w *Worker) handleReminderSweep(ctx context.Context, _ *asynq.Task) error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(availability.DateFormat)
	due, err := w.ApptRepo.FindByDateAndStatus(ctx, tomorrow, models.StatusScheduled)
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	for i := range due {
		appt := &due[i]
		if appt.ReminderSentAt != nil {
			continue
		}
		if err := w.Notifier.AppointmentReminder(ctx, appt); err != nil {
			logger.Warn("reminder delivery failed",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		now := time.Now()
		appt.ReminderSentAt = &now
		if err := w.ApptRepo.Save(ctx, appt); err != nil {
			logger.Warn("failed to record reminder delivery",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	return nil
}

func (w *Worker) handleExtendSlots(ctx context.Context, _ *asynq.Task) error {
	return w.Availability.ExtendHorizon(ctx)
}

// handleCompleteElapsed closes out scheduled appointments whose date has
// passed. Completion keeps the slot bound; past slots are history, not
// inventory.
func (w *Worker) handleCompleteElapsed(ctx context.Context, _ *asynq.Task) error {
	today := time.Now().Format(availability.DateFormat)
	elapsed, err := w.ApptRepo.FindScheduledBefore(ctx, today)
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	for i := range elapsed {
		appt := &elapsed[i]
		appt.Status = models.StatusCompleted
		if err := w.ApptRepo.Save(ctx, appt); err != nil {
			logger.Warn("failed to complete elapsed appointment",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
	}
	if len(elapsed) > 0 {
		logger.Info("completed elapsed appointments", zap.Int("count", len(elapsed)))
	}
	return nil
}
