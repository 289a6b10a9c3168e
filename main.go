package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docnet/config"
	"docnet/cron"
	"docnet/database"
	appointmentRepoPkg "docnet/database/repository/appointment"
	doctorRepoPkg "docnet/database/repository/doctor"
	slotRepoPkg "docnet/database/repository/slot"
	"docnet/handlers"
	"docnet/routes"
	"docnet/services/appointment"
	"docnet/services/availability"
	"docnet/services/doctor"
	"docnet/services/notification"
	"docnet/services/tasks"
	"docnet/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	apptRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	notifier := &notification.LogNotificationService{}

	asynqClient := cron.NewClient()
	defer asynqClient.Close()
	reminders := &tasks.AsynqReminderScheduler{Client: asynqClient}

	availabilityService := &availability.DefaultAvailabilityService{
		DoctorRepo:  docRepo,
		SlotRepo:    slotRepo,
		Cache:       utils.GetCacheClient(),
		HorizonDays: config.AppConfig.SlotHorizonDays,
		CacheTTL:    time.Duration(config.AppConfig.SlotCacheTTLSecs) * time.Second,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:       apptRepo,
		SlotRepo:   slotRepo,
		DoctorRepo: docRepo,
		Notifier:   notifier,
		Reminders:  reminders,
		Cache:      utils.GetCacheClient(),
	}

	doctorService := &doctor.DefaultDoctorService{Repo: docRepo}

	// handlers.
	doctorHandler := &handlers.DoctorHandler{
		Doctors:      doctorService,
		Availability: availabilityService,
	}
	appointmentHandler := &handlers.AppointmentHandler{Appointments: appointmentService}
	slotHandler := &handlers.SlotHandler{Availability: availabilityService}

	routes.RegisterRoutes(router, doctorHandler, appointmentHandler, slotHandler)

	// Background worker: reminders, horizon extension, elapsed sweep.
	worker := &cron.Worker{
		ApptRepo:     apptRepo,
		Availability: availabilityService,
		Notifier:     notifier,
	}
	worker.Start()

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
