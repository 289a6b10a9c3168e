package routes

import (
	"net/http"
	"time"

	"docnet/handlers"
	"docnet/middleware"
	"docnet/models"
	"docnet/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers doctor profile and slot generation endpoints.
func RegisterDoctorRoutes(r *gin.Engine, dh *handlers.DoctorHandler) {
	api := r.Group("/api/doctors")
	{
		// Public endpoints for patients browsing doctors.
		api.GET("/search", dh.SearchDoctorsHandler)
		api.GET("/:id", dh.GetDoctorByIDHandler)

		// The doctor's own profile and schedule management.
		me := api.Group("/me")
		me.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleDoctor))
		me.GET("", dh.GetMyProfileHandler)
		me.PUT("", dh.UpdateMyProfileHandler)
		me.POST("/generate-slots", dh.GenerateSlotsHandler)
	}
}

// RegisterAppointmentRoutes registers slot listing and the booking lifecycle.
func RegisterAppointmentRoutes(r *gin.Engine, ah *handlers.AppointmentHandler, sh *handlers.SlotHandler) {
	api := r.Group("/api/appointments")
	{
		// Slot listing is public; patients browse before authenticating.
		api.GET("/slots", sh.ListSlotsHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware())

		doctorOnly := authed.Group("")
		doctorOnly.Use(middleware.RequireRole(models.RoleDoctor))
		doctorOnly.DELETE("/slots/bulk", sh.BulkDeleteSlotsHandler)
		doctorOnly.DELETE("/slots/:id", sh.DeleteSlotHandler)
		doctorOnly.PUT("/:id/approve", ah.ApproveAppointmentHandler)
		doctorOnly.PUT("/:id/reject", ah.RejectAppointmentHandler)
		doctorOnly.PUT("/:id/complete", ah.CompleteAppointmentHandler)
		doctorOnly.GET("/doctor/pending", ah.DoctorPendingHandler)
		doctorOnly.GET("/doctor/appointments", ah.DoctorAppointmentsHandler)

		patientOnly := authed.Group("")
		patientOnly.Use(middleware.RequireRole(models.RolePatient))
		patientOnly.POST("", ah.BookAppointmentHandler)
		patientOnly.GET("/my-appointments", ah.MyAppointmentsHandler)

		// Either party may cancel or read a single appointment.
		authed.PUT("/:id/cancel", ah.CancelAppointmentHandler)
		authed.GET("/:id", ah.GetAppointmentByIDHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, dh *handlers.DoctorHandler, ah *handlers.AppointmentHandler, sh *handlers.SlotHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterDoctorRoutes(r, dh)
	RegisterAppointmentRoutes(r, ah, sh)
	RegisterHealthRoute(r)
}
