package handlers

import (
	"net/http"

	"docnet/middleware"
	"docnet/models"
	"docnet/services/appointment"
	"docnet/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves the booking lifecycle endpoints.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
}

// BookAppointmentHandler books a slot for the calling patient. The slot is
// bound atomically; a concurrent booking of the same slot gets a conflict.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.Appointments.Book(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Appointment requested", appt)
}

// ApproveAppointmentHandler confirms a pending appointment.
func (h *AppointmentHandler) ApproveAppointmentHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	appt, err := h.Appointments.Approve(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment approved", appt)
}

// RejectAppointmentHandler declines a pending appointment and frees its slot.
// The reason travels as a query parameter.
func (h *AppointmentHandler) RejectAppointmentHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	appt, err := h.Appointments.Reject(c.Request.Context(), principal, c.Param("id"), c.Query("reason"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment rejected", appt)
}

// CancelAppointmentHandler cancels an appointment and frees its slot.
// Patients must provide a reason in the body.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req struct {
		Reason string `json:"reason"`
	}
	// The body is optional for doctors, so a bind failure is not fatal.
	_ = c.ShouldBindJSON(&req)

	appt, err := h.Appointments.Cancel(c.Request.Context(), principal, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment cancelled", appt)
}

// CompleteAppointmentHandler marks a scheduled appointment as done.
func (h *AppointmentHandler) CompleteAppointmentHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	appt, err := h.Appointments.Complete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Appointment completed", appt)
}

// GetAppointmentByIDHandler returns one appointment to either of its parties.
func (h *AppointmentHandler) GetAppointmentByIDHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	appt, err := h.Appointments.GetByID(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", appt)
}

// MyAppointmentsHandler pages through the calling patient's appointments.
func (h *AppointmentHandler) MyAppointmentsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page, size := pageParams(c)
	result, err := h.Appointments.PatientAppointments(c.Request.Context(), principal, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", result)
}

// DoctorAppointmentsHandler pages through the calling doctor's appointments,
// optionally filtered by status.
func (h *AppointmentHandler) DoctorAppointmentsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page, size := pageParams(c)

	var status *models.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AppointmentStatus(raw)
		if !s.IsValid() {
			utils.JSONError(c, http.StatusBadRequest, "unknown appointment status")
			return
		}
		status = &s
	}

	result, err := h.Appointments.DoctorAppointments(c.Request.Context(), principal, status, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", result)
}

// DoctorPendingHandler pages through appointments awaiting the doctor's
// approval.
func (h *AppointmentHandler) DoctorPendingHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	page, size := pageParams(c)

	pending := models.StatusPendingApproval
	result, err := h.Appointments.DoctorAppointments(c.Request.Context(), principal, &pending, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", result)
}
