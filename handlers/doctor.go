package handlers

import (
	"net/http"

	"docnet/middleware"
	"docnet/models"
	"docnet/services/availability"
	"docnet/services/doctor"
	"docnet/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves doctor profile and slot generation endpoints.
type DoctorHandler struct {
	Doctors      doctor.DoctorService
	Availability availability.AvailabilityService
}

// GetDoctorByIDHandler returns a doctor's public profile, availability included.
func (h *DoctorHandler) GetDoctorByIDHandler(c *gin.Context) {
	doc, err := h.Doctors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", doc)
}

// GetMyProfileHandler returns the authenticated doctor's own profile.
func (h *DoctorHandler) GetMyProfileHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	doc, err := h.Doctors.GetByUserID(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", doc)
}

// UpdateMyProfileHandler saves profile fields and, when present, the weekly
// availability template. Saving validates the template but does not touch
// slots; the portal follows up with the generate-slots endpoint.
func (h *DoctorHandler) UpdateMyProfileHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req models.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Doctors.UpdateProfile(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Profile updated", doc)
}

// GenerateSlotsHandler regenerates the forward slot window from the saved
// weekly template and reports what changed.
func (h *DoctorHandler) GenerateSlotsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	doc, err := h.Doctors.GetByUserID(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if doc.Availability == nil {
		utils.JSONError(c, http.StatusBadRequest, "no availability schedule has been set")
		return
	}

	report, err := h.Availability.UpdateAvailability(c.Request.Context(), doc.ID, *doc.Availability)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slots generated", report)
}

// SearchDoctorsHandler is the patient-facing paginated doctor search.
func (h *DoctorHandler) SearchDoctorsHandler(c *gin.Context) {
	page, size := pageParams(c)
	result, err := h.Doctors.Search(c.Request.Context(),
		c.Query("specialization"), c.Query("city"), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", result)
}
