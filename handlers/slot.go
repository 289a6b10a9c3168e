package handlers

import (
	"net/http"
	"time"

	"docnet/middleware"
	"docnet/services/availability"
	"docnet/utils"

	"github.com/gin-gonic/gin"
)

// SlotHandler serves the slot inventory endpoints.
type SlotHandler struct {
	Availability availability.AvailabilityService
}

// ListSlotsHandler lists a doctor's slots for one calendar date. Patients
// use it to pick a time; doctors to review their day.
func (h *SlotHandler) ListSlotsHandler(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "doctorId and date are required")
		return
	}
	if _, err := time.Parse(availability.DateFormat, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	slots, err := h.Availability.ListSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", slots)
}

// DeleteSlotHandler removes a single free slot owned by the calling doctor.
func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	if err := h.Availability.DeleteSlot(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slot deleted", nil)
}

// BulkDeleteSlotsHandler removes the free slots among the given IDs and
// reports the booked ones it skipped.
func (h *SlotHandler) BulkDeleteSlotsHandler(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var req struct {
		SlotIDs []string `json:"slotIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.SlotIDs) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "slotIds must be a non-empty list")
		return
	}

	result, err := h.Availability.BulkDeleteSlots(c.Request.Context(), principal, req.SlotIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Slots deleted", result)
}
