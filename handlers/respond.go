package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	appointmentRepo "docnet/database/repository/appointment"
	doctorRepo "docnet/database/repository/doctor"
	slotRepo "docnet/database/repository/slot"
	"docnet/models"
	"docnet/services/appointment"
	"docnet/services/availability"
	"docnet/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates service and repository errors into HTTP statuses
// and the standard envelope. Messages sent to the client come from the
// error types themselves, which are written to be user-safe; anything
// unrecognized is logged and masked.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var slotUnavailable *appointment.SlotUnavailableError
	var invalidTransition *appointment.InvalidStateTransitionError
	var unauthorized *appointment.UnauthorizedError
	var reasonRequired *appointment.ReasonRequiredError

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &reasonRequired):
		utils.JSONError(c, http.StatusBadRequest, reasonRequired.Error())
	case errors.As(err, &slotUnavailable):
		utils.JSONError(c, http.StatusConflict, slotUnavailable.Error())
	case errors.As(err, &invalidTransition):
		utils.JSONError(c, http.StatusConflict, invalidTransition.Error())
	case errors.Is(err, slotRepo.ErrSlotBooked), errors.Is(err, slotRepo.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "the time slot is already booked")
	case errors.As(err, &unauthorized), errors.Is(err, availability.ErrNotSlotOwner):
		utils.JSONError(c, http.StatusForbidden, "not allowed to perform this action")
	case errors.Is(err, slotRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "slot not found")
	case errors.Is(err, doctorRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "doctor not found")
	case errors.Is(err, appointmentRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found")
	case errors.Is(err, context.DeadlineExceeded):
		utils.JSONError(c, http.StatusGatewayTimeout, "the request timed out, please retry")
	default:
		utils.GetLogger().Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

// pageParams reads ?page= and ?size= with the portal's defaults.
func pageParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}
	return page, size
}
