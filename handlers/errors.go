package handlers

import (
	"BayHospital/middlewares"
	"BayHospital/models"
	"BayHospital/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// respondError maps a domain error onto its stable machine-readable code.
// Every conflict keeps a distinct code so the client can present a
// specific remedy; anything unexpected degrades to UNKNOWN_ERROR.
func respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, models.ErrScheduleNotFound):
		middlewares.HttpError(c, "SCHEDULE_NOT_FOUND", http.StatusNotFound, nil)
	case errors.Is(err, models.ErrScheduleFull):
		middlewares.HttpError(c, "SCHEDULE_FULL", http.StatusConflict, nil)
	case errors.Is(err, models.ErrDuplicateAppointment):
		middlewares.HttpError(c, "DUPLICATE_APPOINTMENT", http.StatusConflict, nil)
	case errors.Is(err, models.ErrAppointmentNotFound):
		middlewares.HttpError(c, "NOT_FOUND", http.StatusNotFound, nil)
	case errors.Is(err, models.ErrForbidden):
		middlewares.HttpError(c, "FORBIDDEN", http.StatusForbidden, nil)
	case errors.Is(err, models.ErrHasActiveAppointments):
		middlewares.HttpError(c, "HAS_ACTIVE_APPOINTMENTS", http.StatusConflict, nil)
	case errors.Is(err, models.ErrInvalidCapacity):
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, nil)
	case errors.Is(err, models.ErrDoctorNotFound):
		middlewares.HttpError(c, "DOCTOR_NOT_FOUND", http.StatusNotFound, nil)
	case errors.Is(err, models.ErrInvalidCredentials):
		middlewares.HttpError(c, "INVALID_CREDENTIALS", http.StatusUnauthorized, nil)
	case errors.Is(err, utils.ErrInvalidDate):
		middlewares.HttpError(c, "INVALID_DATE", http.StatusBadRequest, nil)
	case errors.As(err, &validationErrs):
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
	default:
		middlewares.HttpError(c, "UNKNOWN_ERROR", http.StatusInternalServerError, err)
	}
}
