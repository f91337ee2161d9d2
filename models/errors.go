package models

import "errors"

// Domain errors. Each one maps to exactly one machine-readable code at the
// HTTP boundary; repositories and services return these verbatim so no
// layer has to parse error text.
var (
	ErrScheduleNotFound      = errors.New("schedule not found or unavailable")
	ErrScheduleFull          = errors.New("schedule is at capacity")
	ErrDuplicateAppointment  = errors.New("patient already holds an active appointment in this schedule")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrForbidden             = errors.New("patient identity does not match")
	ErrHasActiveAppointments = errors.New("schedule day has active appointments")
	ErrInvalidCapacity       = errors.New("max patients must be at least 1")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)
