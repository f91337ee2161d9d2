package handlers

import (
	"BayHospital/middlewares"
	"BayHospital/repositories"
	"BayHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type patientPayload struct {
	Name      string `json:"name"`
	IDNumber  string `json:"idNumber"`
	BirthDate string `json:"birthDate"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type admitRequest struct {
	ScheduleID string         `json:"scheduleId"`
	Patient    patientPayload `json:"patient"`
}

type identityRequest struct {
	IDNumber string `json:"idNumber"`
	Phone    string `json:"phone"`
}

type rescheduleRequest struct {
	IDNumber      string `json:"idNumber"`
	Phone         string `json:"phone"`
	NewScheduleID string `json:"newScheduleId"`
}

// CreateAppointment admits a patient into a slot.
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	var req admitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}

	appointment, err := h.service.Admit(c.Request.Context(), req.ScheduleID, repositories.PatientInfo{
		Name:      req.Patient.Name,
		IDNumber:  req.Patient.IDNumber,
		BirthDate: req.Patient.BirthDate,
		Phone:     req.Patient.Phone,
		Email:     req.Patient.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointment": appointment}, http.StatusOK)
}

// CancelAppointment cancels a booking after the identity gate. Idempotent.
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	appointmentID := c.Param("appointment_id")

	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}

	identity := repositories.PatientIdentity{IDNumber: req.IDNumber, Phone: req.Phone}
	if err := h.service.Cancel(c.Request.Context(), appointmentID, identity); err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"ok": true}, http.StatusOK)
}

// RescheduleAppointment moves a booking to another slot.
func (h *BookingHandler) RescheduleAppointment(c *gin.Context) {
	appointmentID := c.Param("appointment_id")

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}

	identity := repositories.PatientIdentity{IDNumber: req.IDNumber, Phone: req.Phone}
	appointment, err := h.service.Reschedule(c.Request.Context(), appointmentID, identity, req.NewScheduleID)
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointment": appointment}, http.StatusOK)
}

// LookupAppointments returns the caller's booking history.
func (h *BookingHandler) LookupAppointments(c *gin.Context) {
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}

	identity := repositories.PatientIdentity{IDNumber: req.IDNumber, Phone: req.Phone}
	appointments, err := h.service.Lookup(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"appointments": appointments}, http.StatusOK)
}
