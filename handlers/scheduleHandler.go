package handlers

import (
	"BayHospital/middlewares"
	"BayHospital/repositories"
	"BayHospital/services"
	"BayHospital/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service *services.ScheduleService
}

func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

type replaceDayRequest struct {
	DoctorID string                           `json:"doctorId"`
	DateISO  string                           `json:"dateISO"`
	Slots    map[string]repositories.SlotSpec `json:"slots"`
}

// GetPublicSchedules lists a doctor's bookable slots with live occupancy.
func (h *ScheduleHandler) GetPublicSchedules(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, nil)
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	schedules, err := h.service.ListByDoctor(c.Request.Context(), doctorID, from, to, true)
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"schedules": schedules}, http.StatusOK)
}

// GetScheduleOverview lists bookable slots across doctors, optionally
// filtered by department.
func (h *ScheduleHandler) GetScheduleOverview(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	schedules, err := h.service.Overview(c.Request.Context(), from, to, c.Query("departmentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"schedules": schedules}, http.StatusOK)
}

// GetAdminSchedules lists all of a doctor's slots, unavailable included.
func (h *ScheduleHandler) GetAdminSchedules(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, nil)
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	schedules, err := h.service.ListByDoctor(c.Request.Context(), doctorID, from, to, false)
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"schedules": schedules}, http.StatusOK)
}

// ReplaceDay swaps the full slot set of one doctor's day.
func (h *ScheduleHandler) ReplaceDay(c *gin.Context) {
	var req replaceDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}
	if req.DoctorID == "" {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, nil)
		return
	}

	day, err := utils.ParseDateISO(req.DateISO)
	if err != nil {
		middlewares.HttpError(c, "INVALID_DATE", http.StatusBadRequest, nil)
		return
	}

	if err := h.service.ReplaceDay(c.Request.Context(), req.DoctorID, day, req.Slots); err != nil {
		respondError(c, err)
		return
	}

	if admin, err := middlewares.ExtractAdminFromContext(c.Request.Context()); err == nil {
		log.Printf("Schedule day %s/%s replaced by %s", req.DoctorID, req.DateISO, admin)
	}
	middlewares.RespondJSON(c, gin.H{"ok": true}, http.StatusOK)
}

// GetUpcomingSchedules returns the next slots for the admin dashboard.
func (h *ScheduleHandler) GetUpcomingSchedules(c *gin.Context) {
	schedules, err := h.service.Upcoming(c.Request.Context(), 5)
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"schedules": schedules}, http.StatusOK)
}

// parseRange reads the optional from/to query bounds.
func parseRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := utils.ParseDateISO(v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := utils.ParseDateISO(v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
