package handlers

import (
	"BayHospital/middlewares"
	"BayHospital/models"
	"BayHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}
	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctor": doctor}, http.StatusCreated)
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	doctor, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctor": doctor}, http.StatusOK)
}

func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context(), c.Query("departmentId"))
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctors": doctors}, http.StatusOK)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		middlewares.HttpError(c, "INVALID_BODY", http.StatusBadRequest, err)
		return
	}
	doctor.ID = c.Param("id")

	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"doctor": doctor}, http.StatusOK)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"ok": true}, http.StatusOK)
}
