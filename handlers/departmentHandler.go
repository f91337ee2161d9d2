package handlers

import (
	"BayHospital/middlewares"
	"BayHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	service *services.DepartmentService
}

func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

func (h *DepartmentHandler) GetAllDepartments(c *gin.Context) {
	departments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"departments": departments}, http.StatusOK)
}
