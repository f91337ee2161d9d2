package controllers

import (
	"BayHospital/handlers"
	"BayHospital/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the back-office API. Everything except login
// sits behind the admin token gate.
func SetupAdminRoutes(router *gin.Engine, adminHandler *handlers.AdminHandler, doctorHandler *handlers.DoctorHandler, scheduleHandler *handlers.ScheduleHandler) {
	router.POST("/api/admin/login", adminHandler.Login)

	admin := router.Group("/api/admin")
	admin.Use(middlewares.AdminAuthMiddleware())

	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/upcoming", scheduleHandler.GetUpcomingSchedules)

	admin.GET("/schedules", scheduleHandler.GetAdminSchedules)
	admin.PUT("/schedules/replace", scheduleHandler.ReplaceDay)

	admin.POST("/doctors", doctorHandler.CreateDoctor)
	admin.PUT("/doctors/:id", doctorHandler.UpdateDoctor)
	admin.DELETE("/doctors/:id", doctorHandler.DeleteDoctor)
}
