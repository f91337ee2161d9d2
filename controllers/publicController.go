package controllers

import (
	"BayHospital/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes registers the unauthenticated patient-facing API.
func SetupPublicRoutes(router *gin.Engine, departmentHandler *handlers.DepartmentHandler, doctorHandler *handlers.DoctorHandler, scheduleHandler *handlers.ScheduleHandler, bookingHandler *handlers.BookingHandler) {
	public := router.Group("/api/public")

	public.GET("/departments", departmentHandler.GetAllDepartments)
	public.GET("/doctors", doctorHandler.GetAllDoctors)
	public.GET("/doctors/:id", doctorHandler.GetDoctorByID)

	public.GET("/schedules", scheduleHandler.GetPublicSchedules)
	public.GET("/schedules/overview", scheduleHandler.GetScheduleOverview)

	public.POST("/appointments", bookingHandler.CreateAppointment)
	public.POST("/appointments/lookup", bookingHandler.LookupAppointments)
	public.POST("/appointments/:appointment_id/cancel", bookingHandler.CancelAppointment)
	public.POST("/appointments/:appointment_id/reschedule", bookingHandler.RescheduleAppointment)
}
