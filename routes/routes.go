package routes

import (
	"BayHospital/cache"
	"BayHospital/config"
	"BayHospital/controllers"
	"BayHospital/handlers"
	"BayHospital/middlewares"
	"BayHospital/repositories"
	"BayHospital/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration; the middleware
	// defaults cover this API's method and header set.
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedCORSOrigins,
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	departmentRepo := repositories.NewDepartmentRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	scheduleRepo := repositories.NewScheduleRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	adminRepo := repositories.NewAdminRepository()

	departmentService := services.NewDepartmentService(departmentRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	scheduleService := services.NewScheduleService(scheduleRepo)
	bookingService := services.NewBookingService(appointmentRepo, scheduleRepo, doctorRepo)
	adminService := services.NewAdminService(adminRepo, doctorRepo, scheduleRepo, appointmentRepo)

	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Register routes
	controllers.SetupPublicRoutes(router, departmentHandler, doctorHandler, scheduleHandler, bookingHandler)
	controllers.SetupAdminRoutes(router, adminHandler, doctorHandler, scheduleHandler)
	controllers.SetupRootRoute(router)

	return router
}
