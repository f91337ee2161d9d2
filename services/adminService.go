package services

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"BayHospital/utils"
	"context"
	"time"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	DoctorsCount          int64 `json:"doctors_count"`
	SchedulesThisWeek     int64 `json:"schedules_this_week"`
	AppointmentsThisMonth int64 `json:"appointments_this_month"`
}

type AdminService struct {
	admins       *repositories.AdminRepository
	doctors      *repositories.DoctorRepository
	schedules    *repositories.ScheduleRepository
	appointments *repositories.AppointmentRepository
}

func NewAdminService(admins *repositories.AdminRepository, doctors *repositories.DoctorRepository, schedules *repositories.ScheduleRepository, appointments *repositories.AppointmentRepository) *AdminService {
	return &AdminService{admins: admins, doctors: doctors, schedules: schedules, appointments: appointments}
}

// Login verifies the admin credentials and issues a token pair. Unknown
// username and wrong password fail identically.
func (s *AdminService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if !utils.CheckPassword(admin.PasswordHash, password) {
		return "", "", models.ErrInvalidCredentials
	}
	return utils.GenerateAdminTokens(admin.Username)
}

// Stats aggregates the dashboard counters: total doctors, slots scheduled
// this week (Monday-based), active bookings created this month.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()

	doctorsCount, err := s.doctors.Count(ctx)
	if err != nil {
		return nil, err
	}

	weekStart := startOfWeek(now)
	schedulesThisWeek, err := s.schedules.CountBetween(ctx, weekStart, weekStart.Add(7*24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	appointmentsThisMonth, err := s.appointments.CountActiveCreatedBetween(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		DoctorsCount:          doctorsCount,
		SchedulesThisWeek:     schedulesThisWeek,
		AppointmentsThisMonth: appointmentsThisMonth,
	}, nil
}

// startOfWeek returns the Monday midnight (UTC) of the given time's week.
func startOfWeek(t time.Time) time.Time {
	day := repositories.DayStart(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
