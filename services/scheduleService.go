package services

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"BayHospital/utils"
	"context"
	"time"
)

// ScheduleWithOccupancy pairs a slot with its derived live occupancy.
type ScheduleWithOccupancy struct {
	models.Schedule
	CurrentPatients int64 `json:"current_patients"`
}

type ScheduleService struct {
	schedules *repositories.ScheduleRepository
}

func NewScheduleService(schedules *repositories.ScheduleRepository) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

// ListByDoctor returns a doctor's slots with occupancy. The public view
// only shows available slots from today onward; the admin view shows
// everything in the requested range.
func (s *ScheduleService) ListByDoctor(ctx context.Context, doctorID string, from, to *time.Time, publicView bool) ([]ScheduleWithOccupancy, error) {
	if publicView && from == nil {
		today := repositories.DayStart(time.Now())
		from = &today
	}

	schedules, err := s.schedules.ListByDoctor(ctx, doctorID, from, to, publicView)
	if err != nil {
		return nil, err
	}
	return s.withOccupancy(ctx, schedules)
}

// Overview lists available slots across doctors in the range, defaulting
// to the coming week, optionally filtered by department.
func (s *ScheduleService) Overview(ctx context.Context, from, to *time.Time, departmentID string) ([]ScheduleWithOccupancy, error) {
	start := repositories.DayStart(time.Now())
	if from != nil {
		start = *from
	}
	end := start.Add(7 * 24 * time.Hour)
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, utils.ErrInvalidDate
	}

	schedules, err := s.schedules.Overview(ctx, start, end, departmentID)
	if err != nil {
		return nil, err
	}
	return s.withOccupancy(ctx, schedules)
}

// Upcoming returns the next few slots for the admin dashboard.
func (s *ScheduleService) Upcoming(ctx context.Context, limit int) ([]ScheduleWithOccupancy, error) {
	schedules, err := s.schedules.Upcoming(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.withOccupancy(ctx, schedules)
}

// ReplaceDay validates the specs and swaps the doctor's day.
func (s *ScheduleService) ReplaceDay(ctx context.Context, doctorID string, day time.Time, specs map[string]repositories.SlotSpec) error {
	if err := utils.ValidateSlotSpecs(specs); err != nil {
		return err
	}
	return s.schedules.ReplaceDay(ctx, doctorID, day, specs)
}

func (s *ScheduleService) withOccupancy(ctx context.Context, schedules []models.Schedule) ([]ScheduleWithOccupancy, error) {
	ids := make([]string, len(schedules))
	for i, schedule := range schedules {
		ids[i] = schedule.ID
	}

	counts, err := s.schedules.OccupancyMap(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]ScheduleWithOccupancy, len(schedules))
	for i, schedule := range schedules {
		result[i] = ScheduleWithOccupancy{Schedule: schedule, CurrentPatients: counts[schedule.ID]}
	}
	return result, nil
}
