package repositories

import (
	"BayHospital/cache"
	"BayHospital/database"
	"BayHospital/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ScheduleCacheExpiry = 5 * time.Minute

	// Windows sort in clinic order, not alphabetically.
	windowOrder = "CASE time_slot WHEN 'Morning' THEN 0 WHEN 'Afternoon' THEN 1 WHEN 'Evening' THEN 2 ELSE 3 END"
)

// SlotSpec describes one time window of a replacement day.
type SlotSpec struct {
	Active bool   `json:"active"`
	Max    int    `json:"max"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type ScheduleRepository struct {
	cache *cache.Cache
}

func NewScheduleRepository(cache *cache.Cache) *ScheduleRepository {
	return &ScheduleRepository{cache: cache}
}

// DayStart normalizes a timestamp to midnight UTC, the canonical form a
// slot date is stored in.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetByID loads one slot.
func (r *ScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	var schedule models.Schedule
	err := database.DB.WithContext(ctx).First(&schedule, "id = ?", scheduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

// ListByDoctor returns a doctor's slots ordered by date and window. A nil
// bound leaves that side of the range open; onlyAvailable additionally
// hides unavailable slots (the public view).
func (r *ScheduleRepository) ListByDoctor(ctx context.Context, doctorID string, from, to *time.Time, onlyAvailable bool) ([]models.Schedule, error) {
	query := database.DB.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}

	var schedules []models.Schedule
	err := query.Order("date ASC").Order(windowOrder).Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// Overview lists available slots across all doctors in [from, to], with
// doctor and department loaded, optionally filtered by department.
func (r *ScheduleRepository) Overview(ctx context.Context, from, to time.Time, departmentID string) ([]models.Schedule, error) {
	query := database.DB.WithContext(ctx).
		Preload("Doctor").
		Preload("Doctor.Department").
		Where("schedule.is_available = ? AND schedule.date >= ? AND schedule.date <= ?", true, from, to)
	if departmentID != "" {
		query = query.
			Joins("JOIN doctor ON doctor.id = schedule.doctor_id").
			Where("doctor.department_id = ?", departmentID)
	}

	var schedules []models.Schedule
	err := query.Order("schedule.date ASC").Order(windowOrder).Order("schedule.start_time ASC").Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule overview: %w", err)
	}
	return schedules, nil
}

// Upcoming returns the next slots from now on, soonest first.
func (r *ScheduleRepository) Upcoming(ctx context.Context, limit int) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := database.DB.WithContext(ctx).
		Preload("Doctor").
		Where("date >= ?", DayStart(time.Now())).
		Order("date ASC").Order(windowOrder).
		Limit(limit).
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming schedules: %w", err)
	}
	return schedules, nil
}

// Occupancy derives one slot's live occupancy by counting its active
// bookings.
func (r *ScheduleRepository) Occupancy(ctx context.Context, scheduleID string) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("schedule_id = ? AND status <> ?", scheduleID, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count occupancy: %w", err)
	}
	return count, nil
}

// OccupancyMap derives occupancy for a set of slots in one grouped query.
func (r *ScheduleRepository) OccupancyMap(ctx context.Context, scheduleIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return counts, nil
	}

	type occupancyRow struct {
		ScheduleID string
		Count      int64
	}
	var rows []occupancyRow
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Select("schedule_id, COUNT(*) AS count").
		Where("schedule_id IN ? AND status <> ?", scheduleIDs, models.StatusCancelled).
		Group("schedule_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count occupancy: %w", err)
	}

	for _, row := range rows {
		counts[row.ScheduleID] = row.Count
	}
	return counts, nil
}

// ReplaceDay atomically swaps the full slot set of one doctor's day for
// the given specs. If any existing slot of that day still has an active
// booking the whole day is refused; even one protected slot blocks the
// replacement so an administrator can never silently delete a slot with
// real appointments against it. Delete and insert share one transaction.
//
// The locks taken are the three deterministic window ids of the day,
// which are the same keys Admit locks, so a replacement can never
// interleave with an in-flight admission on any slot of the day.
func (r *ScheduleRepository) ReplaceDay(ctx context.Context, doctorID string, day time.Time, specs map[string]SlotSpec) error {
	dayStart := DayStart(day)
	dayEnd := dayStart.Add(24 * time.Hour)

	lockValue := uuid.New().String()
	var held []string
	defer func() {
		for _, key := range held {
			if err := database.ReleaseLock(ctx, key, lockValue); err != nil {
				log.Printf("Failed to release lock: %v", err)
			}
		}
	}()
	for _, window := range models.TimeSlots {
		key := scheduleLockKey(models.ScheduleID(doctorID, dayStart, window))
		if err := database.AcquireLock(ctx, key, lockValue, scheduleLockTTL); err != nil {
			return err
		}
		held = append(held, key)
	}

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Schedule
		err := tx.Where("doctor_id = ? AND date >= ? AND date < ?", doctorID, dayStart, dayEnd).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to load existing schedules: %w", err)
		}

		if len(existing) > 0 {
			ids := make([]string, len(existing))
			for i, schedule := range existing {
				ids[i] = schedule.ID
			}
			var activeCount int64
			err := tx.Model(&models.Appointment{}).
				Where("schedule_id IN ? AND status <> ?", ids, models.StatusCancelled).
				Count(&activeCount).Error
			if err != nil {
				return fmt.Errorf("failed to check active appointments: %w", err)
			}
			if activeCount > 0 {
				return models.ErrHasActiveAppointments
			}

			// The guard proved every remaining reference is cancelled;
			// replaced slots take that history with them.
			if err := tx.Where("schedule_id IN ?", ids).
				Delete(&models.Appointment{}).Error; err != nil {
				return fmt.Errorf("failed to clear cancelled appointments: %w", err)
			}

			if err := tx.Where("doctor_id = ? AND date >= ? AND date < ?", doctorID, dayStart, dayEnd).
				Delete(&models.Schedule{}).Error; err != nil {
				return fmt.Errorf("failed to delete existing schedules: %w", err)
			}
		}

		var creates []models.Schedule
		for _, window := range models.TimeSlots {
			spec, ok := specs[window]
			if !ok || !spec.Active {
				continue
			}
			if spec.Max < 1 {
				return models.ErrInvalidCapacity
			}
			creates = append(creates, models.Schedule{
				ID:          models.ScheduleID(doctorID, dayStart, window),
				DoctorID:    doctorID,
				Date:        dayStart,
				TimeSlot:    window,
				StartTime:   spec.Start,
				EndTime:     spec.End,
				MaxPatients: spec.Max,
				IsAvailable: true,
			})
		}
		if len(creates) > 0 {
			if err := tx.Create(&creates).Error; err != nil {
				return fmt.Errorf("failed to create schedules: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateCaches(ctx)
	return nil
}

// CountBetween counts slots dated in [from, to].
func (r *ScheduleRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Schedule{}).
		Where("date >= ? AND date <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return count, nil
}

func (r *ScheduleRepository) invalidateCaches(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeleteAll(ctx, "schedule_cache:*"); err != nil {
		log.Printf("Failed to invalidate schedule caches: %v", err)
	}
}
