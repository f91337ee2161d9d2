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
	scheduleLockTTL = 10 * time.Second
)

// PatientInfo carries the identity fields recorded on a booking.
type PatientInfo struct {
	Name      string
	IDNumber  string
	BirthDate string
	Phone     string
	Email     string
}

// PatientIdentity is the shared-secret pair a patient presents for
// self-service actions. It substitutes for a login system.
type PatientIdentity struct {
	IDNumber string
	Phone    string
}

// Matches reports whether the presented pair matches the booking. Callers
// must not reveal which field mismatched.
func (p PatientIdentity) Matches(a *models.Appointment) bool {
	return a.PatientIDNumber == p.IDNumber && a.Phone == p.Phone
}

type AppointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{cache: cache}
}

func scheduleLockKey(scheduleID string) string {
	return "schedule_lock:" + scheduleID
}

// Admit books one unit of the slot's capacity for the patient and assigns
// the next queue number. The whole check-then-insert runs inside one
// transaction while the slot's lock is held, so concurrent admissions to
// the same slot are serialized and can never jointly exceed capacity.
func (r *AppointmentRepository) Admit(ctx context.Context, scheduleID string, patient PatientInfo) (*models.Appointment, error) {
	lockKey := scheduleLockKey(scheduleID)
	lockValue := uuid.New().String()
	if err := database.AcquireLock(ctx, lockKey, lockValue, scheduleLockTTL); err != nil {
		return nil, err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var appointment *models.Appointment
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkAdmission(tx, scheduleID, patient.IDNumber, ""); err != nil {
			return err
		}

		queueNumber, err := nextQueueNumber(tx, scheduleID)
		if err != nil {
			return err
		}

		appointment = &models.Appointment{
			ID:              uuid.New().String(),
			ScheduleID:      scheduleID,
			PatientName:     patient.Name,
			PatientIDNumber: patient.IDNumber,
			BirthDate:       patient.BirthDate,
			Phone:           patient.Phone,
			Email:           patient.Email,
			QueueNumber:     queueNumber,
			Status:          models.StatusConfirmed,
		}
		return tx.Create(appointment).Error
	})
	if err != nil {
		return nil, translateBookingError(err, "failed to admit appointment")
	}

	r.invalidateScheduleCaches(ctx)
	return appointment, nil
}

// Transfer moves an existing booking into the target slot, re-running the
// full admission checks there and assigning a fresh queue number, all in
// one transaction under the target slot's lock. When identity is non-nil
// the booking's patient fields must match it; the read of the old booking
// and the write of the new slot reference commit or roll back together.
func (r *AppointmentRepository) Transfer(ctx context.Context, appointmentID string, identity *PatientIdentity, targetScheduleID string) (*models.Appointment, error) {
	lockKey := scheduleLockKey(targetScheduleID)
	lockValue := uuid.New().String()
	if err := database.AcquireLock(ctx, lockKey, lockValue, scheduleLockTTL); err != nil {
		return nil, err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var appointment models.Appointment
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		if identity != nil && !identity.Matches(&appointment) {
			return models.ErrForbidden
		}

		if err := checkAdmission(tx, targetScheduleID, appointment.PatientIDNumber, appointment.ID); err != nil {
			return err
		}

		queueNumber, err := nextQueueNumber(tx, targetScheduleID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"schedule_id":  targetScheduleID,
			"queue_number": queueNumber,
			"status":       models.StatusConfirmed,
		}
		if err := tx.Model(&appointment).Updates(updates).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, translateBookingError(err, "failed to transfer appointment")
	}

	r.invalidateScheduleCaches(ctx)
	return &appointment, nil
}

// Cancel marks the booking Cancelled after verifying the caller's
// identity. Cancelling an already-cancelled booking succeeds without a
// write; a cancelled booking is terminal and is never re-activated.
func (r *AppointmentRepository) Cancel(ctx context.Context, appointmentID string, identity PatientIdentity) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		if !identity.Matches(&appointment) {
			return models.ErrForbidden
		}

		if appointment.Status == models.StatusCancelled {
			return nil
		}

		return tx.Model(&appointment).Update("status", models.StatusCancelled).Error
	})
	if err != nil {
		return err
	}

	r.invalidateScheduleCaches(ctx)
	return nil
}

// GetByID loads one appointment with its slot and doctor.
func (r *AppointmentRepository) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Doctor").
		First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Lookup returns the patient's full booking history, newest first,
// including cancelled bookings.
func (r *AppointmentRepository) Lookup(ctx context.Context, identity PatientIdentity) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Doctor").
		Where("patient_id_number = ? AND phone = ?", identity.IDNumber, identity.Phone).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up appointments: %w", err)
	}
	return appointments, nil
}

// CountActiveCreatedBetween counts active bookings created in [from, to].
func (r *AppointmentRepository) CountActiveCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("created_at >= ? AND created_at <= ? AND status <> ?", from, to, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// checkAdmission performs the in-transaction admission checks against one
// slot: the slot must exist and be available, have spare capacity, and the
// patient must not already hold an active booking there. The capacity
// count is always re-derived from live rows; no counter is stored.
func checkAdmission(tx *gorm.DB, scheduleID, patientIDNumber, excludeAppointmentID string) error {
	var schedule models.Schedule
	if err := tx.First(&schedule, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to load schedule: %w", err)
	}
	if !schedule.IsAvailable {
		return models.ErrScheduleNotFound
	}

	var activeCount int64
	err := tx.Model(&models.Appointment{}).
		Where("schedule_id = ? AND status <> ?", scheduleID, models.StatusCancelled).
		Count(&activeCount).Error
	if err != nil {
		return fmt.Errorf("failed to count active appointments: %w", err)
	}
	if activeCount >= int64(schedule.MaxPatients) {
		return models.ErrScheduleFull
	}

	duplicateQuery := tx.Model(&models.Appointment{}).
		Where("schedule_id = ? AND patient_id_number = ? AND status <> ?", scheduleID, patientIDNumber, models.StatusCancelled)
	if excludeAppointmentID != "" {
		duplicateQuery = duplicateQuery.Where("id <> ?", excludeAppointmentID)
	}
	var duplicates int64
	if err := duplicateQuery.Count(&duplicates).Error; err != nil {
		return fmt.Errorf("failed to check duplicate appointments: %w", err)
	}
	if duplicates > 0 {
		return models.ErrDuplicateAppointment
	}

	return nil
}

// nextQueueNumber returns max(queue_number)+1 over the slot's rows,
// defaulting to 1. Cancelled bookings keep their slot reference, so their
// numbers stay occupied and are never handed out again.
func nextQueueNumber(tx *gorm.DB, scheduleID string) (int, error) {
	var maxQueue int
	err := tx.Model(&models.Appointment{}).
		Where("schedule_id = ?", scheduleID).
		Select("COALESCE(MAX(queue_number), 0)").
		Scan(&maxQueue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to determine next queue number: %w", err)
	}
	return maxQueue + 1, nil
}

// translateBookingError keeps domain errors intact, maps the unique-index
// backstop onto the duplicate error, and wraps everything else.
func translateBookingError(err error, msg string) error {
	switch {
	case errors.Is(err, models.ErrScheduleNotFound),
		errors.Is(err, models.ErrScheduleFull),
		errors.Is(err, models.ErrDuplicateAppointment),
		errors.Is(err, models.ErrAppointmentNotFound),
		errors.Is(err, models.ErrForbidden):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrDuplicateAppointment
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func (r *AppointmentRepository) invalidateScheduleCaches(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeleteAll(ctx, "schedule_cache:*"); err != nil {
		log.Printf("Failed to invalidate schedule caches: %v", err)
	}
}
