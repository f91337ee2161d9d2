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
	DoctorCacheExpiry = 24 * time.Hour
)

type DoctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{cache: cache}
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", doctor.ID)
	lockValue := uuid.New().String()
	if err := database.AcquireLock(ctx, lockKey, lockValue, 10*time.Second); err != nil {
		return err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := database.DB.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	r.invalidateCaches(ctx)
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	if r.cache != nil {
		var cached models.Doctor
		if found, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		} else if err != nil {
			log.Printf("Failed to get doctor from cache: %v", err)
		}
	}

	var doctor models.Doctor
	err := database.DB.WithContext(ctx).First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}
	return &doctor, nil
}

// GetAll lists doctors ordered by name, optionally filtered by department.
func (r *DoctorRepository) GetAll(ctx context.Context, departmentID string) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("doctor_cache:all:%s", departmentID)
	if r.cache != nil {
		var cached []models.Doctor
		if found, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			return cached, nil
		} else if err != nil {
			log.Printf("Failed to get doctors from cache: %v", err)
		}
	}

	query := database.DB.WithContext(ctx)
	if departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	var doctors []models.Doctor
	if err := query.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, cacheKey, doctors, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}
	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", doctor.ID)
	lockValue := uuid.New().String()
	if err := database.AcquireLock(ctx, lockKey, lockValue, 10*time.Second); err != nil {
		return err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := database.DB.WithContext(ctx).Model(&models.Doctor{}).
		Where("id = ?", doctor.ID).
		Select("name", "department_id", "title", "specialties", "image_url", "introduction", "is_available").
		Updates(doctor)
	if result.Error != nil {
		return fmt.Errorf("failed to update doctor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrDoctorNotFound
	}
	r.invalidateCaches(ctx)
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete doctor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrDoctorNotFound
	}
	r.invalidateCaches(ctx)
	return nil
}

func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.WithContext(ctx).Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

func (r *DoctorRepository) doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}

func (r *DoctorRepository) invalidateCaches(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeleteAll(ctx, "doctor_cache:*"); err != nil {
		log.Printf("Failed to invalidate doctor caches: %v", err)
	}
}
