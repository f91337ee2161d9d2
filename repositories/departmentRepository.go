package repositories

import (
	"BayHospital/cache"
	"BayHospital/database"
	"BayHospital/models"
	"context"
	"fmt"
	"log"
	"time"
)

const (
	DepartmentCacheExpiry = 7 * 24 * time.Hour
)

type DepartmentRepository struct {
	cache *cache.Cache
}

func NewDepartmentRepository(cache *cache.Cache) *DepartmentRepository {
	return &DepartmentRepository{cache: cache}
}

// GetAll lists the department catalog. Static reference data, cached long.
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "department_cache:all"
	if r.cache != nil {
		var cached []models.Department
		if found, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && found {
			return cached, nil
		} else if err != nil {
			log.Printf("Failed to get departments from cache: %v", err)
		}
	}

	var departments []models.Department
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all departments: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetJSON(ctx, cacheKey, departments, DepartmentCacheExpiry); err != nil {
			log.Printf("Failed to set departments in cache: %v", err)
		}
	}
	return departments, nil
}
