package repositories

import (
	"BayHospital/database"
	"BayHospital/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type AdminRepository struct{}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{}
}

// GetByUsername loads the admin account. The generic credentials error is
// returned for an unknown username so login failures are indistinguishable.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := database.DB.WithContext(ctx).First(&admin, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}
	return &admin, nil
}
