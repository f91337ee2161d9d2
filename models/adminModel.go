package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser is the single back-office account. There is no self-service
// registration; the account is seeded from the environment at startup.
type AdminUser struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"size:100;not null;unique;index;column:username" json:"username"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_user"
}

// SeedAdminUser ensures the seeded admin account exists with the given
// credentials. An existing account gets its password hash refreshed so a
// rotated ADMIN_SEED_PASSWORD takes effect on restart.
func SeedAdminUser(db *gorm.DB, username, passwordHash string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var admin AdminUser
		err := tx.Where(AdminUser{Username: username}).First(&admin).Error
		if err == nil {
			return tx.Model(&admin).Update("password_hash", passwordHash).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&AdminUser{Username: username, PasswordHash: passwordHash}).Error
	})
}
