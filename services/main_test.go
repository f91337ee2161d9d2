package services

import (
	"BayHospital/database"
	"BayHospital/models"
	"BayHospital/repositories"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// setupTestStore points the package globals at an in-memory sqlite
// database and a miniredis instance for the duration of one test.
func setupTestStore(t *testing.T) {
	t.Helper()

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RedisClient = nil })

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared&_fk=1&_busy_timeout=5000", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))

	database.DB = db
	t.Cleanup(func() { database.DB = nil })
}

func createTestDoctor(t *testing.T, id string) {
	t.Helper()
	department := models.Department{ID: "testdept", Name: "Test Department"}
	require.NoError(t, database.DB.FirstOrCreate(&department, models.Department{ID: department.ID}).Error)
	doctor := models.Doctor{
		ID:           id,
		Name:         "Test Doctor " + id,
		DepartmentID: department.ID,
		Title:        "Attending Physician",
		IsAvailable:  true,
	}
	require.NoError(t, database.DB.Create(&doctor).Error)
}

func createTestSchedule(t *testing.T, doctorID string, day time.Time, window string, capacity int) *models.Schedule {
	t.Helper()
	dayStart := repositories.DayStart(day)
	schedule := models.Schedule{
		ID:          models.ScheduleID(doctorID, dayStart, window),
		DoctorID:    doctorID,
		Date:        dayStart,
		TimeSlot:    window,
		StartTime:   "09:00",
		EndTime:     "12:00",
		MaxPatients: capacity,
		IsAvailable: true,
	}
	require.NoError(t, database.DB.Create(&schedule).Error)
	return &schedule
}

func testDay() time.Time {
	return repositories.DayStart(time.Now().Add(48 * time.Hour))
}

func testPatient(n int) repositories.PatientInfo {
	return repositories.PatientInfo{
		Name:      fmt.Sprintf("Patient %d", n),
		IDNumber:  fmt.Sprintf("A1234567%02d", n),
		BirthDate: "1990-01-01",
		Phone:     fmt.Sprintf("09120000%02d", n),
	}
}
