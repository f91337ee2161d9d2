package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Time window categories for a day's schedule. A doctor has at most one
// slot per window per calendar date.
const (
	TimeSlotMorning   = "Morning"
	TimeSlotAfternoon = "Afternoon"
	TimeSlotEvening   = "Evening"
)

// TimeSlots lists the windows in clinic order (not alphabetical).
var TimeSlots = []string{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}

// Appointment statuses. Cancelled is terminal.
const (
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Department model
type Department struct {
	ID          string   `gorm:"primaryKey;column:id" json:"id"`
	Name        string   `gorm:"column:name;unique;not null" json:"name"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	Icon        string   `gorm:"column:icon" json:"icon"`
	Doctors     []Doctor `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

func (Department) TableName() string {
	return "department"
}

// Doctor model
type Doctor struct {
	ID           string     `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"column:name;not null;index" json:"name"`
	DepartmentID string     `gorm:"column:department_id;not null;index" json:"department_id"`
	Title        string     `gorm:"column:title;not null" json:"title"`
	Specialties  []string   `gorm:"column:specialties;serializer:json" json:"specialties"`
	ImageURL     string     `gorm:"column:image_url" json:"image_url"`
	Introduction string     `gorm:"column:introduction;type:text" json:"introduction"`
	IsAvailable  bool       `gorm:"column:is_available;not null" json:"is_available"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Department   Department `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
	Schedules    []Schedule `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Schedule model. One row is a bounded-capacity clinic time window for one
// doctor on one date. Occupancy is never stored here; it is always derived
// by counting non-cancelled appointments referencing the row.
type Schedule struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	DoctorID     string        `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_doctor_day_window" json:"doctor_id"`
	Date         time.Time     `gorm:"column:date;not null;index;uniqueIndex:idx_doctor_day_window" json:"date"`
	TimeSlot     string        `gorm:"column:time_slot;check:time_slot IN ('Morning', 'Afternoon', 'Evening');not null;uniqueIndex:idx_doctor_day_window" json:"time_slot"`
	StartTime    string        `gorm:"column:start_time;not null" json:"start_time"`
	EndTime      string        `gorm:"column:end_time;not null" json:"end_time"`
	MaxPatients  int           `gorm:"column:max_patients;not null;check:max_patients >= 1" json:"max_patients"`
	IsAvailable  bool          `gorm:"column:is_available;not null" json:"is_available"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor       Doctor        `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:ScheduleID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Schedule) TableName() string {
	return "schedule"
}

// ScheduleID derives the identity key of a slot from its
// (doctor, date, window) triple, so creating the same slot twice is
// idempotent under that key.
func ScheduleID(doctorID string, date time.Time, timeSlot string) string {
	return fmt.Sprintf("%s-%s-%s", doctorID, date.Format("20060102"), timeSlot)
}

// Appointment model. The unique (schedule_id, queue_number) index backstops
// queue ordering; the partial unique index on (schedule_id,
// patient_id_number) blocks a patient from holding two active bookings in
// the same slot while still allowing a fresh booking after cancellation.
type Appointment struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	ScheduleID      string    `gorm:"column:schedule_id;not null;index;uniqueIndex:idx_schedule_queue;uniqueIndex:idx_schedule_patient_active,where:status <> 'Cancelled'" json:"schedule_id"`
	PatientName     string    `gorm:"column:patient_name;not null" json:"patient_name"`
	PatientIDNumber string    `gorm:"column:patient_id_number;not null;index;uniqueIndex:idx_schedule_patient_active,where:status <> 'Cancelled'" json:"patient_id_number"`
	BirthDate       string    `gorm:"column:birth_date;not null" json:"birth_date"`
	Phone           string    `gorm:"column:phone;not null;index" json:"phone"`
	Email           string    `gorm:"column:email" json:"email"`
	QueueNumber     int       `gorm:"column:queue_number;not null;uniqueIndex:idx_schedule_queue" json:"queue_number"`
	Status          string    `gorm:"column:status;check:status IN ('Confirmed', 'Cancelled');not null" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Schedule        Schedule  `gorm:"foreignKey:ScheduleID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// IsActive reports whether the booking still consumes a unit of its slot's
// capacity.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// SeedDepartments inserts the initial department catalog.
func SeedDepartments(db *gorm.DB) error {
	initialDepartments := []Department{
		{ID: "obgyn", Name: "Obstetrics & Gynecology", Description: "Comprehensive women's health care: prenatal checkups, gynecological treatment and minimally invasive surgery.", Icon: "Baby"},
		{ID: "pediatrics", Name: "Pediatrics", Description: "Vaccinations, growth assessment and treatment of common childhood illnesses.", Icon: "Trees"},
		{ID: "surgery", Name: "Breast Surgery", Description: "Breast health screening, diagnosis and treatment.", Icon: "Heart"},
		{ID: "internal", Name: "Internal Medicine", Description: "General internal medicine and chronic disease management.", Icon: "Stethoscope"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, department := range initialDepartments {
			if err := tx.FirstOrCreate(&department, Department{ID: department.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedDoctors inserts the initial doctor roster.
func SeedDoctors(db *gorm.DB) error {
	initialDoctors := []Doctor{
		{
			ID:           "dr-lee",
			Name:         "Yi-Ming Lee",
			DepartmentID: "obgyn",
			Title:        "Hospital Director",
			Specialties:  []string{"General obstetrics", "High-risk pregnancy", "Gynecologic oncology", "Laparoscopic surgery"},
			ImageURL:     "/images/doctor-lee.png",
			Introduction: "Over thirty years of experience in obstetrics and gynecology.",
			IsAvailable:  true,
		},
		{
			ID:           "dr-chen",
			Name:         "Man-Ling Chen",
			DepartmentID: "obgyn",
			Title:        "Attending Physician",
			Specialties:  []string{"Adolescent health", "Menopause care", "Minimally invasive surgery"},
			ImageURL:     "/images/doctor-chen.png",
			Introduction: "Attentive and gentle consultation style.",
			IsAvailable:  true,
		},
		{
			ID:           "dr-hong",
			Name:         "Cheng-Che Hong",
			DepartmentID: "pediatrics",
			Title:        "Chief of Pediatrics",
			Specialties:  []string{"Pediatric allergy", "Asthma", "Newborn care"},
			ImageURL:     "/images/doctor-hong.png",
			Introduction: "Specialist in pediatric allergy and immunology.",
			IsAvailable:  true,
		},
		{
			ID:           "dr-li-wan",
			Name:         "Wan-Hua Li",
			DepartmentID: "surgery",
			Title:        "Breast Surgeon",
			Specialties:  []string{"Breast ultrasound", "Breast surgery", "Cancer screening"},
			ImageURL:     "/images/doctor-li-wan.png",
			Introduction: "Thorough examinations for early detection and treatment.",
			IsAvailable:  true,
		},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, doctor := range initialDoctors {
			if err := tx.FirstOrCreate(&doctor, Doctor{ID: doctor.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
