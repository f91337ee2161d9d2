package services

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"BayHospital/utils"
	"context"
	"log"
	"os"
)

// BookingService orchestrates the booking lifecycle: admission,
// self-service cancel/reschedule, and history lookup. All capacity and
// ordering guarantees live in the repository's transaction scope; this
// layer only validates input, gates identity, and dispatches the
// confirmation email.
type BookingService struct {
	appointments *repositories.AppointmentRepository
	schedules    *repositories.ScheduleRepository
	doctors      *repositories.DoctorRepository
}

func NewBookingService(appointments *repositories.AppointmentRepository, schedules *repositories.ScheduleRepository, doctors *repositories.DoctorRepository) *BookingService {
	return &BookingService{appointments: appointments, schedules: schedules, doctors: doctors}
}

// Admit books the patient into the slot and returns the created booking
// with its queue number.
func (s *BookingService) Admit(ctx context.Context, scheduleID string, patient repositories.PatientInfo) (*models.Appointment, error) {
	if err := utils.ValidatePatientInfo(patient); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.Admit(ctx, scheduleID, patient)
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(appointment)
	return appointment, nil
}

// Cancel marks the booking cancelled after the identity gate. Idempotent.
func (s *BookingService) Cancel(ctx context.Context, appointmentID string, identity repositories.PatientIdentity) error {
	if err := utils.ValidateIdentity(identity); err != nil {
		return err
	}
	return s.appointments.Cancel(ctx, appointmentID, identity)
}

// Reschedule moves the booking into the target slot after the identity
// gate. Identity verification and the transfer share one transaction.
func (s *BookingService) Reschedule(ctx context.Context, appointmentID string, identity repositories.PatientIdentity, targetScheduleID string) (*models.Appointment, error) {
	if err := utils.ValidateIdentity(identity); err != nil {
		return nil, err
	}
	return s.appointments.Transfer(ctx, appointmentID, &identity, targetScheduleID)
}

// Lookup returns the patient's booking history, cancelled included.
func (s *BookingService) Lookup(ctx context.Context, identity repositories.PatientIdentity) ([]models.Appointment, error) {
	if err := utils.ValidateIdentity(identity); err != nil {
		return nil, err
	}
	return s.appointments.Lookup(ctx, identity)
}

// sendConfirmation emails the patient in the background. Best effort; the
// booking has already committed.
func (s *BookingService) sendConfirmation(appointment *models.Appointment) {
	if appointment.Email == "" || os.Getenv("SMTP_HOST") == "" {
		return
	}

	go func() {
		ctx := context.Background()
		schedule, err := s.schedules.GetByID(ctx, appointment.ScheduleID)
		if err != nil {
			log.Printf("Failed to load schedule for confirmation email: %v", err)
			return
		}
		doctorName := ""
		if doctor, err := s.doctors.GetByID(ctx, schedule.DoctorID); err == nil {
			doctorName = doctor.Name
		}
		if err := utils.SendBookingConfirmationEmail(appointment, schedule, doctorName); err != nil {
			log.Printf("Failed to send confirmation email: %v", err)
		}
	}()
}
