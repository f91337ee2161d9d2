package utils

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrInvalidDate = errors.New("invalid date")
)

// MaxSlotCapacity bounds a single window's capacity.
const MaxSlotCapacity = 200

// ValidatePatientInfo validates the patient identity fields of a booking
// request. All validation happens before any transaction opens.
func ValidatePatientInfo(patient repositories.PatientInfo) error {
	return validation.Errors{
		"name":      validation.Validate(patient.Name, validation.Required, validation.Length(1, 100)),
		"idNumber":  validation.Validate(patient.IDNumber, validation.Required, validation.Length(1, 50)),
		"birthDate": validation.Validate(patient.BirthDate, validation.Required),
		"phone":     validation.Validate(patient.Phone, validation.Required, validation.Length(1, 30)),
		"email":     validation.Validate(patient.Email, validation.When(patient.Email != "", is.Email)),
	}.Filter()
}

// ValidateIdentity validates the self-service credential pair.
func ValidateIdentity(identity repositories.PatientIdentity) error {
	return validation.Errors{
		"idNumber": validation.Validate(identity.IDNumber, validation.Required),
		"phone":    validation.Validate(identity.Phone, validation.Required),
	}.Filter()
}

// ValidateSlotSpecs validates a replacement day's window specs. Every
// window must be present; inactive windows only need the flag.
func ValidateSlotSpecs(specs map[string]repositories.SlotSpec) error {
	errs := validation.Errors{}
	for _, window := range models.TimeSlots {
		spec, ok := specs[window]
		if !ok {
			errs[window] = errors.New("missing time slot")
			continue
		}
		if !spec.Active {
			continue
		}
		errs[window] = validation.Errors{
			"max":   validation.Validate(spec.Max, validation.Required, validation.Min(1), validation.Max(MaxSlotCapacity)),
			"start": validation.Validate(spec.Start, validation.Required),
			"end":   validation.Validate(spec.End, validation.Required),
		}.Filter()
	}
	return errs.Filter()
}

// ValidateDoctorInput validates the admin doctor form.
func ValidateDoctorInput(doctor *models.Doctor) error {
	return validation.ValidateStruct(doctor,
		validation.Field(&doctor.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&doctor.DepartmentID, validation.Required),
		validation.Field(&doctor.Title, validation.Required),
	)
}

// ParseDateISO parses a calendar date given either as 2006-01-02 or as a
// full RFC 3339 timestamp.
func ParseDateISO(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
