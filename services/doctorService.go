package services

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"BayHospital/utils"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DoctorService struct {
	repository *repositories.DoctorRepository
}

func NewDoctorService(repository *repositories.DoctorRepository) *DoctorService {
	return &DoctorService{repository: repository}
}

func (s *DoctorService) Create(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctorInput(doctor); err != nil {
		return err
	}
	if doctor.ID == "" {
		doctor.ID = fmt.Sprintf("doc-%d-%s", time.Now().Unix(), uuid.New().String()[:8])
	}
	return s.repository.Create(ctx, doctor)
}

func (s *DoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DoctorService) GetAll(ctx context.Context, departmentID string) ([]models.Doctor, error) {
	return s.repository.GetAll(ctx, departmentID)
}

func (s *DoctorService) Update(ctx context.Context, doctor *models.Doctor) error {
	if err := utils.ValidateDoctorInput(doctor); err != nil {
		return err
	}
	return s.repository.Update(ctx, doctor)
}

func (s *DoctorService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}
