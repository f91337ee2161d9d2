package services

import (
	"BayHospital/models"
	"BayHospital/repositories"
	"context"
)

type DepartmentService struct {
	repository *repositories.DepartmentRepository
}

func NewDepartmentService(repository *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repository: repository}
}

func (s *DepartmentService) GetAll(ctx context.Context) ([]models.Department, error) {
	return s.repository.GetAll(ctx)
}
