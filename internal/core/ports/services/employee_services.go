package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
)

// EmployeeReaderSvc defines read operations for employees
type EmployeeReaderSvc interface {
	ListEmployees(ctx context.Context, params dto.ListParams) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employees
type EmployeeWriterSvc interface {
	// CreateEmployee adds an employee and its login.
	CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
