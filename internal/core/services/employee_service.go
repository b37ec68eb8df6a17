package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/google/uuid"
)

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	employeeRepo portsrepo.EmployeeRepositoryFacade
	userRepo     portsrepo.UserReader
}

// NewEmployeeService creates a new employee administration service
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.EmployeeSvcFacade {
	svc := &employeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
	svc.apply(options)
	return svc
}

// Ensure employeeService implements the EmployeeSvcFacade interface
var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) ListEmployees(ctx context.Context, params dto.ListParams) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployees(ctx, params.Limit, params.Offset, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees")
		return nil, err
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Employee not found")
		}
		s.LogError(ctx, err, "Failed to find employee", slog.String("employee_id", employeeID))
		return nil, err
	}
	return employee, nil
}

// CreateEmployee adds an employee with a login of role employee.
func (s *employeeService) CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := ensureEmailFree(ctx, s.userRepo, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash employee password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor.UserID, LastUpdatedAt: now, LastUpdatedBy: actor.UserID}
	employee := domain.Employee{
		EmployeeID:  uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: audit,
	}
	login := domain.User{
		UserID:       employee.EmployeeID,
		Name:         employee.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		IsActive:     true,
		AuditFields:  audit,
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee, login); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email is already registered")
		}
		s.LogError(ctx, err, "Failed to save employee")
		return nil, err
	}

	s.LogInfo(ctx, "Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}
