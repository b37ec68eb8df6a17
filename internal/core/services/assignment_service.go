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
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/google/uuid"
)

// assignmentService implements the AssignmentSvcFacade interface
type assignmentService struct {
	BaseService
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	documentRepo   portsrepo.DocumentReader
	clientRepo     portsrepo.ClientReader
	employeeRepo   portsrepo.EmployeeRepositoryFacade
}

// NewAssignmentService creates a new task allocation service
func NewAssignmentService(
	assignmentRepo portsrepo.AssignmentRepositoryFacade,
	documentRepo portsrepo.DocumentReader,
	clientRepo portsrepo.ClientReader,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	options ...ServiceOption,
) portssvc.AssignmentSvcFacade {
	svc := &assignmentService{
		assignmentRepo: assignmentRepo,
		documentRepo:   documentRepo,
		clientRepo:     clientRepo,
		employeeRepo:   employeeRepo,
	}
	svc.apply(options)
	return svc
}

// Ensure assignmentService implements the AssignmentSvcFacade interface
var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// GetTaskStatus reports which tasks of a client month are taken.
func (s *assignmentService) GetTaskStatus(ctx context.Context, clientID string, period domain.Period) (*domain.TaskStatus, error) {
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.findClient(ctx, clientID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListActiveAssignments(ctx, clientID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active assignments",
			slog.String("client_id", clientID),
			slog.String("period", period.String()))
		return nil, err
	}

	status := domain.BuildTaskStatus(clientID, period, assignments)
	s.LogDebug(ctx, "Task status built",
		slog.String("client_id", clientID),
		slog.Int("assigned", len(status.AssignedTasks)))
	return &status, nil
}

// CheckClientDocuments reports whether the required categories hold files.
func (s *assignmentService) CheckClientDocuments(ctx context.Context, clientID string, period domain.Period) (*domain.DocumentCheck, error) {
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if _, err := s.findClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.checkDocuments(ctx, clientID, period)
}

func (s *assignmentService) checkDocuments(ctx context.Context, clientID string, period domain.Period) (*domain.DocumentCheck, error) {
	missing := domain.RequiredCategories
	month, err := s.documentRepo.FindMonthDocument(ctx, clientID, period)
	switch {
	case err == nil:
		missing = month.MissingRequiredCategories()
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to load month document for document check",
			slog.String("client_id", clientID),
			slog.String("period", period.String()))
		return nil, err
	}

	check := &domain.DocumentCheck{
		HasDocuments:      len(missing) == 0,
		MissingCategories: append([]domain.CategoryType{}, missing...),
	}
	if check.HasDocuments {
		check.Message = fmt.Sprintf("All required documents are uploaded for %s", period)
	} else {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = string(c)
		}
		check.Message = fmt.Sprintf("Documents missing for %s: %s. Sales, purchase and bank documents must be uploaded before tasks can be assigned",
			period, strings.Join(names, ", "))
	}
	return check, nil
}

// ListEmployeeAssignments returns an employee's active assignments.
func (s *assignmentService) ListEmployeeAssignments(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error) {
	if period != nil {
		if err := period.Validate(); err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
	}
	assignments, err := s.assignmentRepo.ListAssignmentsByEmployee(ctx, employeeID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employee assignments",
			slog.String("employee_id", employeeID))
		return nil, err
	}
	if assignments == nil {
		return []domain.TaskAssignment{}, nil
	}
	return assignments, nil
}

// Assign gives a task of a client month to an employee.
func (s *assignmentService) Assign(ctx context.Context, actor domain.Actor, req dto.AssignClientRequest) (*domain.TaskAssignment, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	period := req.Period()
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if !req.Task.Valid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("Unknown task %q", req.Task))
	}

	employee, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperrors.NewValidationFailedError("Employee is inactive")
	}
	client, err := s.findClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive {
		return nil, apperrors.NewValidationFailedError("Client is inactive")
	}

	check, err := s.checkDocuments(ctx, req.ClientID, period)
	if err != nil {
		return nil, err
	}
	if !check.HasDocuments {
		s.LogInfo(ctx, "Assignment refused, documents missing",
			slog.String("client_id", req.ClientID),
			slog.String("period", period.String()))
		return nil, apperrors.NewRuleError(apperrors.ErrDocumentsMissing, check.Message)
	}

	existing, err := s.assignmentRepo.FindActiveAssignment(ctx, req.ClientID, period, req.Task)
	if err == nil {
		return nil, apperrors.NewRuleError(apperrors.ErrTaskAlreadyAssigned,
			fmt.Sprintf("%s for %s is already assigned to %s", req.Task, period, existing.EmployeeName))
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up active assignment",
			slog.String("client_id", req.ClientID))
		return nil, err
	}

	assignment := domain.TaskAssignment{
		AssignmentID: uuid.NewString(),
		ClientID:     client.ClientID,
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.Name,
		ClientName:   client.Name,
		Year:         period.Year,
		Month:        period.Month,
		Task:         req.Task,
		AssignedAt:   s.Now(),
		AssignedBy:   actor.UserID,
	}
	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		if errors.Is(err, apperrors.ErrTaskAlreadyAssigned) {
			return nil, apperrors.NewRuleError(apperrors.ErrTaskAlreadyAssigned,
				fmt.Sprintf("%s for %s is already assigned", req.Task, period))
		}
		s.LogError(ctx, err, "Failed to save assignment",
			slog.String("client_id", req.ClientID),
			slog.String("employee_id", req.EmployeeID))
		return nil, err
	}

	s.LogInfo(ctx, "Task assigned",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("client_id", assignment.ClientID),
		slog.String("employee_id", assignment.EmployeeID),
		slog.String("task", string(assignment.Task)))
	s.Publish(ctx, events.TypeTaskAssigned, assignment.ClientID, actor, assignmentEventData(&assignment))
	return &assignment, nil
}

// RemoveAssignment soft-removes one assignment that is not yet done.
func (s *assignmentService) RemoveAssignment(ctx context.Context, actor domain.Actor, req dto.RemoveAssignmentRequest) error {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	period := req.Period()
	if err := period.Validate(); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}

	assignment, err := s.assignmentRepo.FindActiveAssignment(ctx, req.ClientID, period, req.Task)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up assignment for removal",
			slog.String("client_id", req.ClientID))
		return err
	}
	if err != nil || assignment.EmployeeID != req.EmployeeID {
		return apperrors.NewNotFoundError(fmt.Sprintf("No active %s assignment for this employee in %s", req.Task, period))
	}
	if assignment.AccountingDone {
		return apperrors.NewRuleError(apperrors.ErrAccountingDone,
			fmt.Sprintf("Accounting for %s in %s is already done; the assignment cannot be removed", req.Task, period))
	}

	if err := s.assignmentRepo.MarkAssignmentRemoved(ctx, assignment.AssignmentID, actor.UserID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to remove assignment",
			slog.String("assignment_id", assignment.AssignmentID))
		return err
	}

	s.LogInfo(ctx, "Assignment removed",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("client_id", assignment.ClientID))
	s.Publish(ctx, events.TypeTaskRemoved, assignment.ClientID, actor, assignmentEventData(assignment))
	return nil
}

// MarkAccountingDone records that the assigned employee finished the task.
func (s *assignmentService) MarkAccountingDone(ctx context.Context, actor domain.Actor, req dto.AccountingDoneRequest) (*domain.TaskAssignment, error) {
	if err := s.RequireRole(actor, domain.RoleEmployee); err != nil {
		return nil, err
	}
	period := req.Period()
	if err := period.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	assignment, err := s.assignmentRepo.FindActiveAssignment(ctx, req.ClientID, period, req.Task)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No active %s assignment in %s", req.Task, period))
		}
		s.LogError(ctx, err, "Failed to look up assignment",
			slog.String("client_id", req.ClientID))
		return nil, err
	}
	if assignment.EmployeeID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	if assignment.AccountingDone {
		return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState, "Accounting is already marked done")
	}

	now := s.Now()
	if err := s.assignmentRepo.MarkAccountingDone(ctx, assignment.AssignmentID, now); err != nil {
		s.LogError(ctx, err, "Failed to mark accounting done",
			slog.String("assignment_id", assignment.AssignmentID))
		return nil, err
	}
	assignment.AccountingDone = true
	assignment.AccountingDoneAt = &now

	s.LogInfo(ctx, "Accounting marked done",
		slog.String("assignment_id", assignment.AssignmentID))
	s.Publish(ctx, events.TypeAccountingDone, assignment.ClientID, actor, assignmentEventData(assignment))
	return assignment, nil
}

// DeactivateEmployee marks the employee inactive and frees its current-month tasks.
func (s *assignmentService) DeactivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.DeactivationResult, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState, "Employee is already inactive")
	}

	now := s.Now()
	current := domain.PeriodOf(now)
	removed, err := s.employeeRepo.DeactivateEmployee(ctx, employeeID, current, actor.UserID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate employee",
			slog.String("employee_id", employeeID),
			slog.String("period", current.String()))
		return nil, err
	}

	result := &domain.DeactivationResult{
		EmployeeID:         employeeID,
		Year:               current.Year,
		Month:              current.Month,
		RemovedAssignments: int(removed),
		Message: fmt.Sprintf("%s deactivated. %d active assignment(s) for %s were removed; other months are unchanged",
			employee.Name, removed, current),
	}

	s.LogInfo(ctx, "Employee deactivated",
		slog.String("employee_id", employeeID),
		slog.Int64("removed_assignments", removed))
	s.Publish(ctx, events.TypeEmployeeDeactivated, "", actor, map[string]any{
		"employeeId":         employeeID,
		"year":               current.Year,
		"month":              current.Month,
		"removedAssignments": removed,
	})
	return result, nil
}

// ActivateEmployee re-activates an employee without restoring removed assignments.
func (s *assignmentService) ActivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.Employee, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee.IsActive {
		return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState, "Employee is already active")
	}

	now := s.Now()
	if err := s.employeeRepo.SetEmployeeActive(ctx, employeeID, true, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to activate employee", slog.String("employee_id", employeeID))
		return nil, err
	}
	employee.IsActive = true
	employee.LastUpdatedAt = now
	employee.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Employee activated", slog.String("employee_id", employeeID))
	s.Publish(ctx, events.TypeEmployeeActivated, "", actor, map[string]any{"employeeId": employeeID})
	return employee, nil
}

// AuthorizeClientAccess lets admins through, clients onto their own data and
// employees onto clients they currently hold an assignment for.
func (s *assignmentService) AuthorizeClientAccess(ctx context.Context, actor domain.Actor, clientID string) error {
	if actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleClient:
		if actor.UserID == clientID {
			return nil
		}
	case domain.RoleEmployee:
		ok, err := s.assignmentRepo.HasAssignmentForClient(ctx, actor.UserID, clientID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check employee assignment",
				slog.String("client_id", clientID))
			return err
		}
		if ok {
			return nil
		}
	}
	s.LogDebug(ctx, "Client access denied",
		slog.String("user_id", actor.UserID),
		slog.String("client_id", clientID))
	return apperrors.ErrForbidden
}

func (s *assignmentService) findClient(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Client not found")
		}
		s.LogError(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *assignmentService) findEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
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

func assignmentEventData(a *domain.TaskAssignment) map[string]any {
	return map[string]any{
		"assignmentId": a.AssignmentID,
		"employeeId":   a.EmployeeID,
		"year":         a.Year,
		"month":        a.Month,
		"task":         string(a.Task),
	}
}
