package handlers_test

import (
	"context"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) ListClients(ctx context.Context, params dto.ListParams) ([]domain.Client, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) GetClientDetails(ctx context.Context, clientID string) (*domain.ClientDetails, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientDetails), args.Error(1)
}
func (m *MockClientService) CreateClient(ctx context.Context, actor domain.Actor, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) SetClientActive(ctx context.Context, actor domain.Actor, clientID string, active bool) (*domain.Client, error) {
	args := m.Called(ctx, actor, clientID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, params dto.ListParams) ([]domain.Employee, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) GetEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeService) CreateEmployee(ctx context.Context, actor domain.Actor, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

// --- Mock LockService ---
type MockLockService struct {
	mock.Mock
}

func (m *MockLockService) RequestMonthLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, lock bool) (*domain.MonthDocument, error) {
	args := m.Called(ctx, actor, clientID, period, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthDocument), args.Error(1)
}
func (m *MockLockService) RequestCategoryLock(ctx context.Context, actor domain.Actor, clientID string, period domain.Period, ref domain.CategoryRef, lock bool) (*domain.MonthDocument, error) {
	args := m.Called(ctx, actor, clientID, period, ref, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthDocument), args.Error(1)
}

// --- Mock AssignmentService ---
type MockAssignmentService struct {
	mock.Mock
}

func (m *MockAssignmentService) GetTaskStatus(ctx context.Context, clientID string, period domain.Period) (*domain.TaskStatus, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskStatus), args.Error(1)
}
func (m *MockAssignmentService) CheckClientDocuments(ctx context.Context, clientID string, period domain.Period) (*domain.DocumentCheck, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentCheck), args.Error(1)
}
func (m *MockAssignmentService) ListEmployeeAssignments(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error) {
	args := m.Called(ctx, employeeID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAssignment), args.Error(1)
}
func (m *MockAssignmentService) Assign(ctx context.Context, actor domain.Actor, req dto.AssignClientRequest) (*domain.TaskAssignment, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAssignment), args.Error(1)
}
func (m *MockAssignmentService) RemoveAssignment(ctx context.Context, actor domain.Actor, req dto.RemoveAssignmentRequest) error {
	args := m.Called(ctx, actor, req)
	return args.Error(0)
}
func (m *MockAssignmentService) MarkAccountingDone(ctx context.Context, actor domain.Actor, req dto.AccountingDoneRequest) (*domain.TaskAssignment, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAssignment), args.Error(1)
}
func (m *MockAssignmentService) DeactivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.DeactivationResult, error) {
	args := m.Called(ctx, actor, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeactivationResult), args.Error(1)
}
func (m *MockAssignmentService) ActivateEmployee(ctx context.Context, actor domain.Actor, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, actor, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockAssignmentService) AuthorizeClientAccess(ctx context.Context, actor domain.Actor, clientID string) error {
	args := m.Called(ctx, actor, clientID)
	return args.Error(0)
}

// --- Mock NoteService ---
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) ListNotes(ctx context.Context, actor domain.Actor, clientID string, params dto.ListNotesParams) ([]domain.Note, *string, error) {
	args := m.Called(ctx, actor, clientID, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Note), next, args.Error(2)
}
func (m *MockNoteService) CountUnread(ctx context.Context, actor domain.Actor, clientID string) (*domain.UnreadCount, error) {
	args := m.Called(ctx, actor, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnreadCount), args.Error(1)
}
func (m *MockNoteService) AddNote(ctx context.Context, actor domain.Actor, req dto.AddNoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}
func (m *MockNoteService) MarkViewed(ctx context.Context, actor domain.Actor, clientID string, scope domain.NoteScope) (int64, error) {
	args := m.Called(ctx, actor, clientID, scope)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) RecordUpload(ctx context.Context, actor domain.Actor, req dto.UploadDocumentRequest) (*domain.UploadResult, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}
func (m *MockDocumentService) GetMonthDocument(ctx context.Context, actor domain.Actor, clientID string, period domain.Period) (*domain.MonthDocument, error) {
	args := m.Called(ctx, actor, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthDocument), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.AuthSvcFacade       = (*MockAuthService)(nil)
	_ portssvc.ClientSvcFacade     = (*MockClientService)(nil)
	_ portssvc.EmployeeSvcFacade   = (*MockEmployeeService)(nil)
	_ portssvc.LockSvcFacade       = (*MockLockService)(nil)
	_ portssvc.AssignmentSvcFacade = (*MockAssignmentService)(nil)
	_ portssvc.NoteSvcFacade       = (*MockNoteService)(nil)
	_ portssvc.DocumentSvcFacade   = (*MockDocumentService)(nil)
)
