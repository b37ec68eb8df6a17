package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/stretchr/testify/mock"
)

// --- Users ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool, updatedBy string, now time.Time) error {
	return m.Called(ctx, userID, active, updatedBy, now).Error(0)
}

// --- Clients ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client, login domain.User) error {
	return m.Called(ctx, client, login).Error(0)
}

func (m *MockClientRepository) SetClientActive(ctx context.Context, clientID string, active bool, updatedBy string, now time.Time) error {
	return m.Called(ctx, clientID, active, updatedBy, now).Error(0)
}

// --- Employees ---

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int, includeInactive bool) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee, login domain.User) error {
	return m.Called(ctx, employee, login).Error(0)
}

func (m *MockEmployeeRepository) SetEmployeeActive(ctx context.Context, employeeID string, active bool, updatedBy string, now time.Time) error {
	return m.Called(ctx, employeeID, active, updatedBy, now).Error(0)
}

func (m *MockEmployeeRepository) DeactivateEmployee(ctx context.Context, employeeID string, period domain.Period, removedBy string, now time.Time) (int64, error) {
	args := m.Called(ctx, employeeID, period, removedBy, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Documents ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindMonthDocument(ctx context.Context, clientID string, period domain.Period) (*domain.MonthDocument, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthDocument), args.Error(1)
}

func (m *MockDocumentRepository) ListMonthDocuments(ctx context.Context, clientID string) ([]domain.MonthDocument, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthDocument), args.Error(1)
}

func (m *MockDocumentRepository) SetMonthLock(ctx context.Context, clientID string, period domain.Period, locked bool, lockedBy *string, lockedAt *time.Time) error {
	return m.Called(ctx, clientID, period, locked, lockedBy, lockedAt).Error(0)
}

func (m *MockDocumentRepository) SetCategoryLock(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, locked bool, lockedBy *string, lockedAt *time.Time) error {
	return m.Called(ctx, clientID, period, ref, locked, lockedBy, lockedAt).Error(0)
}

func (m *MockDocumentRepository) SaveFile(ctx context.Context, clientID string, period domain.Period, ref domain.CategoryRef, file domain.File) error {
	return m.Called(ctx, clientID, period, ref, file).Error(0)
}

// --- Notes ---

type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) ListNotes(ctx context.Context, filter portsrepo.NoteFilter) ([]domain.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

func (m *MockNoteRepository) CountUnread(ctx context.Context, role domain.Role, clientIDs []string) (map[string]int, error) {
	args := m.Called(ctx, role, clientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) MarkNotesViewed(ctx context.Context, role domain.Role, clientID string, scope domain.NoteScope) (int64, error) {
	args := m.Called(ctx, role, clientID, scope)
	return args.Get(0).(int64), args.Error(1)
}

// --- Assignments ---

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindActiveAssignment(ctx context.Context, clientID string, period domain.Period, task domain.TaskKind) (*domain.TaskAssignment, error) {
	args := m.Called(ctx, clientID, period, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListActiveAssignments(ctx context.Context, clientID string, period domain.Period) ([]domain.TaskAssignment, error) {
	args := m.Called(ctx, clientID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByClient(ctx context.Context, clientID string) ([]domain.TaskAssignment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByEmployee(ctx context.Context, employeeID string, period *domain.Period) ([]domain.TaskAssignment, error) {
	args := m.Called(ctx, employeeID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) HasAssignmentForClient(ctx context.Context, employeeID, clientID string) (bool, error) {
	args := m.Called(ctx, employeeID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.TaskAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockAssignmentRepository) MarkAssignmentRemoved(ctx context.Context, assignmentID string, removedBy string, now time.Time) error {
	return m.Called(ctx, assignmentID, removedBy, now).Error(0)
}

func (m *MockAssignmentRepository) MarkAccountingDone(ctx context.Context, assignmentID string, now time.Time) error {
	return m.Called(ctx, assignmentID, now).Error(0)
}

// --- Events ---

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// --- Fixtures ---

var (
	fixedNow  = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	fixedTime = func() time.Time { return fixedNow }
	march     = domain.Period{Year: 2025, Month: 3}

	adminActor    = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	employeeActor = domain.Actor{UserID: "emp-1", Role: domain.RoleEmployee}
	clientActor   = domain.Actor{UserID: "client-x", Role: domain.RoleClient}
)

func withFiles(n int) domain.CategoryBucket {
	b := domain.CategoryBucket{}
	for i := 0; i < n; i++ {
		b.Files = append(b.Files, domain.File{FileID: "f", FileName: "invoice.pdf"})
	}
	return b
}

// completeMonth has at least one file in every required category.
func completeMonth() *domain.MonthDocument {
	return &domain.MonthDocument{
		ClientID: "client-x",
		Year:     march.Year,
		Month:    march.Month,
		Sales:    withFiles(1),
		Purchase: withFiles(2),
		Bank:     withFiles(1),
	}
}
