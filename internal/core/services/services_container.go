package services

import (
	portsrepo "github.com/amaansodagar786/credence_backend/internal/core/ports/repositories"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/amaansodagar786/credence_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	shared := append([]ServiceOption{WithEventPublisher(publisher)}, options...)

	// The assignment service decides employee access, so it is built first
	container.Assignment = NewAssignmentService(
		repos.AssignmentRepo,
		repos.DocumentRepo,
		repos.ClientRepo,
		repos.EmployeeRepo,
		shared...,
	)
	withAuthorizer := append(append([]ServiceOption{}, shared...), WithClientAuthorizer(container.Assignment))

	container.Auth = NewAuthService(cfg, repos.UserRepo, shared...)
	container.Client = NewClientService(repos.ClientRepo, repos.UserRepo, repos.DocumentRepo, repos.AssignmentRepo, shared...)
	container.Employee = NewEmployeeService(repos.EmployeeRepo, repos.UserRepo, shared...)
	container.Lock = NewLockService(repos.DocumentRepo, shared...)
	container.Note = NewNoteService(repos.NoteRepo, repos.DocumentRepo, repos.AssignmentRepo, withAuthorizer...)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.NoteRepo, withAuthorizer...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LockSvcFacade       = (*lockService)(nil)
	_ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)
	_ portssvc.NoteSvcFacade       = (*noteService)(nil)
	_ portssvc.DocumentSvcFacade   = (*documentService)(nil)
	_ portssvc.ClientSvcFacade     = (*clientService)(nil)
	_ portssvc.EmployeeSvcFacade   = (*employeeService)(nil)
)
