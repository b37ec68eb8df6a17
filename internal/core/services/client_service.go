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
	"github.com/amaansodagar786/credence_backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	clientRepo     portsrepo.ClientRepositoryFacade
	userRepo       portsrepo.UserReader
	documentRepo   portsrepo.DocumentReader
	assignmentRepo portsrepo.AssignmentReader
}

// NewClientService creates a new client administration service
func NewClientService(
	clientRepo portsrepo.ClientRepositoryFacade,
	userRepo portsrepo.UserReader,
	documentRepo portsrepo.DocumentReader,
	assignmentRepo portsrepo.AssignmentReader,
	options ...ServiceOption,
) portssvc.ClientSvcFacade {
	svc := &clientService{
		clientRepo:     clientRepo,
		userRepo:       userRepo,
		documentRepo:   documentRepo,
		assignmentRepo: assignmentRepo,
	}
	svc.apply(options)
	return svc
}

// Ensure clientService implements the ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// ListClients retrieves a page of clients.
func (s *clientService) ListClients(ctx context.Context, params dto.ListParams) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, params.Limit, params.Offset, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// GetClientDetails loads the profile, documents and assignments concurrently.
func (s *clientService) GetClientDetails(ctx context.Context, clientID string) (*domain.ClientDetails, error) {
	var (
		client      *domain.Client
		months      []domain.MonthDocument
		assignments []domain.TaskAssignment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		client, err = s.clientRepo.FindClientByID(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		months, err = s.documentRepo.ListMonthDocuments(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.ListAssignmentsByClient(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Client not found")
		}
		s.LogError(ctx, err, "Failed to load client details", slog.String("client_id", clientID))
		return nil, err
	}

	details := &domain.ClientDetails{
		Client:              *client,
		Documents:           make(map[int]map[int]domain.MonthDocument),
		EmployeeAssignments: assignments,
	}
	for _, m := range months {
		if details.Documents[m.Year] == nil {
			details.Documents[m.Year] = make(map[int]domain.MonthDocument)
		}
		details.Documents[m.Year][m.Month] = m
	}
	if details.EmployeeAssignments == nil {
		details.EmployeeAssignments = []domain.TaskAssignment{}
	}
	return details, nil
}

// CreateClient enrols a client with a login of role client.
func (s *clientService) CreateClient(ctx context.Context, actor domain.Actor, req dto.CreateClientRequest) (*domain.Client, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := ensureEmailFree(ctx, s.userRepo, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash client password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actor.UserID, LastUpdatedAt: now, LastUpdatedBy: actor.UserID}
	client := domain.Client{
		ClientID:     uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PlanSelected: req.PlanSelected,
		IsActive:     true,
		AuditFields:  audit,
	}
	login := domain.User{
		UserID:       client.ClientID,
		Name:         client.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		IsActive:     true,
		AuditFields:  audit,
	}

	if err := s.clientRepo.SaveClient(ctx, client, login); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email is already registered")
		}
		s.LogError(ctx, err, "Failed to save client")
		return nil, err
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// SetClientActive activates or deactivates a client.
func (s *clientService) SetClientActive(ctx context.Context, actor domain.Actor, clientID string, active bool) (*domain.Client, error) {
	if err := s.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Client not found")
		}
		s.LogError(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, err
	}
	if client.IsActive == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return nil, apperrors.NewRuleError(apperrors.ErrAlreadyInState, "Client is already "+state)
	}

	now := s.Now()
	if err := s.clientRepo.SetClientActive(ctx, clientID, active, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update client status", slog.String("client_id", clientID))
		return nil, err
	}
	client.IsActive = active
	client.LastUpdatedAt = now
	client.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Client status changed",
		slog.String("client_id", clientID),
		slog.Bool("active", active))
	s.Publish(ctx, events.TypeClientStatusChanged, clientID, actor, map[string]any{"active": active})
	return client, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ensureEmailFree rejects an email some login already uses.
func ensureEmailFree(ctx context.Context, users portsrepo.UserReader, email string) error {
	_, err := users.FindUserByEmail(ctx, email)
	if err == nil {
		return apperrors.NewConflictError("Email is already registered")
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}
