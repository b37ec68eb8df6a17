package services

import (
	"context"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/amaansodagar786/credence_backend/internal/dto"
)

// ClientReaderSvc defines read operations for clients
type ClientReaderSvc interface {
	// ListClients retrieves a page of clients.
	ListClients(ctx context.Context, params dto.ListParams) ([]domain.Client, error)

	// GetClientDetails assembles the client with every month document and assignment.
	GetClientDetails(ctx context.Context, clientID string) (*domain.ClientDetails, error)
}

// ClientWriterSvc defines write operations for clients
type ClientWriterSvc interface {
	// CreateClient enrols a client and its login.
	CreateClient(ctx context.Context, actor domain.Actor, req dto.CreateClientRequest) (*domain.Client, error)

	// SetClientActive activates or deactivates a client and its login.
	SetClientActive(ctx context.Context, actor domain.Actor, clientID string, active bool) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
