package dto

import (
	"time"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
)

// CreateClientRequest defines data for enrolling a client.
type CreateClientRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Phone        string `json:"phone"`
	PlanSelected string `json:"planSelected"`
}

// ListParams defines paging query parameters shared by client and employee listings.
type ListParams struct {
	Limit           int  `form:"limit,default=50" binding:"min=1,max=200"`
	Offset          int  `form:"offset,default=0" binding:"min=0"`
	IncludeInactive bool `form:"includeInactive"`
}

// ClientResponse defines data returned for a client.
type ClientResponse struct {
	ClientID     string    `json:"clientID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PlanSelected string    `json:"planSelected,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToClientResponse converts domain.Client to DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:     c.ClientID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PlanSelected: c.PlanSelected,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

// ListClientsResponse wraps a list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToListClientsResponse converts a slice of domain.Client to DTO.
func ToListClientsResponse(cs []domain.Client) ListClientsResponse {
	list := make([]ClientResponse, len(cs))
	for i := range cs {
		list[i] = ToClientResponse(&cs[i])
	}
	return ListClientsResponse{Clients: list}
}

// ClientDetailsResponse is the full client record the admin screen re-fetches after every mutation.
type ClientDetailsResponse struct {
	Client domain.ClientDetails `json:"client"`
}
