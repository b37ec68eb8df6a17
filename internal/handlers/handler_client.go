package handlers

import (
	"log/slog"
	"net/http"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles admin requests on clients and their document locks.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
	lockService   portssvc.LockSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade, ls portssvc.LockSvcFacade) *clientHandler {
	return &clientHandler{
		clientService: cs,
		lockService:   ls,
	}
}

// registerClientRoutes registers the admin client routes on an admin-only group.
func registerClientRoutes(admin *gin.RouterGroup, cs portssvc.ClientSvcFacade, ls portssvc.LockSvcFacade) {
	h := newClientHandler(cs, ls)

	clients := admin.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.POST("/file-lock/:id", h.fileLock)
		clients.GET("/:id", h.getClient)
		clients.POST("/:id/activate", h.activateClient)
		clients.POST("/:id/deactivate", h.deactivateClient)
		clients.POST("/:id/month-lock", h.monthLock)
	}
}

// listClients godoc
// @Summary List clients
// @Tags admin-clients
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Param includeInactive query bool false "Include deactivated clients"
// @Success 200 {object} dto.ListClientsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, "client list query", err)
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// createClient godoc
// @Summary Enrol a client
// @Description Creates the client profile and its login.
// @Tags admin-clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already used"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "create client request", err)
		return
	}
	client, err := h.clientService.CreateClient(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to create client")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// getClient godoc
// @Summary Client details
// @Description Returns the client with every month document, lock flag and assignment.
// @Tags admin-clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientDetailsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	details, err := h.clientService.GetClientDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to load client")
		return
	}
	c.JSON(http.StatusOK, dto.ClientDetailsResponse{Client: *details})
}

// activateClient godoc
// @Summary Activate a client
// @Tags admin-clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already active"
// @Security BearerAuth
// @Router /admin/clients/{id}/activate [post]
func (h *clientHandler) activateClient(c *gin.Context) {
	h.setActive(c, true)
}

// deactivateClient godoc
// @Summary Deactivate a client
// @Tags admin-clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already inactive"
// @Security BearerAuth
// @Router /admin/clients/{id}/deactivate [post]
func (h *clientHandler) deactivateClient(c *gin.Context) {
	h.setActive(c, false)
}

func (h *clientHandler) setActive(c *gin.Context, active bool) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	client, err := h.clientService.SetClientActive(c.Request.Context(), actor, c.Param("id"), active)
	if err != nil {
		handleServiceError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// monthLock godoc
// @Summary Lock or unlock a month
// @Description Sets the month-level lock. Category locks are left untouched.
// @Tags admin-clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param lock body dto.MonthLockRequest true "Month and desired state"
// @Success 200 {object} dto.LockResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already in requested state"
// @Security BearerAuth
// @Router /admin/clients/{id}/month-lock [post]
func (h *clientHandler) monthLock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.MonthLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "month lock request", err)
		return
	}
	period := domain.Period{Year: req.Year, Month: req.Month}
	month, err := h.lockService.RequestMonthLock(c.Request.Context(), actor, c.Param("id"), period, *req.Lock)
	if err != nil {
		handleServiceError(c, err, "Failed to change month lock")
		return
	}
	c.JSON(http.StatusOK, dto.LockResponse{Message: lockMessage("Month "+period.String(), *req.Lock), Month: *month})
}

// fileLock godoc
// @Summary Lock or unlock a category
// @Description Sets the lock of one category of a month. Rejected when the effective lock already matches.
// @Tags admin-clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param lock body dto.FileLockRequest true "Category and desired state"
// @Success 200 {object} dto.LockResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already in requested state"
// @Security BearerAuth
// @Router /admin/clients/file-lock/{id} [post]
func (h *clientHandler) fileLock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.FileLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "file lock request", err)
		return
	}
	period := domain.Period{Year: req.Year, Month: req.Month}
	ref := domain.CategoryRef{Type: req.Type, Name: req.CategoryName}
	month, err := h.lockService.RequestCategoryLock(c.Request.Context(), actor, c.Param("id"), period, ref, *req.Lock)
	if err != nil {
		handleServiceError(c, err, "Failed to change category lock")
		return
	}
	c.JSON(http.StatusOK, dto.LockResponse{Message: lockMessage("Category "+ref.String(), *req.Lock), Month: *month})
}

func lockMessage(subject string, lock bool) string {
	if lock {
		return subject + " locked"
	}
	return subject + " unlocked"
}
