package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeAdminHandler handles the admin side of employees and task allocation.
type employeeAdminHandler struct {
	employeeService   portssvc.EmployeeSvcFacade
	assignmentService portssvc.AssignmentSvcFacade
}

func newEmployeeAdminHandler(es portssvc.EmployeeSvcFacade, as portssvc.AssignmentSvcFacade) *employeeAdminHandler {
	return &employeeAdminHandler{
		employeeService:   es,
		assignmentService: as,
	}
}

// registerEmployeeAdminRoutes registers the /admin-employee routes on an admin-only group.
func registerEmployeeAdminRoutes(rg *gin.RouterGroup, es portssvc.EmployeeSvcFacade, as portssvc.AssignmentSvcFacade) {
	h := newEmployeeAdminHandler(es, as)

	rg.GET("", h.listEmployees)
	rg.POST("", h.createEmployee)
	rg.GET("/profile/:id", h.getEmployee)
	rg.GET("/client-tasks-status/:clientId", h.clientTaskStatus)
	rg.GET("/check-client-documents/:clientId", h.checkClientDocuments)
	rg.POST("/assign-client", h.assignClient)
	rg.DELETE("/remove-assignment", h.removeAssignment)
	rg.POST("/deactivate/:id", h.deactivateEmployee)
	rg.POST("/activate/:id", h.activateEmployee)
}

// listEmployees godoc
// @Summary List employees
// @Tags admin-employee
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Param includeInactive query bool false "Include deactivated employees"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin-employee [get]
func (h *employeeAdminHandler) listEmployees(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, "employee list query", err)
		return
	}
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// createEmployee godoc
// @Summary Add an employee
// @Tags admin-employee
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already used"
// @Security BearerAuth
// @Router /admin-employee [post]
func (h *employeeAdminHandler) createEmployee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "create employee request", err)
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to create employee")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// getEmployee godoc
// @Summary Employee profile
// @Tags admin-employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin-employee/profile/{id} [get]
func (h *employeeAdminHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to load employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// clientTaskStatus godoc
// @Summary Task status of a client month
// @Description Lists every task of the month with its assignee, plus the tasks still available.
// @Tags admin-employee
// @Produce json
// @Param clientId path string true "Client ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.TaskStatus
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin-employee/client-tasks-status/{clientId} [get]
func (h *employeeAdminHandler) clientTaskStatus(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingError(c, "task status query", err)
		return
	}
	status, err := h.assignmentService.GetTaskStatus(c.Request.Context(), c.Param("clientId"), q.Period())
	if err != nil {
		handleServiceError(c, err, "Failed to load task status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// checkClientDocuments godoc
// @Summary Check required documents
// @Description Reports whether sales, purchase and bank each hold at least one file for the month.
// @Tags admin-employee
// @Produce json
// @Param clientId path string true "Client ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} domain.DocumentCheck
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin-employee/check-client-documents/{clientId} [get]
func (h *employeeAdminHandler) checkClientDocuments(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingError(c, "document check query", err)
		return
	}
	check, err := h.assignmentService.CheckClientDocuments(c.Request.Context(), c.Param("clientId"), q.Period())
	if err != nil {
		handleServiceError(c, err, "Failed to check client documents")
		return
	}
	c.JSON(http.StatusOK, check)
}

// assignClient godoc
// @Summary Assign a task
// @Description Gives one task of a client month to an employee. Requires sales, purchase and bank documents.
// @Tags admin-employee
// @Accept json
// @Produce json
// @Param assignment body dto.AssignClientRequest true "Assignment"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Task already assigned"
// @Failure 422 {object} ErrorResponse "Required documents missing"
// @Security BearerAuth
// @Router /admin-employee/assign-client [post]
func (h *employeeAdminHandler) assignClient(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "assign request", err)
		return
	}
	assignment, err := h.assignmentService.Assign(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to assign task")
		return
	}
	c.JSON(http.StatusCreated, dto.AssignmentResponse{
		Message:    string(assignment.Task) + " assigned",
		Assignment: *assignment,
	})
}

// removeAssignment godoc
// @Summary Remove an assignment
// @Description Soft-removes the active assignment matching the full tuple. Finished work cannot be removed.
// @Tags admin-employee
// @Accept json
// @Produce json
// @Param assignment body dto.RemoveAssignmentRequest true "Assignment tuple"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Accounting already done"
// @Security BearerAuth
// @Router /admin-employee/remove-assignment [delete]
func (h *employeeAdminHandler) removeAssignment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.RemoveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "remove assignment request", err)
		return
	}
	if err := h.assignmentService.RemoveAssignment(c.Request.Context(), actor, req); err != nil {
		handleServiceError(c, err, "Failed to remove assignment")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Assignment removed"})
}

// deactivateEmployee godoc
// @Summary Deactivate an employee
// @Description Marks the employee inactive and removes its active assignments of the current month.
// @Tags admin-employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.DeactivateEmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already inactive"
// @Security BearerAuth
// @Router /admin-employee/deactivate/{id} [post]
func (h *employeeAdminHandler) deactivateEmployee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	result, err := h.assignmentService.DeactivateEmployee(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to deactivate employee")
		return
	}
	c.JSON(http.StatusOK, dto.DeactivateEmployeeResponse{Message: "Employee deactivated", Result: *result})
}

// activateEmployee godoc
// @Summary Activate an employee
// @Description Re-activates the employee. Assignments removed by deactivation are not restored.
// @Tags admin-employee
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already active"
// @Security BearerAuth
// @Router /admin-employee/activate/{id} [post]
func (h *employeeAdminHandler) activateEmployee(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	employee, err := h.assignmentService.ActivateEmployee(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Failed to activate employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}
