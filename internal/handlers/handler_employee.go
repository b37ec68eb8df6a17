package handlers

import (
	"net/http"

	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// employeeHandler serves an employee's own assignments.
type employeeHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func registerEmployeeRoutes(rg *gin.RouterGroup, as portssvc.AssignmentSvcFacade) {
	h := &employeeHandler{assignmentService: as}

	assignments := rg.Group("/assignments")
	{
		assignments.GET("", h.listAssignments)
		assignments.POST("/accounting-done", h.accountingDone)
	}
}

// listAssignments godoc
// @Summary My assignments
// @Description Lists the caller's active assignments, optionally for one month.
// @Tags employee
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} dto.ListAssignmentsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /employee/assignments [get]
func (h *employeeHandler) listAssignments(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var q dto.OptionalPeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingError(c, "assignment list query", err)
		return
	}
	assignments, err := h.assignmentService.ListEmployeeAssignments(c.Request.Context(), actor.UserID, q.Period())
	if err != nil {
		handleServiceError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ListAssignmentsResponse{Assignments: assignments})
}

// accountingDone godoc
// @Summary Mark accounting done
// @Description Called by the assigned employee when the task is finished.
// @Tags employee
// @Accept json
// @Produce json
// @Param done body dto.AccountingDoneRequest true "Finished task"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already done"
// @Security BearerAuth
// @Router /employee/assignments/accounting-done [post]
func (h *employeeHandler) accountingDone(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AccountingDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "accounting done request", err)
		return
	}
	assignment, err := h.assignmentService.MarkAccountingDone(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to mark accounting done")
		return
	}
	c.JSON(http.StatusOK, dto.AssignmentResponse{Message: "Accounting marked done", Assignment: *assignment})
}
