package handlers

import (
	"net/http"
	"strconv"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// documentHandler serves a client's own document months.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade) {
	h := &documentHandler{documentService: ds}

	documents := rg.Group("/documents")
	{
		documents.POST("/upload", h.upload)
		documents.GET("/:year/:month", h.getMonth)
	}
}

// upload godoc
// @Summary Record an uploaded file
// @Description Appends a file to one category of the caller's month. Locked months and categories reject uploads.
// @Tags client
// @Accept json
// @Produce json
// @Param file body dto.UploadDocumentRequest true "Uploaded file"
// @Success 201 {object} dto.UploadDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Month or category locked"
// @Security BearerAuth
// @Router /client/documents/upload [post]
func (h *documentHandler) upload(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "upload request", err)
		return
	}
	result, err := h.documentService.RecordUpload(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to record upload")
		return
	}
	c.JSON(http.StatusCreated, dto.UploadDocumentResponse{Month: *result.Month, Warnings: result.Warnings})
}

// getMonth godoc
// @Summary One month of documents
// @Tags client
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} dto.MonthDocumentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /client/documents/{year}/{month} [get]
func (h *documentHandler) getMonth(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	year, yErr := strconv.Atoi(c.Param("year"))
	month, mErr := strconv.Atoi(c.Param("month"))
	if yErr != nil || mErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Year and month must be numbers"})
		return
	}
	doc, err := h.documentService.GetMonthDocument(c.Request.Context(), actor, actor.UserID, domain.Period{Year: year, Month: month})
	if err != nil {
		handleServiceError(c, err, "Failed to load month")
		return
	}
	c.JSON(http.StatusOK, dto.MonthDocumentResponse{Month: *doc})
}
