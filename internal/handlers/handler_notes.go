package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// notesHandler serves the note thread of a client to all three roles.
// The service decides what each role may see and which viewed flag it sets.
type notesHandler struct {
	noteService portssvc.NoteSvcFacade
}

// noteRoutes says which note routes a role group gets.
type noteRoutes struct {
	canAdd bool
	// byClient puts the client id in the list path; clients read their own thread.
	byClient bool
}

func registerNoteRoutes(rg *gin.RouterGroup, ns portssvc.NoteSvcFacade, opts noteRoutes) {
	h := &notesHandler{noteService: ns}

	notes := rg.Group("/notes")
	if opts.canAdd {
		notes.POST("", h.addNote)
	}
	notes.GET("/unread-count", h.unreadCount)
	notes.POST("/mark-as-viewed", h.markAsViewed)
	if opts.byClient {
		notes.GET("/:clientId", h.listNotes)
	} else {
		notes.GET("", h.listNotes)
	}
}

// addNote godoc
// @Summary Add a note
// @Description Attaches a note to a month, a category or a file. Clients write on their own months only.
// @Tags notes
// @Accept json
// @Produce json
// @Param note body dto.AddNoteRequest true "Note"
// @Success 201 {object} dto.NoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /client/notes [post]
// @Router /employee/notes [post]
func (h *notesHandler) addNote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "add note request", err)
		return
	}
	note, err := h.noteService.AddNote(c.Request.Context(), actor, req)
	if err != nil {
		handleServiceError(c, err, "Failed to add note")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Note added",
		slog.String("note_id", note.NoteID), slog.String("client_id", note.ClientID))
	c.JSON(http.StatusCreated, dto.NoteResponse{Note: *note})
}

// listNotes godoc
// @Summary List notes of a client
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags notes
// @Produce json
// @Param clientId path string false "Client ID (admin and employee routes)"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListNotesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/notes/{clientId} [get]
// @Router /employee/notes/{clientId} [get]
// @Router /client/notes [get]
func (h *notesHandler) listNotes(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var params dto.ListNotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, "note list query", err)
		return
	}
	notes, next, err := h.noteService.ListNotes(c.Request.Context(), actor, c.Param("clientId"), params)
	if err != nil {
		handleServiceError(c, err, "Failed to list notes")
		return
	}
	c.JSON(http.StatusOK, dto.ListNotesResponse{Notes: notes, NextToken: next})
}

// unreadCount godoc
// @Summary Unread note count
// @Description Counts notes the caller's role has not viewed, per client. Without clientId it covers every visible client.
// @Tags notes
// @Produce json
// @Param clientId query string false "Client ID"
// @Success 200 {object} domain.UnreadCount
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/notes/unread-count [get]
// @Router /employee/notes/unread-count [get]
// @Router /client/notes/unread-count [get]
func (h *notesHandler) unreadCount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var params dto.UnreadCountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, "unread count query", err)
		return
	}
	count, err := h.noteService.CountUnread(c.Request.Context(), actor, params.ClientID)
	if err != nil {
		handleServiceError(c, err, "Failed to count unread notes")
		return
	}
	c.JSON(http.StatusOK, count)
}

// markAsViewed godoc
// @Summary Mark notes as viewed
// @Description Sets the caller role's viewed flag on the notes selected by noteIds or by filter. Other roles' flags are untouched.
// @Tags notes
// @Accept json
// @Produce json
// @Param selection body dto.MarkNotesViewedRequest true "Notes to mark"
// @Success 200 {object} dto.MarkNotesViewedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/notes/mark-as-viewed [post]
// @Router /employee/notes/mark-as-viewed [post]
// @Router /client/notes/mark-as-viewed [post]
func (h *notesHandler) markAsViewed(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.MarkNotesViewedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, "mark viewed request", err)
		return
	}
	updated, err := h.noteService.MarkViewed(c.Request.Context(), actor, req.ClientID, req.Scope())
	if err != nil {
		handleServiceError(c, err, "Failed to mark notes as viewed")
		return
	}
	c.JSON(http.StatusOK, dto.MarkNotesViewedResponse{Message: "Notes marked as viewed", Updated: updated})
}
