package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
	"github.com/groupsoftware/minhasfinancas/internal/middleware"
)

// entryHandler handles HTTP requests for financial entries. The
// authenticated user is always the owner: entries of other users are
// indistinguishable from missing ones.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{entryService: es}
}

// registerEntryRoutes registers all entry-related routes.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.PUT("/:id/status", h.updateEntryStatus)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a new entry
// @Description Creates a financial entry owned by the authenticated user.
// @Description Status defaults to PENDING when omitted.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.SaveEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return
	}

	entry := domain.Entry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		Type:        domain.EntryType(req.Type),
		Status:      domain.EntryStatus(req.Status),
		OwnerID:     ownerID,
	}

	created, err := h.entryService.CreateEntry(c.Request.Context(), entry)
	if err != nil {
		h.respondEntryError(c, logger, err)
		return
	}

	logger.Info("Entry created", slog.String("entry_id", created.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(created))
}

// listEntries godoc
// @Summary Search entries
// @Description Lists the authenticated user's entries, optionally filtered
// @Description by description, month and year. Omitted filters match all.
// @Tags entries
// @Produce json
// @Param description query string false "Substring of the description"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year (4 digits)"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid query parameters: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return
	}

	entries, err := h.entryService.SearchEntries(c.Request.Context(), domain.EntryFilter{
		OwnerID:     ownerID,
		Description: params.Description,
		Month:       params.Month,
		Year:        params.Year,
	})
	if err != nil {
		logger.Error("Failed to search entries", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to search entries")
		c.JSON(appErr.Code, appErr)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryListResponse(entries))
}

// getEntry godoc
// @Summary Get an entry by ID
// @Tags entries
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	entry, ok := h.ownedEntry(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update an entry
// @Description Replaces the mutable fields of an entry and revalidates it.
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.SaveEntryRequest true "Entry details"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries/{id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	existing, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	updated := *existing
	updated.Description = req.Description
	updated.Month = req.Month
	updated.Year = req.Year
	updated.Value = req.Value
	updated.Type = domain.EntryType(req.Type)
	if req.Status != "" {
		updated.Status = domain.EntryStatus(req.Status)
	}

	result, err := h.entryService.UpdateEntry(c.Request.Context(), updated)
	if err != nil {
		h.respondEntryError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(result))
}

// updateEntryStatus godoc
// @Summary Update the status of an entry
// @Description Sets the entry status. Any recognized status may be set from
// @Description any other; unrecognized values are rejected.
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param status body dto.UpdateEntryStatusRequest true "Target status"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries/{id}/status [put]
func (h *entryHandler) updateEntryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	existing, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	result, err := h.entryService.ChangeEntryStatus(c.Request.Context(), *existing, req.Status)
	if err != nil {
		h.respondEntryError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(result))
}

// deleteEntry godoc
// @Summary Delete an entry
// @Tags entries
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /entries/{id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	existing, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), *existing); err != nil {
		h.respondEntryError(c, logger, err)
		return
	}

	logger.Info("Entry deleted", slog.String("entry_id", existing.EntryID))
	c.Status(http.StatusNoContent)
}

// ownedEntry loads the entry from the path parameter and checks it belongs
// to the authenticated user. Entries of other users answer 404 so their
// existence is not leaked. Writes the error response itself on failure.
func (h *entryHandler) ownedEntry(c *gin.Context) (*domain.Entry, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return nil, false
	}

	entryID := c.Param("id")
	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("Entry not found")
			c.JSON(appErr.Code, appErr)
		} else {
			logger.Error("Failed to load entry", slog.String("error", err.Error()))
			appErr := apperrors.NewInternalServerError("Failed to load entry")
			c.JSON(appErr.Code, appErr)
		}
		return nil, false
	}

	if entry.OwnerID != userID {
		appErr := apperrors.NewNotFoundError("Entry not found")
		c.JSON(appErr.Code, appErr)
		return nil, false
	}
	return entry, true
}

func (h *entryHandler) respondEntryError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrMissingEntryID):
		appErr := apperrors.NewBadRequestError(err.Error())
		c.JSON(appErr.Code, appErr)
	case errors.Is(err, apperrors.ErrNotFound):
		appErr := apperrors.NewNotFoundError("Entry not found")
		c.JSON(appErr.Code, appErr)
	default:
		logger.Error("Entry operation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Entry operation failed")
		c.JSON(appErr.Code, appErr)
	}
}
