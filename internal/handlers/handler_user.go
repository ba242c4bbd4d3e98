package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
	"github.com/groupsoftware/minhasfinancas/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService  portssvc.UserSvcFacade
	entryService portssvc.EntrySvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, es portssvc.EntrySvcFacade) *userHandler {
	return &userHandler{
		userService:  us,
		entryService: es,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, entryService portssvc.EntrySvcFacade) {
	h := newUserHandler(userService, entryService)

	users := rg.Group("/users")
	{
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.GET("/:id/balance", h.getBalance)
	}
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves the authenticated user's own record.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return
	}
	if loggedInUserID != userID {
		appErr := &apperrors.AppError{Code: http.StatusForbidden, Message: "Forbidden"}
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("User not found")
			c.JSON(appErr.Code, appErr)
		} else {
			logger.Error("Failed to get user", slog.String("error", err.Error()))
			appErr := apperrors.NewInternalServerError("Failed to retrieve user")
			c.JSON(appErr.Code, appErr)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user's profile
// @Description Updates the authenticated user's own profile fields.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return
	}
	if loggedInUserID != userID {
		appErr := &apperrors.AppError{Code: http.StatusForbidden, Message: "Forbidden"}
		c.JSON(appErr.Code, appErr)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Invalid request body: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("User not found")
			c.JSON(appErr.Code, appErr)
		} else {
			logger.Error("Failed to update user", slog.String("error", err.Error()))
			appErr := apperrors.NewInternalServerError("Failed to update user")
			c.JSON(appErr.Code, appErr)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getBalance godoc
// @Summary Get a user's net balance
// @Description Returns income minus expense over all of the user's entries,
// @Description regardless of status. Zero when the user has no entries.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} apperrors.AppError
// @Failure 404 {object} apperrors.AppError
// @Security BearerAuth
// @Router /users/{id}/balance [get]
func (h *userHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	loggedInUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		appErr := apperrors.NewUnauthorizedError("Unauthorized")
		c.JSON(appErr.Code, appErr)
		return
	}
	if loggedInUserID != userID {
		appErr := &apperrors.AppError{Code: http.StatusForbidden, Message: "Forbidden"}
		c.JSON(appErr.Code, appErr)
		return
	}

	// The aggregator itself is status- and existence-blind; the user check
	// lives here at the boundary.
	if _, err := h.userService.GetUserByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("User not found")
			c.JSON(appErr.Code, appErr)
		} else {
			logger.Error("Failed to get user", slog.String("error", err.Error()))
			appErr := apperrors.NewInternalServerError("Failed to retrieve user")
			c.JSON(appErr.Code, appErr)
		}
		return
	}

	balance, err := h.entryService.BalanceForUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute balance", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to compute balance")
		c.JSON(appErr.Code, appErr)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}
