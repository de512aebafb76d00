package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"userhub/internal/auth"
	apperrors "userhub/internal/errors"
	"userhub/internal/service"
	"userhub/internal/upload"
)

// UserHandler handles endpoints operating on the authenticated user.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CurrentResponse is the current-user body; exactly these two fields.
type CurrentResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

// AvatarResponse is the avatar-update success body.
type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

// Current godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /current [get]
func (h *UserHandler) Current(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	return c.JSON(http.StatusOK, CurrentResponse{
		Email:        user.Email,
		Subscription: user.Subscription,
	})
}

// UpdateAvatar godoc
// @Summary Upload and set the user's avatar
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image, at most 1 MiB"
// @Success 200 {object} AvatarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /avatars [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
	}
	avatar := upload.FromContext(c)
	if avatar == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}

	avatarURL, err := h.userService.UpdateAvatar(c.Request().Context(), user.ID, avatar)
	if err != nil {
		c.Logger().Error(err)
		he := apperrors.MapErrorToHTTP(err)
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AvatarResponse{AvatarURL: avatarURL})
}
