package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "userhub/internal/errors"
	"userhub/internal/service"
	"userhub/internal/upload"
)

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest carries email and password for signup and login.
// Both JSON and multipart form bodies are accepted so signup can ship an
// avatar file alongside the credentials.
type CredentialsRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// UserSummary is the user shape returned by signup.
type UserSummary struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL"`
}

// LoginUser is the user shape returned by login; it omits the avatar URL.
type LoginUser struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

// LoginResponse is the login success body.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body CredentialsRequest true "Signup data"
// @Success 201 {object} map[string]UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password, upload.FromContext(c))
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]UserSummary{
		"user": {
			Email:        user.Email,
			Subscription: user.Subscription,
			AvatarURL:    user.AvatarURL,
		},
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		return c.JSON(he.StatusCode, he.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: LoginUser{
			Email:        user.Email,
			Subscription: user.Subscription,
		},
	})
}
