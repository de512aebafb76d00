package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userhub/internal/config"
	"userhub/internal/handler"
	"userhub/internal/upload"
)

// uploadBodyLimit bounds the whole multipart body; the receiver enforces the
// exact 1 MiB file ceiling underneath it.
const uploadBodyLimit = "2M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	guard []echo.MiddlewareFunc,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Stored avatars are served straight from the public directory.
	e.Static("/avatars", cfg.AvatarDir)

	receive := upload.Receive(cfg.UploadDir, "avatar")

	// Public routes
	e.POST("/signup", authHandler.Signup, middleware.BodyLimit(uploadBodyLimit), receive)
	e.POST("/login", authHandler.Login)

	// Secured routes (require a valid bearer token)
	e.GET("/current", userHandler.Current, guard...)

	avatarChain := append(append([]echo.MiddlewareFunc{}, guard...), middleware.BodyLimit(uploadBodyLimit), receive)
	e.PATCH("/avatars", userHandler.UpdateAvatar, avatarChain...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
