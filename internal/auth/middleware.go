package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"userhub/internal/model"
)

const userContextKey = "auth.user"

// UserResolver loads a user record by id. Implemented by service.UserService.
type UserResolver interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Guard returns the middleware chain protecting authenticated routes: the
// first stage validates the bearer token's signature and expiry, the second
// resolves the token's user record and attaches it to the request context.
// Every failure mode answers 401 with the same message.
func Guard(jwtService *JWTService, users UserResolver) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey: jwtService.secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
		},
	})

	attach := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			user, err := users.GetUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized")
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{verify, attach}
}

// CurrentUser returns the user attached by Guard, or nil outside guarded routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
