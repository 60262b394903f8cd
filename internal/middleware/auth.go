package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/repository"
)

// BearerAuth guards mutating routes. The Authorization header carries the
// opaque token exactly as stored on the admin record; its value is compared
// verbatim against the access_token field, no scheme prefix involved. The
// matched credential is stored on the context under "user".
func BearerAuth(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": "Token not found in request headers!"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			u, err := users.FindByToken(ctx, token)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized. Token not found in the database."})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Authorization check failed, try again later!"})
			}

			c.Set("user", u)
			return next(c)
		}
	}
}
