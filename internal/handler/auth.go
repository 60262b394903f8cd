package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/utils"
)

// AuthHandler implements login and the current-user lookup. There is no
// registration endpoint: admin accounts are seeded at startup and the bearer
// token is assigned there, once.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserRepository
}

func NewAuthHandler(cfg config.Config, users repository.UserRepository) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// Login verifies a username/password pair. The stored password is the
// reversible transform keyed by the record's internal id, so verification
// decodes it back to plaintext and compares verbatim. Success returns the
// sanitized user plus the static access token.
func (h *AuthHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password required!"})
	}
	if len(username) < h.Cfg.UsernameMin || len(username) > h.Cfg.UsernameMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("The length of the \"Username\" should be %d characters or more and less than %d characters!", h.Cfg.UsernameMin, h.Cfg.UsernameMax)})
	}
	if len(password) < h.Cfg.PasswordMin || len(password) > h.Cfg.PasswordMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("The length of the \"Password\" should be %d characters or more and less than %d characters!", h.Cfg.PasswordMin, h.Cfg.PasswordMax)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Username or password entered incorrectly!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed, try again later!"})
	}

	if password != utils.DecodePassword(u.Password, u.ID, h.Cfg.PasswordMarker) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Username or password entered incorrectly!"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       http.StatusOK,
		"message":      "You entered your account successfully!",
		"user":         u.View(),
		"access_token": u.Token,
	})
}

// Me resolves the Authorization header verbatim against stored tokens and
// returns the matching credential, sans secrets.
func (h *AuthHandler) Me(c echo.Context) error {
	token := c.Request().Header.Get("Authorization")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Token not found in request headers!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized. Token not found in the database."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Lookup failed, try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": http.StatusOK, "user": u.View()})
}
