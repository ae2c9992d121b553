package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lvieira/catalogo-api/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireLogin rejects the request before the handler runs unless the
// Authorization header carries a valid, unexpired bearer token. The decoded
// user id is stored on the context for downstream handlers.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set("user_id", claims.Subject)

		return next(c)
	}
}
