package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meetpulse-team/meetpulse/pkg/jwt"
)

// BotKey returns an Echo middleware that authenticates the ingestion bot
// via the X-Bot-Key header using a constant-time comparison.
func BotKey(expectedKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if expectedKey == "" {
				return echo.NewHTTPError(http.StatusInternalServerError, "BOT_API_KEY is not configured")
			}

			provided := c.Request().Header.Get("X-Bot-Key")
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing bot API key")
			}

			c.Set("caller", "bot")
			return next(c)
		}
	}
}

// EchoAuth returns an Echo middleware that validates the access token and
// sets "user_id" (uuid.UUID), "org_id" and "claims" into the Echo context.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("org_id", claims.OrgID)
			c.Set("claims", claims)

			return next(c)
		}
	}
}

// extractToken pulls the bearer token from the Authorization header, with
// the access_token cookie as fallback.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
