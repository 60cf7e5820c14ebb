package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// CallerKey is the echo context key under which Auth stores the resolved
// domain.CallerContext.
const CallerKey = "caller"

// OptionalAuth behaves like Auth when an Authorization header is present
// and lets the request through without a caller context when it is not.
// Routes that serve both anonymous and authenticated callers use this.
func OptionalAuth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	required := Auth(jwtSecret, users)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			return required(next)(c)
		}
	}
}

// Auth validates the JWT, resolves the account it names, and injects a
// caller context. Tokens for deleted accounts are rejected with 401 and
// tokens for banned accounts with 403, so a ban takes effect on the next
// request rather than at token expiry.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
			}
			if user.Banned {
				return echo.NewHTTPError(http.StatusForbidden, "account banned")
			}

			c.Set(CallerKey, domain.CallerContext{
				UserID:      user.ID,
				Role:        user.Role,
				Permissions: domain.PermissionsFor(user.Role),
			})

			return next(c)
		}
	}
}
