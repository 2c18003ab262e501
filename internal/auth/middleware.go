package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"docvault/internal/model"
)

// InternalHeader carries the shared secret used for service-to-service
// calls. A matching value bypasses both token auth and role checks.
// TODO: replace the static compare with signed service tokens once the
// ingestion side can mint them.
const InternalHeader = "x-internal-request"

// IsInternal reports whether the request carries the internal shared secret.
func IsInternal(c echo.Context, secret string) bool {
	return secret != "" && c.Request().Header.Get(InternalHeader) == secret
}

// CurrentUser returns the claims stored by the JWT middleware, or nil for
// internal-bypass requests that never went through token parsing.
func CurrentUser(c echo.Context) *Claims {
	claims, _ := c.Get("user").(*Claims)
	return claims
}

// RequireRoles allows the request through when the caller's role is in the
// given set, or when the internal shared secret is presented. An empty role
// set means any authenticated caller is allowed.
func RequireRoles(secret string, roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IsInternal(c, secret) {
				return next(c)
			}

			if len(roles) == 0 {
				return next(c)
			}

			claims := CurrentUser(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "you do not have permission to access this route")
		}
	}
}
