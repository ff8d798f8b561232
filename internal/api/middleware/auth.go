package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/selectshop/shop-api/internal/api/metrics"
	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/core/ports"
)

const (
	// CredentialCookie is the cookie carrying the token in browser flows.
	// The cookie value holds the bare token; the "Bearer " prefix travels
	// only in the Authorization header.
	CredentialCookie = "Authorization"

	bearerScheme = "bearer"

	ctxUserKey     = "user"
	ctxUsernameKey = "username"
	ctxRoleKey     = "role"
)

// Authenticate is the per-request authorization gate. Allow-listed paths
// skip it entirely. On every other request it extracts the credential from
// the Authorization header or the auth cookie, verifies it, loads the
// account behind the subject, and binds the identity into the request
// context. A request without a credential passes through unauthenticated;
// RequireUser decides downstream whether that is acceptable. Any invalid,
// expired, or orphaned credential is rejected with 403 and no further
// detail.
func Authenticate(tokens ports.TokenService, users ports.UserRepository, allow *AllowList) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allow.Match(c.Request().URL.Path) {
				return next(c)
			}

			token, found, err := extractCredential(c)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			if !found {
				return next(c)
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "access denied")
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ctxUserKey, user)
			c.Set(ctxUsernameKey, user.Username)
			c.Set(ctxRoleKey, user.Role)

			return next(c)
		}
	}
}

// RequireUser guards protected routes: requests that reached the handler
// without an authenticated identity are rejected.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the account bound by Authenticate, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ctxUserKey).(*domain.User)
	return user
}

// SetCurrentUser binds an identity directly. Test helper.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(ctxUserKey, user)
	c.Set(ctxUsernameKey, user.Username)
	c.Set(ctxRoleKey, user.Role)
}

var errBadCredentialFormat = errors.New("credential format invalid")

// extractCredential pulls the token from the Authorization header (with the
// Bearer scheme stripped) or, failing that, from the auth cookie (stored
// bare). A present but unparseable header is an error, not an absence.
func extractCredential(c echo.Context) (token string, found bool, err error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], bearerScheme) && parts[1] != "" {
			return parts[1], true, nil
		}
		return "", false, errBadCredentialFormat
	}

	cookie, err := c.Cookie(CredentialCookie)
	if err != nil || cookie.Value == "" {
		return "", false, nil
	}
	return cookie.Value, true, nil
}
