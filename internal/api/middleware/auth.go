package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uwgen/media-api/internal/api/metrics"
	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
	"github.com/uwgen/media-api/internal/pkg/token"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session_id"

// userContextKey is where the resolved user is stored on the echo context.
const userContextKey = "current_user"

// Auth resolves the caller's identity from either a bearer token or the
// server-side session and injects the user into the request context.
//
// When an Authorization header is present it is the caller's stated
// credential: a malformed, expired, or invalid bearer never falls back to
// the session. Only a request with no header at all consults the cookie.
func Auth(issuer *token.Issuer, users ports.UserRepository, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header != "" {
				user, err := resolveBearer(c, header, issuer, users)
				if err != nil {
					return err
				}
				c.Set(userContextKey, user)
				return next(c)
			}

			user, err := resolveSession(c, users, sessions)
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func resolveBearer(c echo.Context, header string, issuer *token.Issuer, users ports.UserRepository) (*domain.User, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		metrics.AuthFailuresTotal.WithLabelValues("malformed").Inc()
		return nil, domain.ErrUnauthenticated
	}

	subject, err := issuer.Verify(parts[1])
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			metrics.AuthFailuresTotal.WithLabelValues("expired").Inc()
		} else {
			metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
		}
		return nil, domain.ErrUnauthenticated
	}

	user, err := users.FindByID(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A token for a deleted or unknown user is not trusted.
			metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func resolveSession(c echo.Context, users ports.UserRepository, sessions ports.SessionStore) (*domain.User, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	session, err := sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if session == nil {
		metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	user, err := users.FindByEmail(c.Request().Context(), session.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser extracts the authenticated user injected by Auth.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(userContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
