package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"taskapi/internal/apperr"
)

const userIDKey = "user_id"

// requireAuth rejects requests without a valid bearer token for an existing
// user and stores that user's id on the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return apperr.Auth("missing bearer token")
		}

		userID, err := s.tokens.Parse(token)
		if err != nil {
			return apperr.Auth("invalid or expired token")
		}
		user, err := s.auth.Authenticate(c.Request().Context(), userID)
		if err != nil {
			return err
		}

		c.Set(userIDKey, user.ID)
		return next(c)
	}
}

// currentUserID is only valid behind requireAuth.
func currentUserID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}
