package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrimitra/entities"
)

const (
	HeaderUserID = "X-User-Id"
	CookieUserID = "uid"

	ctxUserID = "uid"
	ctxRole   = "role"
)

// UserResolver looks up a caller by id.
type UserResolver interface {
	Resolve(ctx context.Context, id uint) (*entities.User, error)
}

// Identity reads the caller id from the X-User-Id header or the uid cookie
// and, when present, resolves it to a verified (user_id, role) pair stored on
// the context. Requests without an id pass through anonymously; an id that
// does not resolve is rejected with 401.
func Identity(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				if ck, err := c.Cookie(CookieUserID); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				return next(c)
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid caller id"})
			}
			u, err := users.Resolve(c.Request().Context(), uint(id))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown caller"})
			}
			c.Set(ctxUserID, u.ID)
			c.Set(ctxRole, u.Role)
			return next(c)
		}
	}
}

// CallerID returns the verified caller id, or 0 for anonymous requests.
func CallerID(c echo.Context) uint {
	id, _ := c.Get(ctxUserID).(uint)
	return id
}

// CallerRole returns the verified caller role, or "" for anonymous requests.
func CallerRole(c echo.Context) entities.Role {
	r, _ := c.Get(ctxRole).(entities.Role)
	return r
}
