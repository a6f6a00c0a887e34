package middleware // middleware provides shared request processing for handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/planora/event-booking-api/internal/repository"
)

// Authenticate returns an Echo middleware that validates a Bearer
// access token and resolves the caller's live identity. The token's
// role claim is advisory only: after the signature and expiry check the
// middleware re-fetches the user row and stores the live role in the
// context, so a stale token can never grant a role the account no
// longer has. A claim/live mismatch is logged and the request proceeds
// with the live role.
//
// On success the context carries "user_id" (uint64) and "role" (string).
func Authenticate(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject tokens signed with anything but HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			uid, ok := subjectID(claims["sub"])
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// The token may outlive the account; the live row is
			// authoritative for both existence and role.
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user no longer exists"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth lookup failed"})
			}
			if claimRole, _ := claims["role"].(string); claimRole != "" && claimRole != string(u.Role) {
				log.Printf("auth: role claim mismatch for user %d (token=%q live=%q)", uid, claimRole, u.Role)
			}

			c.Set("user_id", u.ID)
			c.Set("role", string(u.Role))
			return next(c)
		}
	}
}

// subjectID converts the sub claim into a user ID. jwt/v5 decodes JSON
// numbers as float64; strings are tolerated for robustness.
func subjectID(v interface{}) (uint64, bool) {
	switch t := v.(type) {
	case float64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
