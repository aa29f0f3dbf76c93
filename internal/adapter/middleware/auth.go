package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
)

// principalKey is where the authenticated principal lives in the echo context.
const principalKey = "principal"

// Auth parses a Bearer token signed with the shared HMAC secret and stores the
// resulting principal in the request context. Claims: sub is the user id,
// role is USER or ADMIN.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token missing subject"})
			}
			p := auth.Principal{UserID: sub, Role: auth.Role(role)}
			if p.Role != auth.RoleAdmin {
				p.Role = auth.RoleUser
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal the auth middleware stored, if any.
func PrincipalFrom(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(principalKey).(auth.Principal)
	return p, ok
}

// SetPrincipal stores a principal the way Auth does. Handler tests use it in
// place of the full token round-trip.
func SetPrincipal(c echo.Context, p auth.Principal) {
	c.Set(principalKey, p)
}

// SignToken issues a token for a principal. Used by tests and tooling; the
// service itself never mints tokens.
func SignToken(secret []byte, p auth.Principal) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  p.UserID,
		"role": string(p.Role),
	})
	return t.SignedString(secret)
}
