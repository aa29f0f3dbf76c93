package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
)

var testSecret = []byte("test-secret")

func get(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	var seen auth.Principal
	e := echo.New()
	e.HideBanner = true
	e.Use(Auth(testSecret))
	e.GET("/me", func(c echo.Context) error {
		seen, _ = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})

	token, err := SignToken(testSecret, auth.Principal{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	rec := get(e, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if seen.UserID != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" || seen.Role != auth.RoleAdmin {
		t.Errorf("unexpected principal: %+v", seen)
	}
}

func TestAuth_UnknownRoleDowngradesToUser(t *testing.T) {
	var seen auth.Principal
	e := echo.New()
	e.HideBanner = true
	e.Use(Auth(testSecret))
	e.GET("/me", func(c echo.Context) error {
		seen, _ = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"role": "SUPERUSER",
	})
	token, _ := raw.SignedString(testSecret)
	if rec := get(e, "Bearer "+token); rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if seen.Role != auth.RoleUser {
		t.Errorf("role = %s, want USER", seen.Role)
	}
}

func TestAuth_Rejections(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.Use(Auth(testSecret))
	e.GET("/me", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// missing header
	if rec := get(e, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("missing header => want 401, got %d", rec.Code)
	}
	// not a bearer token
	if rec := get(e, "Basic abc"); rec.Code != http.StatusUnauthorized {
		t.Errorf("basic auth => want 401, got %d", rec.Code)
	}
	// garbage token
	if rec := get(e, "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token => want 401, got %d", rec.Code)
	}
	// wrong secret
	wrong, _ := SignToken([]byte("other-secret"), auth.Principal{UserID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: auth.RoleUser})
	if rec := get(e, "Bearer "+wrong); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret => want 401, got %d", rec.Code)
	}
	// token without a subject
	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "USER"})
	raw, _ := noSub.SignedString(testSecret)
	if rec := get(e, "Bearer "+raw); rec.Code != http.StatusUnauthorized {
		t.Errorf("no subject => want 401, got %d", rec.Code)
	}
}
