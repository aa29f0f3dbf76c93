package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/auth"
)

const testUserID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

// helper: new Echo with a stubbed principal, the middleware and a route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalKey, auth.Principal{UserID: testUserID, Role: auth.RoleUser})
			return next(c)
		}
	})
	e.Use(Idempotency(rdb, ttl))
	e.POST("/transfers", handler)
	e.GET("/transfers", handler) // for non-mutating bypass test
	return e
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func Test_BypassOnGET(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/transfers", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_BypassWithoutKey(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	})

	// no Idempotency-Key: every request reaches the handler
	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader([]byte(`{"x":1}`)), nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d => want 201, got %d", i, rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	h := map[string]string{"Idempotency-Key": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	body := []byte(`{"amount":"100"}`)

	rec1 := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader(body), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// same key and body replays the stored response without a second handler call
	rec2 := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader(body), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	idemKey := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	body := []byte(`{"x":1}`)

	// Seed a provisional in-progress entry so SetNX fails.
	key := buildKey(http.MethodPost, "/transfers", testUserID, idemKey)
	entry := idempEntry{
		InProgress: true,
		BodySHA256: bodyHash(body),
		CreatedAt:  time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader(body), map[string]string{"Idempotency-Key": idemKey})
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	idemKey := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	body1 := []byte(`{"x":1}`)
	body2 := []byte(`{"x":2}`)

	key := buildKey(http.MethodPost, "/transfers", testUserID, idemKey)
	final := idempEntry{
		InProgress: false,
		Code:       http.StatusCreated,
		Body:       []byte(`{"ok":true}`),
		BodySHA256: bodyHash(body1),
		CreatedAt:  time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, 5*time.Minute); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader(body2), map[string]string{"Idempotency-Key": idemKey})
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_KeysAreScopedPerUser(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	// two users reusing the same key must not see each other's responses
	calls := 0
	handler := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	}

	newEchoFor := func(userID string) *echo.Echo {
		e := echo.New()
		e.HideBanner = true
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(principalKey, auth.Principal{UserID: userID, Role: auth.RoleUser})
				return next(c)
			}
		})
		e.Use(Idempotency(rdb, time.Minute))
		e.POST("/transfers", handler)
		return e
	}

	h := map[string]string{"Idempotency-Key": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	body := []byte(`{"x":1}`)

	doReq(t, newEchoFor("11111111111111111111111111111111"), http.MethodPost, "/transfers", bytes.NewReader(body), h)
	doReq(t, newEchoFor("22222222222222222222222222222222"), http.MethodPost, "/transfers", bytes.NewReader(body), h)
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (one per user)", calls)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, okCreatedHandler)

	h := map[string]string{"Idempotency-Key": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	rec := doReq(t, e, http.MethodPost, "/transfers", bytes.NewReader([]byte(`{}`)), h)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
