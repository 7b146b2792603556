package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// newTestRouter wires the real routes without a database. Only paths that
// abort before touching the DB may be exercised here; everything else lives
// in the integration tests.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	initLogger()
	jwtSecret = []byte("test-secret")
	t.Setenv("UPLOAD_BASE", t.TempDir())
	r := gin.New()
	setupRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGuardRejectsMissingToken(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{"/me", "/admin/summary", "/admin/banners"} {
		if rec := doRequest(r, http.MethodGet, path, ""); rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, rec.Code)
		}
	}
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(r, http.MethodGet, "/admin/summary", "not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestGuardRejectsWrongSignature(t *testing.T) {
	r := newTestRouter(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatal(err)
	}
	rec := doRequest(r, http.MethodGet, "/admin/summary", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	r := newTestRouter(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": 1,
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	rec := doRequest(r, http.MethodGet, "/me", signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d, want 401", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)
	rec := doRequest(r, http.MethodOptions, "/storefront", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}
