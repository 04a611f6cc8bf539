package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/apperror"
	"taskflow/model"

	"github.com/gin-gonic/gin"
)

type stubAuth map[string]*model.User

func (s stubAuth) Authenticate(_ context.Context, header string) (*model.User, error) {
	if u, ok := s[header]; ok {
		return u, nil
	}
	return nil, apperror.Unauthorized("Not authorized, no token")
}

func newEngine(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/me", AccessTokenMiddleware(auth), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID)
	})
	r.GET("/admin", AccessTokenMiddleware(auth), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAccessAndAdminMiddleware(t *testing.T) {
	r := newEngine(stubAuth{
		"Bearer admin":  {ID: "a", Role: model.RoleAdmin},
		"Bearer member": {ID: "m", Role: model.RoleMember},
	})

	if w := do(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := do(r, "/me", "Bearer member"); w.Code != http.StatusOK || w.Body.String() != "m" {
		t.Fatalf("expected member id, got %d %q", w.Code, w.Body.String())
	}
	if w := do(r, "/admin", "Bearer member"); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member, got %d", w.Code)
	}
	if w := do(r, "/admin", "Bearer admin"); w.Code != http.StatusNoContent {
		t.Fatalf("expected admin through, got %d", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newEngine(stubAuth{})
	w := do(r, "/me", "")
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(requestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc" {
		t.Fatalf("expected propagated id, got %q", got)
	}
}
