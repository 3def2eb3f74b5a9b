package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker(t *testing.T) {
	c := NewChecker(nil)
	assert.True(t, c.Has("student", "session:take"))
	assert.False(t, c.Has("student", "bank:write"))
	assert.False(t, c.Has("student", "result:view-all"))
	assert.True(t, c.Has("admin", "bank:write"))
	assert.False(t, c.Has("guest", "category:list"))

	assert.True(t, c.Any("student", "bank:write", "category:list"))
	assert.False(t, c.Any("student", "bank:write", "users:list"))
}

func TestMatchPerm_Wildcard(t *testing.T) {
	c := NewChecker(map[string][]string{"editor": {"bank:*"}})
	assert.True(t, c.Has("editor", "bank:delete"))
	assert.False(t, c.Has("editor", "session:take"))
}

func TestCan(t *testing.T) {
	assert.True(t, Can(WithRole(context.Background(), "admin"), "result:view-all"))
	assert.False(t, Can(WithRole(context.Background(), "student"), "result:view-all"))
	assert.False(t, Can(context.Background(), "category:list"))
}

func TestRequire(t *testing.T) {
	h := Require("bank:write")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	for role, want := range map[string]int{"admin": http.StatusOK, "student": http.StatusForbidden, "": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, want, rr.Code, "role %q", role)
		if want == http.StatusForbidden {
			assert.JSONEq(t, `{"error":"forbidden"}`, rr.Body.String())
		}
	}
}

func TestRequireAny(t *testing.T) {
	h := RequireAny("result:view-own", "result:view-all")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(WithRole(context.Background(), "student"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = req.WithContext(WithRole(context.Background(), "guest"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
