package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckerDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	assert.True(t, c.Has("student", "predict:run"))
	assert.True(t, c.Has("student", "question:delete"))
	assert.True(t, c.Has("student", "test:submit"))
	assert.False(t, c.Has("student", "cutoff:delete"))
	assert.False(t, c.Has("student", "document:delete"))
	assert.True(t, c.Has("admin", "cutoff:delete"))
	assert.False(t, c.Has("guest", "predict:run"))

	assert.True(t, c.Any("student", "cutoff:delete", "cutoff:view"))
	assert.False(t, c.Any("student", "cutoff:delete", "document:delete"))
}

func TestCustomPolicyPrefixes(t *testing.T) {
	c := NewChecker(map[string][]string{
		"editor": {"question:*", "predict:run"},
	})
	assert.True(t, c.Has("editor", "question:edit"))
	assert.True(t, c.Has("editor", "predict:run"))
	assert.False(t, c.Has("editor", "predict:runall"))
	assert.False(t, c.Has("editor", "questions"))
	assert.False(t, c.Has("student", "predict:run"), "roles outside the policy have nothing")
}

func TestRequire(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Require("cutoff:delete")(ok)

	for role, want := range map[string]int{
		"admin":   http.StatusNoContent,
		"student": http.StatusForbidden,
		"":        http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
}
