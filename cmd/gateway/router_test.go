package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	auth "github.com/kcetprep/kcetprep/internal/auth/middleware"
	"github.com/kcetprep/kcetprep/internal/college"
	"github.com/kcetprep/kcetprep/internal/db/dbtest"
	"github.com/kcetprep/kcetprep/internal/extract"
	"github.com/kcetprep/kcetprep/internal/practice"
	"github.com/kcetprep/kcetprep/internal/predict"
	"github.com/kcetprep/kcetprep/internal/storage"
	"github.com/kcetprep/kcetprep/internal/uploads"
	"github.com/kcetprep/kcetprep/internal/users"
)

func testServer(t *testing.T) (*httptest.Server, *users.Store) {
	t.Helper()
	dbh := dbtest.Open(t)
	bs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	us := users.NewStore(dbh)
	us.HashCost = bcrypt.MinCost

	h := newRouter(deps{
		DB:    dbh,
		Auth:  auth.NewAuthService("test-secret", time.Hour),
		Users: us,
		Engine: predict.NewEngine(predict.StaticSource{
			{CollegeName: "E001 RV College", Branch: "CS", Category: "GM", ClosingRank: "1000", Year: "2023"},
		}),
		Colleges:       college.NewSQLStore(dbh),
		Uploads:        uploads.NewService(uploads.NewSQLStore(dbh), bs),
		Practice:       practice.NewService(practice.NewSQLStore(dbh)),
		Extractor:      extract.New(extract.Config{URL: "http://127.0.0.1:1/extract", Timeout: time.Second}),
		DatasetPath:    t.TempDir() + "/kcet.csv",
		CORSOrigins:    []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, us
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	res := call(t, srv, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&tok))
	return tok.AccessToken
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/healthz", "", nil).StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/readyz", "", nil).StatusCode)
}

func TestPredictRequiresToken(t *testing.T) {
	srv, _ := testServer(t)
	res := call(t, srv, http.MethodPost, "/predict", "", map[string]any{"rank": 900, "category": "GM"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestStudentAndAdminPermissions(t *testing.T) {
	srv, us := testServer(t)
	_, err := us.EnsureAdmin(context.Background(), "admin@kcetprep.com", "Admin123")
	require.NoError(t, err)

	res := call(t, srv, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "student@example.com", "password": "Secret1",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	student := login(t, srv, "student@example.com", "Secret1")
	admin := login(t, srv, "admin@kcetprep.com", "Admin123")

	res = call(t, srv, http.MethodPost, "/predict", student, map[string]any{"rank": 900, "category": "GM"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var pred struct {
		Results []predict.Result `json:"results"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&pred))
	require.Len(t, pred.Results, 1)
	assert.Equal(t, predict.ChanceHigh, pred.Results[0].Chance)

	assert.Equal(t, http.StatusForbidden, call(t, srv, http.MethodDelete, "/cutoffs/1", student, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, call(t, srv, http.MethodGet, "/users", student, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, call(t, srv, http.MethodPost, "/cutoffs/extract", student, nil).StatusCode)

	assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodDelete, "/cutoffs/1", admin, nil).StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/users", admin, nil).StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/colleges", student, nil).StatusCode)
}
