package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-access-control/internal/access"
	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/storage"
)

const testPolicy = `
default_role: viewer
roles:
  admin:
    description: Full access
    permissions:
      - resource: "*"
        actions: ["*"]
  viewer:
    description: Read only
    permissions:
      - resource: "*"
        actions: ["read"]
`

// newAuthRouter builds an engine with authentication enabled and the
// test policy loaded.
func newAuthRouter(t *testing.T) (*gin.Engine, storage.Provider) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Auth.Enabled = true
	config.Cfg = cfg

	rbac := access.GetRBAC()
	require.NoError(t, rbac.LoadPolicyBytes([]byte(testPolicy)))

	provider, err := storage.NewProvider(&config.Storage{
		SQLite: &config.SQLiteStorage{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set("storage", provider)
		c.Set("rbac", rbac)
		c.Next()
	})
	RegisterRoutes(r)
	return r, provider
}

func seedUser(t *testing.T, provider storage.Provider, username, password, role string) {
	t.Helper()

	pw := password
	require.NoError(t, provider.CreateUser(t.Context(), &storage.User{
		Email:    username + "@example.com",
		Username: username,
		Password: &pw,
		Role:     role,
	}))
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	token, ok := decode(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doAuthedJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, provider := newAuthRouter(t)
	seedUser(t, provider, "admin", "hunter2", "admin")

	// Wrong password and unknown user produce the same response
	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "admin", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "nobody", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "admin", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.Equal(t, "admin", body["role"])
	assert.EqualValues(t, config.Cfg.Auth.TokenTTL, body["expires_in"])
	assert.NotEmpty(t, body["token"])
}

func TestGuardedRoutes(t *testing.T) {
	r, provider := newAuthRouter(t)
	seedUser(t, provider, "admin", "hunter2", "admin")
	seedUser(t, provider, "guard", "secret", "viewer")

	// No token
	w := doJSON(t, r, http.MethodGet, "/gate", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	req := httptest.NewRequest(http.MethodGet, "/gate", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	adminToken := loginAs(t, r, "admin", "hunter2")
	viewerToken := loginAs(t, r, "guard", "secret")

	// Admin can write
	w = doAuthedJSON(t, r, http.MethodPost, "/gate", adminToken, gin.H{
		"location": "Main", "gate_type": "เข้า",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Viewer can read but not write
	w = doAuthed(t, r, http.MethodGet, "/gate/1", viewerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doAuthed(t, r, http.MethodDelete, "/gate/1", viewerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The denied delete must not have touched the row
	w = doAuthed(t, r, http.MethodGet, "/gate/1", viewerToken)
	require.Equal(t, http.StatusOK, w.Code)

	// Denied create leaves no row behind either
	w = doAuthedJSON(t, r, http.MethodPost, "/gate", viewerToken, gin.H{
		"location": "Side", "gate_type": "ออก",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doAuthed(t, r, http.MethodGet, "/gate/2", viewerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthStatus(t *testing.T) {
	r, provider := newAuthRouter(t)
	seedUser(t, provider, "admin", "hunter2", "admin")
	token := loginAs(t, r, "admin", "hunter2")

	w := doAuthed(t, r, http.MethodGet, "/auth/status", token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "authenticated", body["status"])
	assert.Equal(t, "admin", body["username"])
	assert.Equal(t, "admin", body["role"])
}

func TestVisitorPassFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/visitor", gin.H{
		"name":    "Somsak",
		"phone":   "0812345678",
		"purpose": "delivery",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/visitor/1/pass", nil)
	require.Equal(t, http.StatusOK, w.Code)
	pass := decode(t, w)
	assert.EqualValues(t, 1, pass["visitor_id"])
	token, ok := pass["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	assert.Contains(t, pass["url"], "/pass/verify/"+token)

	w = doJSON(t, r, http.MethodGet, "/pass/verify/"+token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	verified := decode(t, w)
	assert.Equal(t, true, verified["valid"])
	visitor := verified["visitor"].(map[string]any)
	assert.Equal(t, "Somsak", visitor["name"])

	// Tampered token is rejected
	w = doJSON(t, r, http.MethodGet, "/pass/verify/"+token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No pass for a missing visitor
	w = doJSON(t, r, http.MethodGet, "/visitor/99/pass", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVisitorPassPNG(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/visitor", gin.H{
		"name":    "Ying",
		"phone":   "0899999999",
		"purpose": "visit",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/visitor/1/pass.png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
}
