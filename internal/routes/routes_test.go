package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Secret:     "test-secret",
		LogLevel:   "error",
		ListenAddr: ":0",
		Auth:       config.AuthConfig{Enabled: false, TokenTTL: 3600},
		Pass:       config.PassConfig{TokenTTL: 900},
	}
}

// newTestRouter builds an engine backed by a fresh in-memory database.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Cfg = testConfig()

	provider, err := storage.NewProvider(&config.Storage{
		SQLite: &config.SQLiteStorage{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })

	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set("storage", provider)
		c.Next()
	})
	RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode(t, w)["message"])
}

func TestGateScenario(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/gate", gin.H{
		"location":  "North entrance",
		"gate_type": "เข้า",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.EqualValues(t, 1, created["gate_id"])
	assert.Equal(t, "North entrance", created["location"])

	w = doJSON(t, r, http.MethodGet, "/gate/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "เข้า", decode(t, w)["gate_type"])

	w = doJSON(t, r, http.MethodGet, "/gate/999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "Gate with id 999 not found")

	w = doJSON(t, r, http.MethodPut, "/gate/1", gin.H{
		"location":  "North entrance",
		"gate_type": "ออก",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ออก", decode(t, w)["gate_type"])

	w = doJSON(t, r, http.MethodDelete, "/gate/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gate with id 1 has been deleted.", decode(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/gate/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/gate/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateValidation(t *testing.T) {
	r := newTestRouter(t)

	// gate_type missing, rejected before any database work
	w := doJSON(t, r, http.MethodPost, "/gate", gin.H{"location": "North"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "GateType")
}

func TestMalformedIDParam(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/gate/abc", "/gate/-1", "/gate/1.5"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestListLimit(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 12; i++ {
		w := doJSON(t, r, http.MethodPost, "/gate", gin.H{
			"location":  fmt.Sprintf("Gate %d", i),
			"gate_type": "เข้า",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/gate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gates []storage.Gate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gates))
	assert.Len(t, gates, 10)

	w = doJSON(t, r, http.MethodGet, "/gate?limit=5", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gates))
	assert.Len(t, gates, 5)

	w = doJSON(t, r, http.MethodGet, "/gate?limit=100", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gates))
	assert.Len(t, gates, 10)
}

func TestCreateWithExplicitID(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/gate", gin.H{
		"gate_id":   42,
		"location":  "Service road",
		"gate_type": "ออก",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 42, decode(t, w)["gate_id"])

	w = doJSON(t, r, http.MethodGet, "/gate/42", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserConflictOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/user", gin.H{
		"email": "alice@example.com", "username": "alice", "password": "a", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decode(t, w)["created_at"], "created_at is server-assigned")

	w = doJSON(t, r, http.MethodPost, "/user", gin.H{
		"email": "bob@example.com", "username": "bob", "password": "b", "role": "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username on create: driver constraint text is surfaced
	w = doJSON(t, r, http.MethodPost, "/user", gin.H{
		"email": "eve@example.com", "username": "alice", "password": "e", "role": "staff",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate username on update: pre-checked inside the transaction
	w = doJSON(t, r, http.MethodPut, "/user/2", gin.H{
		"email": "bob@example.com", "username": "alice", "password": "b", "role": "staff",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "username is already in use")

	// Bob's record is untouched by the failed update
	w = doJSON(t, r, http.MethodGet, "/user/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", decode(t, w)["username"])
}

func TestEntryExitLogDefaults(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/entryexitlog", gin.H{
		"vehicle_id": 1,
		"gate_id":    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["entry_time"], "entry_time defaults to now")
	assert.Nil(t, body["exit_time"])
}

func TestUserEmailValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/user", gin.H{
		"email": "not-an-email", "username": "x", "password": "p", "role": "staff",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
