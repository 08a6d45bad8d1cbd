package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doodlepair/internal/app/db/memdb"
	"doodlepair/internal/app/pairing"
	"doodlepair/internal/app/user"
	"doodlepair/internal/configs"
	"doodlepair/internal/handler"
	"doodlepair/internal/pkg/auth/jwt"

	gojwt "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func newTestServer(t *testing.T) (http.Handler, *memdb.Store) {
	t.Helper()

	store := memdb.NewStore()
	deps := &handler.AppDeps{
		Config: &configs.AppConfig{
			Environment: "development",
			Port:        8080,
			JWTSecret:   testSecret,
		},
		Engine:      pairing.NewEngine(store, store),
		Provisioner: user.NewProvisioner(store),
	}

	return handler.Router(deps), store
}

func mintToken(t *testing.T, subject, name, email string) string {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Identity{
		StandardClaims: gojwt.StandardClaims{Subject: subject},
		Name:           name,
		Email:          email,
	}, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	parsed := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestRoomRoutesRequireIdentity(t *testing.T) {
	router, _ := newTestServer(t)

	rec, body := doJSON(t, router, http.MethodGet, "/room/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestCreateJoinStatusTrace(t *testing.T) {
	router, _ := newTestServer(t)
	aliceToken := mintToken(t, "u1", "Alice", "alice@example.com")
	bobToken := mintToken(t, "u2", "Bob", "bob@example.com")

	rec, created := doJSON(t, router, http.MethodPost, "/room/create", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, "create failed: %v", created)
	assert.Equal(t, "WAITING", created["status"])
	code, ok := created["code"].(string)
	require.True(t, ok)
	require.Len(t, code, 6)

	// The join code is accepted case-insensitively.
	rec, joined := doJSON(t, router, http.MethodPost, "/room/join", bobToken,
		map[string]string{"code": "  " + string(bytes.ToLower([]byte(code))) + " "})
	require.Equal(t, http.StatusOK, rec.Code, "join failed: %v", joined)
	assert.Equal(t, "PAIRED", joined["status"])
	assert.Equal(t, code, joined["roomCode"])
	assert.Equal(t, "Alice", joined["user1"])
	assert.Equal(t, "Bob", joined["user2"])
	assert.Equal(t, "Alice", joined["partner"])
	assert.Equal(t, "alice@example.com", joined["partnerEmail"])

	rec, status := doJSON(t, router, http.MethodGet, "/room/status", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PAIRED", status["status"])
	assert.Equal(t, code, status["code"])
	assert.Equal(t, "Bob", status["partner"])
	assert.Equal(t, "bob@example.com", status["partnerEmail"])
}

func TestJoinRejectsBlankCode(t *testing.T) {
	router, _ := newTestServer(t)
	token := mintToken(t, "u1", "Alice", "")

	rec, body := doJSON(t, router, http.MethodPost, "/room/join", token,
		map[string]string{"code": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room code is required", body["error"])
}

func TestStatusDoesNotProvisionUser(t *testing.T) {
	router, store := newTestServer(t)
	token := mintToken(t, "fresh", "Fresh", "fresh@example.com")

	rec, body := doJSON(t, router, http.MethodGet, "/room/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NO_ROOM", body["status"])

	u, err := store.Get(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Nil(t, u, "a status check alone must not create a user record")
}

func TestJoinErrorsAreUniformShape(t *testing.T) {
	router, _ := newTestServer(t)
	token := mintToken(t, "u1", "Alice", "")

	rec, body := doJSON(t, router, http.MethodPost, "/room/join", token,
		map[string]string{"code": "AB23CD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid room code", body["error"])
	assert.Len(t, body, 1, "failures expose exactly the error field")
}

func TestLeaveAlwaysSucceeds(t *testing.T) {
	router, _ := newTestServer(t)
	token := mintToken(t, "u1", "Alice", "alice@example.com")

	rec, created := doJSON(t, router, http.MethodPost, "/room/create", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "create failed: %v", created)

	rec, left := doJSON(t, router, http.MethodPost, "/room/leave", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Left room successfully", left["message"])

	// Leaving again without a room is still a success.
	rec, left = doJSON(t, router, http.MethodPost, "/room/leave", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Left room successfully", left["message"])

	rec, status := doJSON(t, router, http.MethodGet, "/room/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NO_ROOM", status["status"])
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec, body := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
