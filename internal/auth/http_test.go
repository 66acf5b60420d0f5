// ABOUTME: Tests for the HTTP auth middleware
// ABOUTME: Covers bearer extraction, rejection paths, and identity propagation

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   string
	}{
		{"valid", "Bearer abc123", "abc123", ""},
		{"missing header", "", "", "missing authorization header"},
		{"wrong scheme", "Basic abc123", "", "invalid authorization header format"},
		{"empty token", "Bearer ", "", "empty token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, errMsg := extractBearerToken(tt.header)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, tt.wantErr, errMsg)
		})
	}
}

func TestHTTPAuthMiddleware_ValidToken(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	token, err := v.Generate(42, time.Hour)
	require.NoError(t, err)

	var gotID int64
	var gotOK bool
	handler := HTTPAuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/conversations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOK)
	assert.Equal(t, int64(42), gotID)
}

func TestHTTPAuthMiddleware_MissingHeader(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	handler := HTTPAuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without auth")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/conversations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, rec.Body.String())
}

func TestHTTPAuthMiddleware_BadToken(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	handler := HTTPAuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/conversations", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}
