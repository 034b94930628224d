package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/todohive/todo-api/pkg/respond"
)

func newGate(t *testing.T) (http.Handler, *string) {
	t.Helper()

	var gotIdentity string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := Identity(r.Context())
		gotIdentity = id
		w.WriteHeader(http.StatusOK)
	})

	gate := Middleware(NewSecretVerifier(testSecret), zap.NewNop())(next)
	return gate, &gotIdentity
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		authHeader   string
		wantCode     int
		wantIdentity string
	}{
		{
			name:         "valid token",
			method:       http.MethodGet,
			authHeader:   "Bearer " + signToken(t, testSecret, "user-1", time.Hour),
			wantCode:     http.StatusOK,
			wantIdentity: "user-1",
		},
		{
			name:     "no header",
			method:   http.MethodGet,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer",
			method:     http.MethodGet,
			authHeader: "Bearer ",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "not bearer scheme",
			method:     http.MethodGet,
			authHeader: "Basic dXNlcjpwYXNz",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			method:     http.MethodGet,
			authHeader: "Bearer " + signToken(t, "other-secret", "user-1", time.Hour),
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "expired",
			method:     http.MethodGet,
			authHeader: "Bearer " + signToken(t, testSecret, "user-1", -time.Minute),
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "missing subject",
			method:     http.MethodGet,
			authHeader: "Bearer " + signToken(t, testSecret, "", time.Hour),
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:     "preflight passes without credentials",
			method:   http.MethodOptions,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, gotIdentity := newGate(t)

			req := httptest.NewRequest(tt.method, "/api/v1/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			gate.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantIdentity, *gotIdentity)
		})
	}
}

// Все причины отказа должны выглядеть для клиента одинаково -
// по телу ответа нельзя понять, что именно не так с токеном.
func TestMiddleware_UniformRejection(t *testing.T) {
	headers := []string{
		"",
		"Bearer ",
		"Bearer not.a.jwt",
		"Bearer " + signToken(t, "other-secret", "user-1", time.Hour),
		"Bearer " + signToken(t, testSecret, "user-1", -time.Minute),
		"Bearer " + signToken(t, testSecret, "", time.Hour),
	}

	var bodies []string
	for _, h := range headers {
		gate, _ := newGate(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		w := httptest.NewRecorder()
		gate.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]respond.ErrorBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, respond.KindUnauthenticated, body["error"].Kind)
		bodies = append(bodies, body["error"].Message)
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestIdentity_AbsentFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	id, ok := Identity(req.Context())
	assert.False(t, ok)
	assert.Empty(t, id)
}
